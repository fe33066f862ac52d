// Package directive recognizes the inline conditional markers templater
// layers on top of arbitrary text files.
//
// Two markers exist: "#if <condition>" opens a gated region or gates a
// single line, and "#endif [label]" closes the innermost open region.
// The scanner knows nothing about the host file format; a comment
// leader in front of a marker is an arbitrary run of punctuation to be
// tolerated, not validated.
package directive

import (
	"regexp"
	"strings"
	"unicode"
)

// Kind classifies a recognized directive.
type Kind int

const (
	// BlockStart opens a condition-gated region spanning whole lines.
	BlockStart Kind = iota
	// BlockEnd closes the innermost open region.
	BlockEnd
	// TrailingLine gates only the content preceding the marker on the
	// same line.
	TrailingLine
)

func (k Kind) String() string {
	switch k {
	case BlockStart:
		return "block start"
	case BlockEnd:
		return "block end"
	case TrailingLine:
		return "trailing line"
	default:
		return "unknown"
	}
}

// Directive is one recognized marker.
type Directive struct {
	Kind Kind
	// Condition is the raw condition text for BlockStart and
	// TrailingLine directives.
	Condition string
	// Label is the optional cross-check label on a BlockEnd.
	Label string
	// Content is the retained line prefix for TrailingLine directives,
	// with the marker suffix and trailing whitespace stripped.
	Content string
	// Line is the 1-based source line number, for diagnostics.
	Line int
}

var (
	ifPattern    = regexp.MustCompile(`#if\s+(.+)$`)
	endifPattern = regexp.MustCompile(`#endif\b(.*)$`)
)

// Scan inspects one raw line and reports the directive it carries, if
// any. Lines without a marker are ordinary content.
func Scan(line string, lineNum int) (Directive, bool) {
	if loc := ifPattern.FindStringSubmatchIndex(line); loc != nil {
		prefix := line[:loc[0]]
		cond := strings.TrimSpace(line[loc[2]:loc[3]])
		if markerOnly(prefix) {
			return Directive{Kind: BlockStart, Condition: cond, Line: lineNum}, true
		}
		return Directive{
			Kind:      TrailingLine,
			Condition: cond,
			Content:   strings.TrimRight(prefix, " \t"),
			Line:      lineNum,
		}, true
	}

	if loc := endifPattern.FindStringSubmatchIndex(line); loc != nil {
		label := strings.TrimSpace(line[loc[2]:loc[3]])
		return Directive{Kind: BlockEnd, Label: label, Line: lineNum}, true
	}

	return Directive{}, false
}

// markerOnly reports whether the text before a marker is nothing but
// whitespace and an arbitrary comment leader, meaning the marker owns
// the whole line.
func markerOnly(prefix string) bool {
	for _, r := range strings.TrimSpace(prefix) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
