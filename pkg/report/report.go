// Package report renders the human-facing run report: which files were
// written, which flags went unused, and failure diagnostics.
package report

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/templater/pkg/errors"
	"github.com/arthur-debert/templater/pkg/flags"
	"github.com/mattn/go-isatty"
)

// UnusedFlag is one enabled flag no evaluated condition mentioned.
type UnusedFlag struct {
	Name string
	// InTree is true when the flag does occur somewhere in the
	// template tree's conditions (so the conditions simply never held).
	InTree bool
	// Suggestion is a close match from the tree's conditions, when the
	// flag occurs nowhere.
	Suggestion string
}

// Report is the end-of-run flag accounting.
type Report struct {
	Unused []UnusedFlag
	Used   []string // flags mentioned by evaluated conditions, sorted
	All    []string // every flag found in the tree's conditions, sorted
}

// Build assembles the report from the run's flag set, the usage
// recorded while resolving, and the tree-wide condition scan.
func Build(set *flags.Set, usage *flags.Usage, all []string) *Report {
	report := &Report{
		Used: usage.Names(),
		All:  all,
	}

	inTree := make(map[string]struct{}, len(all))
	for _, name := range all {
		inTree[name] = struct{}{}
	}

	for _, name := range usage.Unused(set) {
		unused := UnusedFlag{Name: name}
		if _, ok := inTree[name]; ok {
			unused.InTree = true
		} else if suggestion, ok := flags.Suggest(name, all); ok {
			unused.Suggestion = suggestion
		}
		report.Unused = append(report.Unused, unused)
	}

	return report
}

// Empty reports whether there is nothing worth printing.
func (r *Report) Empty() bool {
	return len(r.Unused) == 0
}

// Render formats the report for the terminal. With styled false the
// output is plain text.
func (r *Report) Render(styled bool) string {
	if r.Empty() {
		return ""
	}

	header := Style("Header")
	flagStyle := Style("Flag")
	suggestion := Style("Suggestion")
	used := Style("Used")
	muted := Style("Muted")
	if !styled {
		header, flagStyle, suggestion, used, muted = plain, plain, plain, plain, plain
	}

	var b strings.Builder
	b.WriteString(header.Render("Unused flags:") + "\n")
	for _, unused := range r.Unused {
		b.WriteString(fmt.Sprintf("  - Flag %s was provided but not used in any evaluated condition.",
			flagStyle.Render(unused.Name)))
		if unused.InTree {
			b.WriteString(" (It appears in conditions, but they were never true.)")
		} else {
			b.WriteString(" It also doesn't appear in any #if condition.")
			if unused.Suggestion != "" {
				b.WriteString(fmt.Sprintf(" Did you mean %s?", suggestion.Render(unused.Suggestion)))
			}
		}
		b.WriteString("\n")
	}

	if len(r.Used) > 0 {
		b.WriteString("\n" + muted.Render("Flags effectively used by conditions:") + "\n")
		b.WriteString("  " + used.Render(strings.Join(r.Used, " ")) + "\n")
	}

	if len(r.All) > 0 && r.hasUnlisted() {
		b.WriteString("\n" + muted.Render("All flags found in template conditions:") + "\n")
		b.WriteString("  " + muted.Render(strings.Join(r.All, " ")) + "\n")
	}

	return b.String()
}

// hasUnlisted reports whether the tree mentions flags beyond the used
// list, so the "all flags" section only prints when it adds anything.
func (r *Report) hasUnlisted() bool {
	usedSet := make(map[string]struct{}, len(r.Used))
	for _, name := range r.Used {
		usedSet[name] = struct{}{}
	}
	for _, name := range r.All {
		if _, ok := usedSet[name]; !ok {
			return true
		}
	}
	return false
}

// RenderError formats a run-aborting error as a single diagnostic,
// pulling the file, line, and directive text out of the error details
// when present.
func RenderError(err error, styled bool) string {
	errorStyle := Style("Error")
	muted := Style("Muted")
	if !styled {
		errorStyle, muted = plain, plain
	}

	msg := errorStyle.Render("Error: " + err.Error())

	var terr *errors.TemplaterError
	if stderrors.As(err, &terr) {
		var at []string
		if path, ok := terr.Details["path"].(string); ok {
			at = append(at, path)
		}
		if line, ok := terr.Details["line"].(int); ok {
			at = append(at, fmt.Sprintf("line %d", line))
		}
		if len(at) > 0 {
			msg += "\n" + muted.Render("  at "+strings.Join(at, ", "))
		}
	}
	return msg
}

// IsTerminal reports whether styled output should be produced for f.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
