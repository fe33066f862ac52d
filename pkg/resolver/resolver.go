// Package resolver filters one file's lines through its conditional
// directives, maintaining the nested-block state.
package resolver

import (
	"github.com/arthur-debert/templater/pkg/condition"
	"github.com/arthur-debert/templater/pkg/directive"
	"github.com/arthur-debert/templater/pkg/errors"
	"github.com/arthur-debert/templater/pkg/flags"
	"github.com/arthur-debert/templater/pkg/logging"
)

// blockFrame is one open "#if" region.
type blockFrame struct {
	expr   condition.Expression
	label  string // the raw condition text, cross-checked by labeled #endif
	active bool   // condition true AND every enclosing frame active
	line   int
}

// Resolve walks a file's lines top to bottom and returns the lines
// that survive directive evaluation against the enabled flags, in
// original order, with all marker syntax stripped. Every flag a
// condition mentions is recorded in usage, whether or not the
// condition held.
//
// path is used only for diagnostics.
func Resolve(path string, lines []string, set *flags.Set, usage *flags.Usage) ([]string, error) {
	logger := logging.GetLogger("resolver")

	var stack []blockFrame
	output := make([]string, 0, len(lines))

	active := func() bool {
		return len(stack) == 0 || stack[len(stack)-1].active
	}

	for i, line := range lines {
		lineNum := i + 1

		dir, ok := directive.Scan(line, lineNum)
		if !ok {
			if active() {
				output = append(output, line)
			}
			continue
		}

		switch dir.Kind {
		case directive.BlockStart:
			expr, err := condition.Parse(dir.Condition)
			if err != nil {
				return nil, locate(err, path, lineNum, dir.Condition)
			}
			usage.Mark(expr.Flags()...)
			stack = append(stack, blockFrame{
				expr:   expr,
				label:  dir.Condition,
				active: active() && expr.Eval(set),
				line:   lineNum,
			})

		case directive.TrailingLine:
			expr, err := condition.Parse(dir.Condition)
			if err != nil {
				return nil, locate(err, path, lineNum, dir.Condition)
			}
			usage.Mark(expr.Flags()...)
			if active() && expr.Eval(set) {
				output = append(output, dir.Content)
			}

		case directive.BlockEnd:
			if len(stack) == 0 {
				return nil, errors.New(errors.ErrMismatchedDirective, "#endif without matching #if").
					WithDetail("path", path).
					WithDetail("line", lineNum)
			}
			top := stack[len(stack)-1]
			if dir.Label != "" && dir.Label != top.label {
				return nil, errors.Newf(errors.ErrMismatchedDirective,
					"#endif label %q does not match open block %q", dir.Label, top.label).
					WithDetail("path", path).
					WithDetail("line", lineNum).
					WithDetail("openedAt", top.line)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, errors.Newf(errors.ErrMismatchedDirective,
			"#if %s is never closed", top.label).
			WithDetail("path", path).
			WithDetail("line", top.line)
	}

	logger.Trace().Str("path", path).Int("in", len(lines)).Int("out", len(output)).Msg("Resolved file")
	return output, nil
}

// locate attaches file and line context to a condition parse error.
func locate(err error, path string, lineNum int, cond string) error {
	return errors.Wrapf(err, errors.ErrParse, "invalid condition %q", cond).
		WithDetail("path", path).
		WithDetail("line", lineNum)
}
