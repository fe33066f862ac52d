// Package condition compiles directive condition text into a boolean
// expression over flags and evaluates it against a flag set.
//
// Two surface syntaxes are accepted and may be mixed:
//
//	just and (node or squint)     infix, "and" binds tighter than "or"
//	(and just (or node squint))   prefix lists, n-ary
//
// Flag names are arbitrary whitespace-delimited tokens other than the
// keywords "and" and "or" and the parentheses.
package condition

import (
	"github.com/arthur-debert/templater/pkg/flags"
)

// Expression is a compiled boolean expression over flags.
type Expression interface {
	// Eval evaluates the expression against the enabled flags,
	// short-circuiting as usual.
	Eval(set *flags.Set) bool
	// Flags returns every flag name the expression mentions, in
	// source order, with duplicates preserved.
	Flags() []string
	// String renders the expression in canonical infix form.
	String() string
}

// Test is a single-flag expression, true iff the flag is enabled.
type Test struct {
	Flag string
}

func (t Test) Eval(set *flags.Set) bool { return set.Has(t.Flag) }
func (t Test) Flags() []string          { return []string{t.Flag} }
func (t Test) String() string           { return t.Flag }

// And is a conjunction of two expressions.
type And struct {
	Left, Right Expression
}

func (a And) Eval(set *flags.Set) bool { return a.Left.Eval(set) && a.Right.Eval(set) }
func (a And) Flags() []string          { return append(a.Left.Flags(), a.Right.Flags()...) }
func (a And) String() string           { return "(" + a.Left.String() + " and " + a.Right.String() + ")" }

// Or is a disjunction of two expressions.
type Or struct {
	Left, Right Expression
}

func (o Or) Eval(set *flags.Set) bool { return o.Left.Eval(set) || o.Right.Eval(set) }
func (o Or) Flags() []string          { return append(o.Left.Flags(), o.Right.Flags()...) }
func (o Or) String() string           { return "(" + o.Left.String() + " or " + o.Right.String() + ")" }
