package condition_test

import (
	"testing"

	"github.com/arthur-debert/templater/pkg/condition"
	"github.com/arthur-debert/templater/pkg/errors"
	"github.com/arthur-debert/templater/pkg/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndEval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		enabled []string
		want    bool
	}{
		{
			name:    "single flag enabled",
			input:   "just",
			enabled: []string{"just"},
			want:    true,
		},
		{
			name:    "single flag disabled",
			input:   "just",
			enabled: []string{"node"},
			want:    false,
		},
		{
			name:    "prefix and all enabled",
			input:   "(and foo bar)",
			enabled: []string{"foo", "bar"},
			want:    true,
		},
		{
			name:    "prefix and one missing",
			input:   "(and foo bar)",
			enabled: []string{"foo"},
			want:    false,
		},
		{
			name:    "prefix or one enabled",
			input:   "(or foo bar)",
			enabled: []string{"bar"},
			want:    true,
		},
		{
			name:    "prefix or none enabled",
			input:   "(or foo bar)",
			enabled: []string{"baz"},
			want:    false,
		},
		{
			name:    "prefix and is n-ary",
			input:   "(and a b c)",
			enabled: []string{"a", "b", "c"},
			want:    true,
		},
		{
			name:    "nested prefix forms",
			input:   "(and just (or node squint))",
			enabled: []string{"just", "node"},
			want:    true,
		},
		{
			name:    "nested prefix forms outer fails",
			input:   "(and just (or node squint))",
			enabled: []string{"node"},
			want:    false,
		},
		{
			name:    "infix and",
			input:   "just and node",
			enabled: []string{"just", "node"},
			want:    true,
		},
		{
			name:    "infix or",
			input:   "just or node",
			enabled: []string{"node"},
			want:    true,
		},
		{
			name:    "and binds tighter than or",
			input:   "a and b or c",
			enabled: []string{"c"},
			want:    true,
		},
		{
			name:    "and binds tighter than or left side",
			input:   "a and b or c",
			enabled: []string{"a"},
			want:    false,
		},
		{
			name:    "parenthesized infix changes grouping",
			input:   "a and (b or c)",
			enabled: []string{"a", "c"},
			want:    true,
		},
		{
			name:    "deeply nested parens",
			input:   "((a))",
			enabled: []string{"a"},
			want:    true,
		},
		{
			name:    "mixed prefix inside infix",
			input:   "a and (or b c)",
			enabled: []string{"a", "c"},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := condition.Parse(tt.input)
			require.NoError(t, err)

			set := flags.NewSet(tt.enabled...)
			assert.Equal(t, tt.want, expr.Eval(set))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty condition", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "unclosed paren", input: "(and foo bar"},
		{name: "stray closing paren", input: "foo)"},
		{name: "dangling infix and", input: "foo and"},
		{name: "leading infix or", input: "or foo"},
		{name: "empty prefix list", input: "(and)"},
		{name: "empty parens", input: "()"},
		{name: "two flags without operator", input: "foo bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := condition.Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrParse), "expected PARSE, got %v", err)
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := condition.Parse("foo bar")
	require.Error(t, err)

	terr := &errors.TemplaterError{}
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 4, terr.Details["position"])
	assert.Equal(t, "foo bar", terr.Details["condition"])
}

func TestFlags(t *testing.T) {
	expr, err := condition.Parse("(and just (or node squint))")
	require.NoError(t, err)

	assert.Equal(t, []string{"just", "node", "squint"}, expr.Flags())
}

func TestShortCircuit(t *testing.T) {
	// Or stops at the first true operand; And at the first false one.
	expr, err := condition.Parse("(or a b)")
	require.NoError(t, err)
	assert.True(t, expr.Eval(flags.NewSet("a", "b")))

	expr, err = condition.Parse("(and a b)")
	require.NoError(t, err)
	assert.False(t, expr.Eval(flags.NewSet()))
}

func TestString(t *testing.T) {
	expr, err := condition.Parse("(and just (or node squint))")
	require.NoError(t, err)

	assert.Equal(t, "(just and (node or squint))", expr.String())
}
