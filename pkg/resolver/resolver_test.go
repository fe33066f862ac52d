package resolver_test

import (
	"testing"

	"github.com/arthur-debert/templater/pkg/errors"
	"github.com/arthur-debert/templater/pkg/flags"
	"github.com/arthur-debert/templater/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, lines []string, enabled ...string) ([]string, error) {
	t.Helper()
	return resolver.Resolve("test.txt", lines, flags.NewSet(enabled...), flags.NewUsage())
}

func TestBlockInclusion(t *testing.T) {
	lines := []string{"#if just", "help:", "    just --list", "#endif just"}

	t.Run("no flags removes whole block", func(t *testing.T) {
		out, err := resolve(t, lines)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("enabled flag keeps block content", func(t *testing.T) {
		out, err := resolve(t, lines, "just")
		require.NoError(t, err)
		assert.Equal(t, []string{"help:", "    just --list"}, out)
	})
}

func TestContentAroundBlocks(t *testing.T) {
	lines := []string{"foo", "#if bar", "bar", "#endif", "baz"}

	out, err := resolve(t, lines, "bar")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar", "baz"}, out)

	out, err = resolve(t, lines, "notbar")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "baz"}, out)
}

func TestNestedBlocks(t *testing.T) {
	lines := []string{
		"#if foo",
		"foo",
		"  #if bar",
		"foobar",
		"  #endif",
		"#endif",
	}

	t.Run("kept iff every enclosing condition holds", func(t *testing.T) {
		out, err := resolve(t, lines, "foo", "bar")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "foobar"}, out)
	})

	t.Run("inner condition alone is not enough", func(t *testing.T) {
		out, err := resolve(t, lines, "bar")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("outer only drops inner block", func(t *testing.T) {
		out, err := resolve(t, lines, "foo")
		require.NoError(t, err)
		assert.Equal(t, []string{"foo"}, out)
	})
}

func TestTrailingLine(t *testing.T) {
	lines := []string{"npm run dev #if (and just (or node squint))"}

	t.Run("condition true keeps content with marker stripped", func(t *testing.T) {
		out, err := resolve(t, lines, "just", "node")
		require.NoError(t, err)
		assert.Equal(t, []string{"npm run dev"}, out)
	})

	t.Run("condition false drops line entirely", func(t *testing.T) {
		out, err := resolve(t, lines, "just")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("trailing line inside false block is dropped", func(t *testing.T) {
		nested := []string{"#if rust", "cargo test #if rust", "#endif"}
		out, err := resolve(t, nested, "just")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestMismatchedEndLabel(t *testing.T) {
	lines := []string{"#if gleam", "run:", "    gleam run", "#endif haskell"}

	_, err := resolve(t, lines, "gleam")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMismatchedDirective))

	terr := &errors.TemplaterError{}
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 4, terr.Details["line"])
	assert.Equal(t, "test.txt", terr.Details["path"])
}

func TestBareEndifMatchesAnyBlock(t *testing.T) {
	lines := []string{"#if gleam", "gleam run", "#endif"}

	out, err := resolve(t, lines, "gleam")
	require.NoError(t, err)
	assert.Equal(t, []string{"gleam run"}, out)
}

func TestLabeledEndifMatchesInnermost(t *testing.T) {
	lines := []string{
		"#if outer",
		"#if inner",
		"x",
		"#endif inner",
		"#endif outer",
	}

	out, err := resolve(t, lines, "outer", "inner")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, out)
}

func TestUnterminatedBlock(t *testing.T) {
	lines := []string{"#if just", "help:", "    just --list"}

	_, err := resolve(t, lines, "just")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMismatchedDirective))

	terr := &errors.TemplaterError{}
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 1, terr.Details["line"])
}

func TestEndifWithoutIf(t *testing.T) {
	_, err := resolve(t, []string{"content", "#endif"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMismatchedDirective))
}

func TestInvalidCondition(t *testing.T) {
	_, err := resolve(t, []string{"#if (and foo", "x", "#endif"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))

	terr := &errors.TemplaterError{}
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 1, terr.Details["line"])
}

func TestNoDirectivesPassThrough(t *testing.T) {
	lines := []string{"foo", "", "  bar", "\tbaz"}

	out, err := resolve(t, lines)
	require.NoError(t, err)
	assert.Equal(t, lines, out)
}

func TestUsageTracksAllMentionedFlags(t *testing.T) {
	usage := flags.NewUsage()
	lines := []string{
		"#if foo",
		"x",
		"#endif",
		"y #if (or bar baz)",
	}

	_, err := resolver.Resolve("track.txt", lines, flags.NewSet("foo"), usage)
	require.NoError(t, err)

	assert.Equal(t, []string{"bar", "baz", "foo"}, usage.Names())
	assert.False(t, usage.Contains("quux"))
}

func TestConditionsInsideFalseBlocksStillTracked(t *testing.T) {
	usage := flags.NewUsage()
	lines := []string{
		"#if off",
		"#if inner",
		"x",
		"#endif inner",
		"#endif off",
	}

	out, err := resolver.Resolve("track.txt", lines, flags.NewSet(), usage)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"inner", "off"}, usage.Names())
}

// Two differently-gated blocks may define the same logical unit; the
// resolver treats each strictly on its own condition.
func TestMutuallyExclusiveDuplicateBlocks(t *testing.T) {
	lines := []string{
		"#if node",
		"build:",
		"    npm run build",
		"#endif node",
		"#if rust",
		"build:",
		"    cargo build",
		"#endif rust",
	}

	out, err := resolve(t, lines, "rust")
	require.NoError(t, err)
	assert.Equal(t, []string{"build:", "    cargo build"}, out)

	out, err = resolve(t, lines, "node", "rust")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"build:", "    npm run build",
		"build:", "    cargo build",
	}, out)
}
