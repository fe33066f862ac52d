package templates_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/arthur-debert/templater/pkg/config"
	"github.com/arthur-debert/templater/pkg/flags"
	"github.com/arthur-debert/templater/pkg/materialize"
	"github.com/arthur-debert/templater/pkg/templates"
	"github.com/arthur-debert/templater/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledTreeContents(t *testing.T) {
	src := templates.Bundled()

	var paths []string
	err := fs.WalkDir(src, ".", func(path string, entry fs.DirEntry, err error) error {
		if err == nil && !entry.IsDir() {
			paths = append(paths, path)
		}
		return err
	})
	require.NoError(t, err)

	assert.Contains(t, paths, "flake.nix")
	assert.Contains(t, paths, "justfile")
	assert.Contains(t, paths, "README.md")
	assert.Contains(t, paths, ".envrc")
	assert.Contains(t, paths, config.ManifestName)
}

func TestBundledManifest(t *testing.T) {
	manifest, err := config.Load(templates.Bundled())
	require.NoError(t, err)
	assert.Contains(t, manifest.Flags, "devshell")
}

func TestBundledTreeMaterializes(t *testing.T) {
	src := templates.Bundled()
	manifest, err := config.Load(src)
	require.NoError(t, err)

	destFS := testutil.NewMemoryFS()
	set := flags.NewSet(append([]string{"just", "node", "direnv"}, manifest.Flags...)...)
	result, err := materialize.New(destFS).Materialize(src, "proj", manifest, set, flags.NewUsage())
	require.NoError(t, err)
	require.NotZero(t, result.Written)

	justfile, err := destFS.ReadFile("proj/justfile")
	require.NoError(t, err)
	assert.Contains(t, string(justfile), "just --list")
	assert.Contains(t, string(justfile), "npm run dev")
	assert.NotContains(t, string(justfile), "cargo")
	assert.NotContains(t, string(justfile), "#if")

	envrc, err := destFS.ReadFile("proj/.envrc")
	require.NoError(t, err)
	assert.Equal(t, "use flake\n", string(envrc))

	for _, path := range destFS.Files() {
		assert.False(t, strings.HasSuffix(path, config.ManifestName), "manifest must not be materialized")
	}
}

func TestBundledTreeWithoutFlagsSkipsGatedFiles(t *testing.T) {
	src := templates.Bundled()
	manifest, err := config.Load(src)
	require.NoError(t, err)

	destFS := testutil.NewMemoryFS()
	_, err = materialize.New(destFS).Materialize(src, "proj", manifest, flags.NewSet(manifest.Flags...), flags.NewUsage())
	require.NoError(t, err)

	// .envrc is a single direnv-gated line and resolves to nothing.
	_, err = destFS.ReadFile("proj/.envrc")
	assert.Error(t, err)

	// The justfile is entirely flag-gated too.
	_, err = destFS.ReadFile("proj/justfile")
	assert.Error(t, err)
}
