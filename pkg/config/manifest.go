// Package config reads the optional templater.toml manifest a template
// tree may carry at its root.
package config

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/templater/pkg/errors"
	"github.com/arthur-debert/templater/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

// ManifestName is the manifest file name at the template-tree root.
// The manifest is read for run configuration and is never copied to
// the destination.
const ManifestName = "templater.toml"

// Manifest is the per-template-tree configuration.
type Manifest struct {
	// Description is free text shown nowhere yet; kept for tooling.
	Description string `toml:"description"`
	// Flags are enabled by default and unioned with the flags given
	// on the command line.
	Flags []string `toml:"flags"`
	// Ignore lists glob patterns (matched against the relative path
	// and against the base name) that are never materialized.
	Ignore []string `toml:"ignore"`
}

// Load reads the manifest from the template source root. A missing
// manifest is not an error and yields the zero Manifest.
func Load(src fs.FS) (*Manifest, error) {
	logger := logging.GetLogger("config")

	data, err := fs.ReadFile(src, ManifestName)
	if err != nil {
		logger.Trace().Msg("No manifest in template tree")
		return &Manifest{}, nil
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid template manifest").
			WithDetail("path", ManifestName)
	}

	logger.Debug().
		Strs("flags", manifest.Flags).
		Strs("ignore", manifest.Ignore).
		Msg("Loaded template manifest")
	return &manifest, nil
}

// IsIgnored checks if a relative path should be skipped based on the
// manifest's ignore rules. The manifest itself is always skipped.
func (m *Manifest) IsIgnored(relPath string) bool {
	if relPath == ManifestName {
		return true
	}
	for _, pattern := range m.Ignore {
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(relPath)); matched {
			return true
		}
	}
	return false
}
