// Package materialize walks a template source tree, resolves each
// file's conditional directives, and writes the results to a mirrored
// destination tree.
package materialize

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/templater/pkg/config"
	"github.com/arthur-debert/templater/pkg/errors"
	"github.com/arthur-debert/templater/pkg/flags"
	"github.com/arthur-debert/templater/pkg/logging"
	"github.com/arthur-debert/templater/pkg/resolver"
	"github.com/arthur-debert/templater/pkg/types"
	"github.com/rs/zerolog"
)

// Status reports what happened to one template file.
type Status string

const (
	// StatusWritten means the resolved file was written to the
	// destination tree.
	StatusWritten Status = "written"
	// StatusSkipped means the resolved content was all blank and no
	// destination file was written.
	StatusSkipped Status = "skipped"
)

// FileResult is the per-file outcome of a run.
type FileResult struct {
	Path   string // relative path within both trees
	Status Status
}

// Result summarizes a completed run.
type Result struct {
	Files   []FileResult
	Written int
	Skipped int
}

// Materializer applies the line resolver across a whole template tree.
type Materializer struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Materializer writing through the given destination
// filesystem.
func New(destFS types.FS) *Materializer {
	return &Materializer{
		fs:     destFS,
		logger: logging.GetLogger("materialize"),
	}
}

// Materialize enumerates every regular file under src in lexical order
// by relative path, resolves it against the flag set, and writes the
// surviving content to the same relative path under destRoot,
// overwriting whatever is there. Files the manifest ignores are not
// read; files whose resolved content is all blank are not written.
// The first failing file aborts the run.
func (m *Materializer) Materialize(src fs.FS, destRoot string, manifest *config.Manifest, set *flags.Set, usage *flags.Usage) (*Result, error) {
	result := &Result{}

	err := fs.WalkDir(src, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(err, errors.ErrFileRead, "cannot read template tree").
				WithDetail("path", path)
		}
		if entry.IsDir() {
			return nil
		}
		if manifest.IsIgnored(path) {
			m.logger.Debug().Str("path", path).Msg("Ignored by manifest")
			return nil
		}

		status, err := m.materializeFile(src, destRoot, path, set, usage)
		if err != nil {
			return err
		}

		result.Files = append(result.Files, FileResult{Path: path, Status: status})
		switch status {
		case StatusWritten:
			result.Written++
		case StatusSkipped:
			result.Skipped++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info().
		Int("written", result.Written).
		Int("skipped", result.Skipped).
		Msg("Materialized template tree")
	return result, nil
}

func (m *Materializer) materializeFile(src fs.FS, destRoot, path string, set *flags.Set, usage *flags.Usage) (Status, error) {
	data, err := fs.ReadFile(src, path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileRead, "cannot read template file").
			WithDetail("path", path)
	}

	lines, term, finalNewline := splitLines(string(data))

	resolved, err := resolver.Resolve(path, lines, set, usage)
	if err != nil {
		return "", err
	}

	if allBlank(resolved) {
		m.logger.Debug().Str("path", path).Msg("Resolved to nothing, skipping")
		return StatusSkipped, nil
	}

	destPath := filepath.Join(destRoot, filepath.FromSlash(path))
	if dir := filepath.Dir(destPath); dir != "." {
		if err := m.fs.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrap(err, errors.ErrDirCreate, "cannot create destination directory").
				WithDetail("path", dir)
		}
	}

	content := strings.Join(resolved, term)
	if finalNewline {
		content += term
	}
	if err := m.fs.WriteFile(destPath, []byte(content), 0644); err != nil {
		return "", errors.Wrap(err, errors.ErrFileWrite, "cannot write destination file").
			WithDetail("path", destPath)
	}

	m.logger.Debug().Str("path", path).Msg("Wrote file")
	return StatusWritten, nil
}

// splitLines breaks file content into lines and reports the file's
// line terminator convention and whether it ended with a newline, so
// both survive the transform.
func splitLines(content string) (lines []string, term string, finalNewline bool) {
	term = "\n"
	if strings.Contains(content, "\r\n") {
		term = "\r\n"
	}

	finalNewline = strings.HasSuffix(content, "\n")

	lines = strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if finalNewline {
		lines = lines[:len(lines)-1]
	}
	return lines, term, finalNewline
}

func allBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
