// Package topics serves templater's long-form help documents, rendered
// as rich terminal output when possible.
package topics

import (
	"embed"
	"sort"
	"strings"

	"github.com/arthur-debert/templater/pkg/errors"
)

//go:embed docs/*.md
var docs embed.FS

// Names lists the available topics, sorted.
func Names() []string {
	entries, err := docs.ReadDir("docs")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Render returns the named topic rendered for the terminal.
func Render(name string) (string, error) {
	content, err := docs.ReadFile("docs/" + name + ".md")
	if err != nil {
		return "", errors.Newf(errors.ErrInvalidInput, "unknown help topic %q", name).
			WithDetail("available", Names())
	}
	return NewGlamourRenderer().Render(string(content)), nil
}
