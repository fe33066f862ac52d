package report

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// stylesConfig is the complete styles configuration
type stylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var stylesYAML []byte

// registry maps semantic names to lipgloss styles
var registry map[string]lipgloss.Style

func init() {
	var cfg stylesConfig
	if err := yaml.Unmarshal(stylesYAML, &cfg); err != nil {
		// styles.yaml is embedded and validated by tests
		panic(err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry = make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		style := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline)
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
		registry[name] = style
	}
}

// plain renders text unchanged, for non-terminal output.
var plain = lipgloss.NewStyle()

// Style returns the named style, or a zero style for unknown names.
func Style(name string) lipgloss.Style {
	return registry[name]
}
