package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/emrlog/internal/config"
	"github.com/TimelordUK/emrlog/internal/source"
	"github.com/TimelordUK/emrlog/pkg/logformat"
)

// Renderer applies styling to lines
type Renderer interface {
	Render(line *source.Line) string
}

// KindRenderer colors lines based on what they describe
type KindRenderer struct {
	classifier *logformat.Classifier
	styles     map[logformat.Kind]lipgloss.Style
}

// NewKindRenderer creates a renderer with config. Styles are bound to r so
// color output follows the writer they end up on.
func NewKindRenderer(cfg *config.Config, r *lipgloss.Renderer) *KindRenderer {
	kinds := cfg.Theme.Kinds
	styles := map[logformat.Kind]lipgloss.Style{
		logformat.KindUnknown:   r.NewStyle(),
		logformat.KindBlank:     r.NewStyle(),
		logformat.KindGeneric:   r.NewStyle().Foreground(lipgloss.Color(kinds.Generic)),
		logformat.KindPatient:   r.NewStyle().Foreground(lipgloss.Color(kinds.Patient)).Bold(true),
		logformat.KindDateTime:  r.NewStyle().Foreground(lipgloss.Color(kinds.DateTime)),
		logformat.KindDiagnosis: r.NewStyle().Foreground(lipgloss.Color(kinds.Diagnosis)),
	}

	return &KindRenderer{
		classifier: logformat.NewClassifier(&cfg.Markers),
		styles:     styles,
	}
}

// Render applies kind styling to a line
func (r *KindRenderer) Render(line *source.Line) string {
	// Classify if the reader did not
	kind := line.Kind
	if kind == logformat.KindUnknown {
		kind = r.classifier.Classify(line.Text)
	}

	return r.styles[kind].Render(line.Text)
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns the line content as-is
func (r *PlainRenderer) Render(line *source.Line) string {
	return line.Text
}

// ForFile picks the renderer for a file: syntax highlighting for source
// and config files when enabled, kind coloring otherwise
func ForFile(cfg *config.Config, path string, r *lipgloss.Renderer) Renderer {
	if !cfg.Display.Color {
		return NewPlainRenderer()
	}
	if cfg.Display.Syntax && IsSyntaxHighlightable(path) {
		return NewSyntaxRenderer(path, r)
	}
	return NewKindRenderer(cfg, r)
}
