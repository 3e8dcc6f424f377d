package render

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/TimelordUK/emrlog/internal/source"
)

// SyntaxRenderer applies syntax highlighting based on file type
type SyntaxRenderer struct {
	lexerName   string
	syntaxTheme string
	formatter   string // empty for no color
}

// NewSyntaxRenderer creates a syntax highlighting renderer for the given
// filename. Escapes are limited to the color profile of r.
func NewSyntaxRenderer(filename string, r *lipgloss.Renderer) *SyntaxRenderer {
	// Get lexer by filename extension
	lexer := lexers.Match(filename)
	lexerName := "plaintext"
	if lexer != nil {
		lexerName = lexer.Config().Name
	}

	return &SyntaxRenderer{
		lexerName:   lexerName,
		syntaxTheme: "monokai",
		formatter:   formatterFor(r.ColorProfile()),
	}
}

func formatterFor(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// Render applies syntax highlighting to a line
func (r *SyntaxRenderer) Render(line *source.Line) string {
	if line.Text == "" || r.formatter == "" {
		return line.Text
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, line.Text, r.lexerName, r.formatter, r.syntaxTheme); err != nil {
		return line.Text
	}

	// Remove any newlines that quick.Highlight adds
	highlighted := strings.ReplaceAll(buf.String(), "\n", "")
	return strings.ReplaceAll(highlighted, "\r", "")
}

// IsSyntaxHighlightable returns true if the file type supports syntax highlighting
func IsSyntaxHighlightable(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))

	// Common source code extensions
	syntaxExts := map[string]bool{
		".go": true, ".rs": true, ".py": true, ".js": true, ".ts": true,
		".jsx": true, ".tsx": true, ".c": true, ".cpp": true, ".h": true,
		".hpp": true, ".java": true, ".rb": true, ".php": true, ".swift": true,
		".kt": true, ".scala": true, ".cs": true, ".fs": true, ".lua": true,
		".sh": true, ".bash": true, ".zsh": true, ".fish": true,
		".yaml": true, ".yml": true, ".json": true, ".toml": true, ".xml": true,
		".html": true, ".css": true, ".scss": true, ".sass": true, ".less": true,
		".sql": true, ".md": true, ".markdown": true, ".vim": true,
		".dockerfile": true, ".makefile": true, ".cmake": true,
		".zig": true, ".nim": true, ".v": true, ".d": true, ".r": true,
		".ex": true, ".exs": true, ".erl": true, ".hrl": true, ".clj": true,
		".hs": true, ".ml": true, ".mli": true, ".pl": true, ".pm": true,
	}

	if syntaxExts[ext] {
		return true
	}

	// Check for special filenames
	base := strings.ToLower(filepath.Base(filename))
	specialFiles := map[string]bool{
		"makefile": true, "dockerfile": true, "cmakelists.txt": true,
		"gemfile": true, "rakefile": true, "vagrantfile": true,
	}

	return specialFiles[base]
}
