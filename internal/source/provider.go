package source

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/TimelordUK/emrlog/pkg/logformat"
)

// MaxLineLength is the longest line, in bytes, any reader accepts
const MaxLineLength = 1024 * 1024

// ErrEncoding is the cause of a read failure on text that is not valid UTF-8
var ErrEncoding = errors.New("invalid UTF-8 text")

// LogSource refers to a text log by path. Readers never create or delete it.
type LogSource struct {
	Path string
}

// NewLogSource creates a source for path
func NewLogSource(path string) LogSource {
	return LogSource{Path: path}
}

// Name returns the base name of the file
func (s LogSource) Name() string {
	return filepath.Base(s.Path)
}

// Line is a single line with its 1-based position in the file
type Line struct {
	Number int
	Text   string
	Kind   logformat.Kind
}

// Result is the outcome of a successful read
type Result struct {
	Source  LogSource
	Lines   []Line
	Records int // lines read from the file, blank ones included
	Size    int64
	ModTime time.Time
}

// LineCount returns the number of lines kept in the result
func (r *Result) LineCount() int {
	return len(r.Lines)
}

// Texts returns the text of every kept line
func (r *Result) Texts() []string {
	texts := make([]string, len(r.Lines))
	for i, line := range r.Lines {
		texts[i] = line.Text
	}
	return texts
}

// Reader is a strategy for reading a log source.
// Every implementation fails with a *fault.Error and classifies it the same
// way for the same file.
type Reader interface {
	// Name identifies the strategy in console output
	Name() string

	// Read returns the lines of src in file order
	Read(src LogSource) (*Result, error)
}
