// Package errlog appends failure records to the error log file.
package errlog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TimelordUK/emrlog/internal/fault"
	"github.com/TimelordUK/emrlog/pkg/logformat"
)

// Record is one failed read attempt
type Record struct {
	Time    time.Time
	Kind    fault.Kind
	Path    string
	Message string
}

// String formats the record as a single error log line, without newline
func (r Record) String() string {
	return strings.Join([]string{
		logformat.FormatTimestamp(r.Time),
		r.Kind.String(),
		flatten(r.Path),
		flatten(r.Message),
	}, " | ")
}

// flatten keeps a field on one line
func flatten(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// Logger appends records to a file, opening it for each write
type Logger struct {
	path    string
	now     func() time.Time
	logger  *log.Logger
	onError func(error)

	mu sync.Mutex
}

// Option configures a Logger
type Option func(*Logger)

// WithClock sets the time source for record timestamps
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(l *Logger) { l.logger = logger }
}

// OnError sets the hook that receives append failures swallowed by
// LogFailure
func OnError(fn func(error)) Option {
	return func(l *Logger) { l.onError = fn }
}

// New creates a logger appending to path
func New(path string, opts ...Option) *Logger {
	l := &Logger{
		path:   path,
		now:    time.Now,
		logger: log.New(os.Stderr),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the error log path
func (l *Logger) Path() string {
	return l.path
}

// Append writes rec as one line, creating the file if needed
func (l *Logger) Append(rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}

	// one write per record keeps lines whole under O_APPEND
	if _, err := file.WriteString(rec.String() + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("write error log: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close error log: %w", err)
	}
	return nil
}

// LogFailure records a failed read. It never fails: an append error is
// handed to the OnError hook, logged, and dropped. It reports whether the
// record was written.
func (l *Logger) LogFailure(kind fault.Kind, message, path string) bool {
	rec := Record{Time: l.now(), Kind: kind, Path: path, Message: message}
	if err := l.Append(rec); err != nil {
		l.logger.Warn("could not log error", "log", l.path, "kind", kind, "err", err)
		if l.onError != nil {
			l.onError(err)
		}
		return false
	}
	l.logger.Debug("failure recorded", "log", l.path, "kind", kind, "path", path)
	return true
}

// LogError records a classified read failure
func (l *Logger) LogError(err *fault.Error) bool {
	return l.LogFailure(err.Kind, err.Detail(), err.Path)
}
