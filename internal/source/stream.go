package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/TimelordUK/emrlog/internal/fault"
)

// StreamReader reads a file line by line
type StreamReader struct{}

// NewStreamReader creates a streaming reader
func NewStreamReader() *StreamReader {
	return &StreamReader{}
}

// Name returns the strategy name
func (r *StreamReader) Name() string {
	return "stream"
}

// Read collects every line of src
func (r *StreamReader) Read(src LogSource) (*Result, error) {
	res := &Result{Source: src}
	err := streamFile(src, res, func(line Line) error {
		res.Lines = append(res.Lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Records = len(res.Lines)
	return res, nil
}

// Stream calls fn for each line of src in order without holding the whole
// file. An error returned by fn stops the read and is returned as is.
func (r *StreamReader) Stream(src LogSource, fn func(Line) error) error {
	return streamFile(src, nil, fn)
}

// streamFile opens src, records its stat into res when non-nil, and feeds
// every line to fn. The file is closed on every path.
func streamFile(src LogSource, res *Result, fn func(Line) error) error {
	file, err := os.Open(src.Path)
	if err != nil {
		return fault.Classify(src.Path, fault.PhaseOpen, err)
	}
	defer file.Close()

	if res != nil {
		info, err := file.Stat()
		if err != nil {
			return fault.Classify(src.Path, fault.PhaseRead, err)
		}
		res.Size = info.Size()
		res.ModTime = info.ModTime()
	}

	return scanLines(src.Path, file, fn)
}

func scanLines(path string, r io.Reader, fn func(Line) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if !utf8.ValidString(text) {
			return fault.Classify(path, fault.PhaseRead, fmt.Errorf("line %d: %w", n, ErrEncoding))
		}
		if err := fn(Line{Number: n, Text: text}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fault.Classify(path, fault.PhaseRead, err)
	}
	return nil
}
