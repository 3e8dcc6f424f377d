package source

import (
	"bufio"
	"fmt"
	"unicode/utf8"

	"github.com/TimelordUK/emrlog/internal/fault"
	"github.com/TimelordUK/emrlog/internal/index"
	emrio "github.com/TimelordUK/emrlog/internal/io"
)

// MappedReader reads the whole file at once through a memory mapping
type MappedReader struct{}

// NewMappedReader creates a whole-file reader
func NewMappedReader() *MappedReader {
	return &MappedReader{}
}

// Name returns the strategy name
func (r *MappedReader) Name() string {
	return "whole-file"
}

// Read maps src, indexes its lines and copies them into a list
func (r *MappedReader) Read(src LogSource) (*Result, error) {
	file, err := emrio.OpenMapped(src.Path)
	if err != nil {
		return nil, fault.Classify(src.Path, fault.PhaseOpen, err)
	}
	defer file.Close()

	lineIndex, err := index.BuildLineIndex(file)
	if err != nil {
		return nil, fault.Classify(src.Path, fault.PhaseRead, err)
	}

	count := lineIndex.LineCount()
	res := &Result{
		Source:  src,
		Lines:   make([]Line, 0, count),
		Records: count,
		Size:    file.Size(),
		ModTime: file.ModTime(),
	}

	for i := 0; i < count; i++ {
		if tooLong(lineIndex, i) {
			return nil, fault.Classify(src.Path, fault.PhaseRead, fmt.Errorf("line %d: %w", i+1, bufio.ErrTooLong))
		}
	}

	raw, err := lineIndex.GetLines(0, count)
	if err != nil {
		return nil, fault.Classify(src.Path, fault.PhaseRead, err)
	}
	for i, content := range raw {
		if !utf8.Valid(content) {
			return nil, fault.Classify(src.Path, fault.PhaseRead, fmt.Errorf("line %d: %w", i+1, ErrEncoding))
		}
		res.Lines = append(res.Lines, Line{Number: i + 1, Text: string(content)})
	}

	return res, nil
}

// tooLong applies the same limit as the line scanner: a terminated line must
// fit in MaxLineLength with its newline, an unterminated one must leave room
// for at least one more byte.
func tooLong(lineIndex *index.LineIndex, i int) bool {
	n := lineIndex.LineLen(i)
	if lineIndex.Terminated(i) {
		return n > MaxLineLength
	}
	return n >= MaxLineLength
}
