package index

import (
	"bytes"

	emrio "github.com/TimelordUK/emrlog/internal/io"
)

// LineIndex stores byte offsets for each line in a file
type LineIndex struct {
	offsets    []int64 // byte offset of each line start
	file       *emrio.MappedFile
	endNewline bool // file ends with \n
}

// BuildLineIndex scans the file and builds a line offset index.
// An empty file has no lines; a trailing newline does not start a new one.
func BuildLineIndex(file *emrio.MappedFile) (*LineIndex, error) {
	size := file.Size()
	if size == 0 {
		return &LineIndex{file: file}, nil
	}

	// Estimate initial capacity (assume ~100 bytes per line)
	estimatedLines := int(size/100) + 1
	offsets := make([]int64, 0, estimatedLines)
	offsets = append(offsets, 0)

	const chunkSize = 64 * 1024
	buf := make([]byte, chunkSize)

	var pos int64
	var last byte
	for pos < size {
		readSize := chunkSize
		if pos+int64(readSize) > size {
			readSize = int(size - pos)
		}

		n, err := file.ReadAt(buf[:readSize], pos)
		if err != nil {
			return nil, err
		}

		chunk := buf[:n]
		offset := 0
		for {
			idx := bytes.IndexByte(chunk[offset:], '\n')
			if idx == -1 {
				break
			}
			lineStart := pos + int64(offset) + int64(idx) + 1
			if lineStart < size {
				offsets = append(offsets, lineStart)
			}
			offset += idx + 1
		}

		if n > 0 {
			last = chunk[n-1]
		}
		pos += int64(n)
	}

	return &LineIndex{
		offsets:    offsets,
		file:       file,
		endNewline: last == '\n',
	}, nil
}

// LineCount returns the total number of lines
func (idx *LineIndex) LineCount() int {
	return len(idx.offsets)
}

// LineLen returns the length of a line in bytes, terminator included
func (idx *LineIndex) LineLen(lineNum int) int64 {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return 0
	}
	return idx.end(lineNum) - idx.offsets[lineNum]
}

// GetLine returns the content of line at given index (0-based)
func (idx *LineIndex) GetLine(lineNum int) ([]byte, error) {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return nil, nil
	}

	content, err := idx.file.ReadRange(idx.offsets[lineNum], idx.end(lineNum))
	if err != nil {
		return nil, err
	}

	// Same terminator handling as bufio.ScanLines: one \n, then one \r
	content = bytes.TrimSuffix(content, []byte("\n"))
	content = bytes.TrimSuffix(content, []byte("\r"))
	return content, nil
}

// GetLines returns a range of lines
func (idx *LineIndex) GetLines(start, count int) ([][]byte, error) {
	if start < 0 {
		start = 0
	}
	if start >= len(idx.offsets) {
		return nil, nil
	}
	if start+count > len(idx.offsets) {
		count = len(idx.offsets) - start
	}

	lines := make([][]byte, count)
	for i := 0; i < count; i++ {
		line, err := idx.GetLine(start + i)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}

// Terminated reports whether a line ends with a newline. Only the last
// line of a file can be unterminated.
func (idx *LineIndex) Terminated(lineNum int) bool {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return false
	}
	return lineNum < len(idx.offsets)-1 || idx.endNewline
}

func (idx *LineIndex) end(lineNum int) int64 {
	if lineNum+1 < len(idx.offsets) {
		return idx.offsets[lineNum+1]
	}
	return idx.file.Size()
}
