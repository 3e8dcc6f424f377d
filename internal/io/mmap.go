package io

import (
	"bytes"
	"os"
	"syscall"
	"time"

	"golang.org/x/exp/mmap"
)

type readerAt interface {
	ReadAt(p []byte, off int64) (int, error)
	Close() error
}

// memReader holds a file read into memory
type memReader struct {
	*bytes.Reader
}

func (memReader) Close() error { return nil }

// MappedFile provides memory-mapped read access to a file
type MappedFile struct {
	reader  readerAt
	size    int64
	modTime time.Time
}

// OpenMapped opens a file with memory mapping.
// Files whose stat size cannot be trusted (non-regular files and files that
// report a size of 0, like most of /proc) are read into memory instead.
// Errors from the underlying open are returned unwrapped so callers can
// inspect them with errors.Is.
func OpenMapped(path string) (*MappedFile, error) {
	// mmap would happily try to map a directory; refuse it up front
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "read", Path: path, Err: syscall.EISDIR}
	}

	if !info.Mode().IsRegular() || info.Size() == 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return &MappedFile{
			reader:  memReader{bytes.NewReader(data)},
			size:    int64(len(data)),
			modTime: info.ModTime(),
		}, nil
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	return &MappedFile{
		reader:  reader,
		size:    int64(reader.Len()),
		modTime: info.ModTime(),
	}, nil
}

// ReadAt reads len(p) bytes at offset
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return m.reader.ReadAt(p, off)
}

// Size returns the mapped size
func (m *MappedFile) Size() int64 {
	return m.size
}

// ModTime returns the modification time seen when the file was opened
func (m *MappedFile) ModTime() time.Time {
	return m.modTime
}

// Close releases the mapping
func (m *MappedFile) Close() error {
	return m.reader.Close()
}

// ReadRange reads bytes from start to end
func (m *MappedFile) ReadRange(start, end int64) ([]byte, error) {
	if end > m.size {
		end = m.size
	}
	if start >= end {
		return nil, nil
	}

	buf := make([]byte, end-start)
	_, err := m.reader.ReadAt(buf, start)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
