// Package wio provides memory-mapped read access to trace files.
package wio

import (
	"os"

	"golang.org/x/exp/mmap"
)

// MappedFile provides random read access to a file via a memory map.
// Trace bodies are scanned in large chunks, and mapping avoids paging
// the whole file through userspace buffers.
type MappedFile struct {
	reader *mmap.ReaderAt
	size   int64
	path   string
}

// OpenMapped opens a file with memory mapping.
func OpenMapped(path string) (*MappedFile, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		reader.Close()
		return nil, err
	}
	return &MappedFile{reader: reader, size: info.Size(), path: path}, nil
}

// ReadAt reads len(p) bytes at offset.
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return m.reader.ReadAt(p, off)
}

// Size returns the file size.
func (m *MappedFile) Size() int64 { return m.size }

// Path returns the file path.
func (m *MappedFile) Path() string { return m.path }

// Close closes the memory mapping.
func (m *MappedFile) Close() error { return m.reader.Close() }
