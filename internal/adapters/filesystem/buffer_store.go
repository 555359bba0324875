// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/example/schemadoc/internal/ports/secondary"
)

// Buffer file names, one per entity kind.
const (
	TableBufferName  = "table_edit_file.tmp"
	ColumnBufferName = "col_edit_file.tmp"
)

// BufferStore implements secondary.BufferStore under a single directory.
type BufferStore struct {
	dir string
}

// NewBufferStore creates a buffer store rooted at dir.
// If dir is empty, defaults to the OS temp directory.
func NewBufferStore(dir string) *BufferStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &BufferStore{dir: dir}
}

// Path returns the buffer path for kind.
func (s *BufferStore) Path(kind string) (string, error) {
	switch kind {
	case "table":
		return filepath.Join(s.dir, TableBufferName), nil
	case "column":
		return filepath.Join(s.dir, ColumnBufferName), nil
	}
	return "", fmt.Errorf("unknown buffer kind %q", kind)
}

// Write replaces the buffer for kind atomically.
func (s *BufferStore) Write(kind, content string) (string, error) {
	path, err := s.Path(kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create buffer directory: %w", err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return "", fmt.Errorf("failed to write edit buffer: %w", err)
	}
	return path, nil
}

// Read returns the buffer content.
func (s *BufferStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edit buffer: %w", err)
	}
	return string(data), nil
}

// Remove deletes the buffer. A missing file is not an error.
func (s *BufferStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove edit buffer: %w", err)
	}
	return nil
}

// Ensure BufferStore implements the interface
var _ secondary.BufferStore = (*BufferStore)(nil)
