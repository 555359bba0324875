package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/schemadoc/internal/adapters/filesystem"
)

func TestBufferStore_WriteReadRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "buffers")
	store := filesystem.NewBufferStore(dir)

	path, err := store.Write("table", "___description: \n")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if filepath.Base(path) != filesystem.TableBufferName {
		t.Errorf("expected %s, got %s", filesystem.TableBufferName, path)
	}

	content, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if content != "___description: \n" {
		t.Errorf("unexpected content %q", content)
	}

	// Writing again replaces the buffer
	if _, err := store.Write("table", "replaced"); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	if content, _ := store.Read(path); content != "replaced" {
		t.Errorf("expected replaced content, got %q", content)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected buffer to be gone")
	}
	if err := store.Remove(path); err != nil {
		t.Errorf("expected removing a missing buffer to succeed, got %v", err)
	}
}

func TestBufferStore_Kinds(t *testing.T) {
	store := filesystem.NewBufferStore(t.TempDir())

	path, err := store.Path("column")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if filepath.Base(path) != filesystem.ColumnBufferName {
		t.Errorf("expected %s, got %s", filesystem.ColumnBufferName, path)
	}
	if _, err := store.Write("view", "x"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
