package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystemRoundTrip(t *testing.T) {
	m := NewMemoryFileSystem()

	if m.Exists("capture.bin") {
		t.Error("file should not exist before write")
	}

	data := []byte{0x3A, 0x00, 0xFF}
	if err := m.WriteFile("capture.bin", data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := m.ReadFile("capture.bin")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("read back %v, want %v", got, data)
	}

	// Mutating the returned slice must not affect the stored copy.
	got[0] = 0x00
	again, err := m.ReadFile("capture.bin")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if again[0] != 0x3A {
		t.Error("stored data was mutated through the returned slice")
	}
}

func TestMemoryFileSystemRemove(t *testing.T) {
	m := NewMemoryFileSystem()

	err := m.Remove("missing.bin")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("remove of missing file: got %v, want fs.ErrNotExist", err)
	}

	if err := m.WriteFile("present.bin", []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := m.Remove("present.bin"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if m.Exists("present.bin") {
		t.Error("file still exists after remove")
	}
}

func TestMemoryFileSystemReadMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.ReadFile("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
}

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.bin")
	osfs := OSFileSystem{}

	if osfs.Exists(path) {
		t.Error("file should not exist yet")
	}
	if err := osfs.WriteFile(path, []byte("bytes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := osfs.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "bytes" {
		t.Errorf("read back %q", got)
	}
	if err := osfs.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if osfs.Exists(path) {
		t.Error("file still exists after remove")
	}
	if err := osfs.Remove(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("second remove: got %v, want fs.ErrNotExist", err)
	}
}
