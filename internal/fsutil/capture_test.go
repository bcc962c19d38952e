package fsutil

import (
	"errors"
	"testing"
)

func TestSaveCaptureOverwrites(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := SaveCapture(m, "imu_bytes.bin", []byte("old capture")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveCapture(m, "imu_bytes.bin", []byte("new")); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := LoadCapture(m, "imu_bytes.bin")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("loaded %q, want %q", got, "new")
	}
}

func TestSaveCaptureMissingPriorFile(t *testing.T) {
	m := NewMemoryFileSystem()

	// No prior file: the remove step's not-exist error is ignored.
	if err := SaveCapture(m, "fresh.bin", []byte{0x01}); err != nil {
		t.Fatalf("save to fresh path: %v", err)
	}
	if !m.Exists("fresh.bin") {
		t.Error("capture was not written")
	}
}

func TestLoadCaptureMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := LoadCapture(m, "missing.bin"); err == nil {
		t.Error("expected error for missing capture file")
	}
}

type failingRemoveFS struct {
	*MemoryFileSystem
	removeErr error
}

func (f failingRemoveFS) Remove(name string) error { return f.removeErr }

func TestSaveCaptureRemoveFailure(t *testing.T) {
	sentinel := errors.New("permission denied")
	fsys := failingRemoveFS{NewMemoryFileSystem(), sentinel}

	err := SaveCapture(fsys, "protected.bin", []byte("x"))
	if !errors.Is(err, sentinel) {
		t.Errorf("got %v, want wrapped %v", err, sentinel)
	}
}
