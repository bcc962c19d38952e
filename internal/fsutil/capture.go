package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
)

// LoadCapture reads a previously persisted raw capture for offline
// replay. Errors are the filesystem's own, surfaced unchanged.
func LoadCapture(fsys FileSystem, path string) ([]byte, error) {
	return fsys.ReadFile(path)
}

// SaveCapture persists a raw capture buffer, overwriting any previous
// file at the path: the old file is removed first (a missing file is not
// an error) and the buffer is then written whole.
func SaveCapture(fsys FileSystem, path string, data []byte) error {
	if err := fsys.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove previous capture %s: %w", path, err)
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write capture %s: %w", path, err)
	}
	return nil
}
