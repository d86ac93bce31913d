package fingerprint

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskBackend keeps artifacts as plain files in Dir.
type DiskBackend struct {
	Dir string
}

// NewDiskBackend returns a backend rooted at dir, the system temp directory when empty.
func NewDiskBackend(dir string) (*DiskBackend, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskBackend{Dir: dir}, nil
}

// Create implements Backend.
func (b *DiskBackend) Create(_ context.Context, name string) (io.WriteCloser, error) {
	return os.Create(b.Location(name))
}

// Open implements Backend.
func (b *DiskBackend) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(b.Location(name))
}

// Remove implements Backend. Removing a missing file is not an error.
func (b *DiskBackend) Remove(_ context.Context, name string) error {
	err := os.Remove(b.Location(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Location implements Backend.
func (b *DiskBackend) Location(name string) string {
	return filepath.Join(b.Dir, name)
}
