package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem is the slice of the host filesystem the tool touches. Tests
// substitute an in-memory implementation.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Abs(path string) (string, error)
}

// DefaultFS implements the Filesystem interface using the standard `os` and `filepath` packages.
// It represents the real, underlying filesystem of the host operating system.
type DefaultFS struct{}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (DefaultFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (DefaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(name, data, perm)
}

func (DefaultFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}
