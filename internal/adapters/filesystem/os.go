// Package filesystem provides the operating-system implementation of
// ports.FileSystem.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// OSFileSystem implements ports.FileSystem using real file system operations.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile reads a file and returns its contents.
func (fs *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file.
func (fs *OSFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Exists checks if a file or directory exists.
func (fs *OSFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir checks if a path is a directory.
func (fs *OSFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CreateSymlink creates a symbolic link.
func (fs *OSFileSystem) CreateSymlink(target, link string) error {
	return os.Symlink(target, link)
}

// CopyFile copies a file, creating parent directories of the destination as
// needed and preserving the source mode.
func (fs *OSFileSystem) CopyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: is a directory", src)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// MkdirAll creates a directory and all necessary parents.
func (fs *OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Rename renames (moves) a file.
func (fs *OSFileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Ensure OSFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*OSFileSystem)(nil)
