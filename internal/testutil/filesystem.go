// Package testutil provides in-memory test doubles for the ports package.
package testutil

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// FileSystem is an in-memory implementation of ports.FileSystem.
type FileSystem struct {
	mu       sync.Mutex
	files    map[string][]byte
	dirs     map[string]bool
	symlinks map[string]string
}

// NewFileSystem creates an empty in-memory file system.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:    make(map[string][]byte),
		dirs:     make(map[string]bool),
		symlinks: make(map[string]string),
	}
}

// AddFile registers a file with the given content.
func (fs *FileSystem) AddFile(path, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = []byte(content)
}

// AddDir registers a directory.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
}

// ReadFile returns the registered content.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if data, ok := fs.files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("read %s: %w", path, os.ErrNotExist)
}

// WriteFile stores the content.
func (fs *FileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = data
	return nil
}

// Exists reports whether the path is a registered file, directory, symlink
// or a parent of one.
func (fs *FileSystem) Exists(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.files[path]; ok {
		return true
	}
	if _, ok := fs.symlinks[path]; ok {
		return true
	}
	return fs.isDirLocked(path)
}

// IsDir reports whether the path is a registered directory or a parent of a
// registered entry.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.isDirLocked(path)
}

func (fs *FileSystem) isDirLocked(path string) bool {
	if fs.dirs[path] {
		return true
	}
	prefix := strings.TrimSuffix(path, "/") + "/"
	for file := range fs.files {
		if strings.HasPrefix(file, prefix) {
			return true
		}
	}
	for dir := range fs.dirs {
		if strings.HasPrefix(dir, prefix) {
			return true
		}
	}
	return false
}

// CreateSymlink records a symlink.
func (fs *FileSystem) CreateSymlink(target, link string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.symlinks[link]; ok {
		return fmt.Errorf("symlink %s: %w", link, os.ErrExist)
	}
	fs.symlinks[link] = target
	return nil
}

// SymlinkTarget returns the recorded target of a symlink, if any.
func (fs *FileSystem) SymlinkTarget(link string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	target, ok := fs.symlinks[link]
	return target, ok
}

// CopyFile copies a registered file.
func (fs *FileSystem) CopyFile(src, dest string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, ok := fs.files[src]
	if !ok {
		return fmt.Errorf("copy %s: %w", src, os.ErrNotExist)
	}
	fs.files[dest] = append([]byte(nil), data...)
	return nil
}

// MkdirAll registers a directory.
func (fs *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[path] = true
	return nil
}

// Rename moves a registered file or directory.
func (fs *FileSystem) Rename(oldPath, newPath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if data, ok := fs.files[oldPath]; ok {
		delete(fs.files, oldPath)
		fs.files[newPath] = data
		return nil
	}
	if fs.dirs[oldPath] {
		delete(fs.dirs, oldPath)
		fs.dirs[newPath] = true
		return nil
	}
	return fmt.Errorf("rename %s: %w", oldPath, os.ErrNotExist)
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
