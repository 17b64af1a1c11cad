// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"os"
)

// FileSystem provides the file system operations wpsetup needs: existence
// checks during validation and content manipulation during step execution.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsDir(path string) bool
	CreateSymlink(target, link string) error
	CopyFile(src, dest string) error
	MkdirAll(path string, perm os.FileMode) error
	Rename(oldPath, newPath string) error
}

// CommandResult represents the result of executing an external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner executes external commands (the wp binary, primarily).
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}
