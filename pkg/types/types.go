// Package types holds the interfaces shared across wslkit packages.
//
// Keeping them here avoids import cycles between the packages that
// implement them and the packages that consume them.
package types

import (
	"context"
	"io/fs"
)

// FS abstracts filesystem operations so commands can run against the real
// filesystem in production and an in-memory filesystem in tests.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
}

// CommandRunner abstracts execution of external binaries (package managers,
// ssh-agent) so the provisioning and agent logic can be tested without
// spawning processes.
type CommandRunner interface {
	// Run executes the command, streaming stdout/stderr to the caller's
	// terminal. Interactive prompts from the child must reach the user.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports the absolute path of the named binary, or an error
	// if it is not installed.
	LookPath(name string) (string, error)
}

// Confirmer asks the user to approve an action before it runs.
type Confirmer interface {
	Confirm(prompt string) bool
}
