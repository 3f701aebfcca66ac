package provision

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
)

const sudoersDir = "/etc/sudoers.d"

// SudoersDropInPath returns the drop-in file path for the given name.
func SudoersDropInPath(name string) string {
	return filepath.Join(sudoersDir, name)
}

// GroupSudoersContent renders a drop-in granting the named group full sudo
// rights without a password, the usual setup for single-user WSL and
// container environments.
func GroupSudoersContent(group string) []byte {
	return []byte(fmt.Sprintf("%%%s ALL=(ALL) NOPASSWD: ALL\n", group))
}

// EnsureSudoersDropIn writes the drop-in only when its content differs from
// what is already installed. Sudoers drop-ins must be mode 0440.
func EnsureSudoersDropIn(fsys types.FS, name string, content []byte) (bool, error) {
	path := SudoersDropInPath(name)

	if existing, err := fsys.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if err := fsys.MkdirAll(sudoersDir, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", sudoersDir)
	}
	if err := fsys.WriteFile(path, content, 0440); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return true, nil
}
