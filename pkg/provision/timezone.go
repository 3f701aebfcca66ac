package provision

import (
	"path/filepath"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
)

const (
	localtimePath = "/etc/localtime"
	zoneinfoDir   = "/usr/share/zoneinfo"
)

// EnsureTimezone points /etc/localtime at the zoneinfo entry for the given
// timezone name (e.g. "Europe/Oslo"). A link that already points at the
// right zone is left alone.
func EnsureTimezone(fsys types.FS, timezone string) (bool, error) {
	target := filepath.Join(zoneinfoDir, timezone)

	if current, err := fsys.Readlink(localtimePath); err == nil && current == target {
		return false, nil
	}

	// Replace whatever is there, symlink or plain file.
	if _, err := fsys.Lstat(localtimePath); err == nil {
		if err := fsys.Remove(localtimePath); err != nil {
			return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", localtimePath)
		}
	}

	if err := fsys.Symlink(target, localtimePath); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to link %s to %s", localtimePath, target)
	}
	return true, nil
}
