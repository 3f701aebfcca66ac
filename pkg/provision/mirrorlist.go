package provision

import (
	"strings"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
)

const mirrorlistPath = "/etc/pacman.d/mirrorlist"

// EnableMirrors uncomments the Server lines under the section for the given
// country in the pacman mirrorlist. The file groups mirrors under "## <country>"
// headers. Mirrors already active are left alone.
func EnableMirrors(fsys types.FS, country string) (bool, error) {
	data, err := fsys.ReadFile(mirrorlistPath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", mirrorlistPath)
	}

	lines := strings.Split(string(data), "\n")
	changed := false
	inSection := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			inSection = strings.EqualFold(strings.TrimSpace(trimmed[3:]), country)
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(trimmed, "#Server") || strings.HasPrefix(trimmed, "# Server") {
			lines[i] = strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	if err := fsys.WriteFile(mirrorlistPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", mirrorlistPath)
	}
	return true, nil
}
