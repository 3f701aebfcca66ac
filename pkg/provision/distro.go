package provision

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
)

// osReleasePath is the standard distribution identification file.
const osReleasePath = "/etc/os-release"

// Distro identifies a supported distribution.
type Distro string

const (
	DistroArch    Distro = "arch"
	DistroFedora  Distro = "fedora"
	DistroDebian  Distro = "debian"
	DistroUbuntu  Distro = "ubuntu"
	DistroUnknown Distro = "unknown"
)

// Family maps a distro to its package-list family identifier: Ubuntu
// shares the Debian family.
func (d Distro) Family() string {
	if d == DistroUbuntu {
		return string(DistroDebian)
	}
	return string(d)
}

// OSRelease holds the fields of /etc/os-release this tool cares about.
type OSRelease struct {
	ID        string
	IDLike    []string
	VersionID string
}

// ParseOSRelease reads and parses /etc/os-release from fsys.
func ParseOSRelease(fsys types.FS) (*OSRelease, error) {
	data, err := fsys.ReadFile(osReleasePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", osReleasePath)
	}

	release := &OSRelease{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)
		switch key {
		case "ID":
			release.ID = value
		case "ID_LIKE":
			release.IDLike = strings.Fields(value)
		case "VERSION_ID":
			release.VersionID = value
		}
	}
	return release, nil
}

// DetectDistro identifies the running distribution from /etc/os-release,
// falling back to ID_LIKE when the ID itself is not recognized.
func DetectDistro(fsys types.FS) (Distro, error) {
	release, err := ParseOSRelease(fsys)
	if err != nil {
		return DistroUnknown, err
	}

	if d := matchDistroID(release.ID); d != DistroUnknown {
		return d, nil
	}
	for _, like := range release.IDLike {
		if d := matchDistroID(like); d != DistroUnknown {
			return d, nil
		}
	}
	return DistroUnknown, errors.Newf(errors.ErrDistroUnknown, "unsupported distribution %q", release.ID)
}

func matchDistroID(id string) Distro {
	switch id {
	case "arch":
		return DistroArch
	case "fedora":
		return DistroFedora
	case "debian":
		return DistroDebian
	case "ubuntu":
		return DistroUbuntu
	}
	return DistroUnknown
}
