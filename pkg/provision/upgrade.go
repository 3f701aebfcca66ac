package provision

import (
	"context"
	"fmt"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
	goversion "github.com/hashicorp/go-version"
)

// VersionSource yields the release version to upgrade to. The production
// flow takes it from a command-line flag; discovery mechanisms can plug in
// here.
type VersionSource interface {
	TargetRelease(ctx context.Context) (string, error)
}

// StaticVersion is a VersionSource with a fixed value.
type StaticVersion string

func (s StaticVersion) TargetRelease(ctx context.Context) (string, error) {
	return string(s), nil
}

// UpgradeDecision classifies a release comparison.
type UpgradeDecision int

const (
	// UpToDate means the target is the running release.
	UpToDate UpgradeDecision = iota

	// UpgradeAvailable means the target is newer than the running release.
	UpgradeAvailable

	// TargetOlder means the target is older than the running release;
	// downgrades are refused.
	TargetOlder
)

func (d UpgradeDecision) String() string {
	switch d {
	case UpToDate:
		return "up-to-date"
	case UpgradeAvailable:
		return "upgrade-available"
	case TargetOlder:
		return "target-older"
	}
	return "unknown"
}

// PlanUpgrade compares the running release version against the target.
func PlanUpgrade(current, target string) (UpgradeDecision, error) {
	currentVersion, err := goversion.NewVersion(current)
	if err != nil {
		return UpToDate, errors.Wrapf(err, errors.ErrInvalidInput, "invalid current release %q", current)
	}
	targetVersion, err := goversion.NewVersion(target)
	if err != nil {
		return UpToDate, errors.Wrapf(err, errors.ErrInvalidInput, "invalid target release %q", target)
	}

	switch {
	case targetVersion.GreaterThan(currentVersion):
		return UpgradeAvailable, nil
	case targetVersion.LessThan(currentVersion):
		return TargetOlder, nil
	}
	return UpToDate, nil
}

// ReleaseUpgradeStep builds the distro-sync step that moves a Fedora system
// to the target release.
func ReleaseUpgradeStep(dnf *Dnf, target string) Step {
	return Step{
		Name: fmt.Sprintf("upgrade to Fedora %s", target),
		Run: func(ctx context.Context) (bool, error) {
			return true, dnf.DistroSync(ctx, target)
		},
	}
}

// CurrentRelease reads the running release version from /etc/os-release.
func CurrentRelease(fsys types.FS) (string, error) {
	release, err := ParseOSRelease(fsys)
	if err != nil {
		return "", err
	}
	if release.VersionID == "" {
		return "", errors.New(errors.ErrDistroUnknown, "os-release has no VERSION_ID")
	}
	return release.VersionID, nil
}
