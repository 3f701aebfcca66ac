package provision

import (
	"context"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
)

// PackageManager drives a distribution's native package manager. All
// implementations shell out through the injected command runner and run
// non-interactively.
type PackageManager interface {
	// Name returns the underlying binary name.
	Name() string

	// Refresh updates the package databases.
	Refresh(ctx context.Context) error

	// Install installs the named packages, skipping those already present.
	Install(ctx context.Context, packages ...string) error

	// Upgrade brings all installed packages up to date.
	Upgrade(ctx context.Context) error
}

// PackageManagerFor returns the package manager matching the distro.
func PackageManagerFor(distro Distro, runner types.CommandRunner) (PackageManager, error) {
	switch distro {
	case DistroArch:
		return NewPacman(runner), nil
	case DistroFedora:
		return NewDnf(runner), nil
	case DistroDebian, DistroUbuntu:
		return NewAptGet(runner), nil
	}
	return nil, errors.Newf(errors.ErrDistroUnknown, "no package manager for distribution %q", distro)
}
