package provision

import (
	"context"

	"github.com/albertony/wslkit/pkg/types"
)

// Dnf drives the Fedora package manager, falling back to microdnf in
// minimal container images where dnf is not installed.
type Dnf struct {
	runner types.CommandRunner
	binary string
}

// NewDnf creates the dnf package manager, probing for the installed binary.
func NewDnf(runner types.CommandRunner) *Dnf {
	binary := "dnf"
	if _, err := runner.LookPath("dnf"); err != nil {
		binary = "microdnf"
	}
	return &Dnf{runner: runner, binary: binary}
}

func (d *Dnf) Name() string {
	return d.binary
}

func (d *Dnf) Refresh(ctx context.Context) error {
	// microdnf has no makecache; its install/upgrade refresh metadata
	// on demand.
	if d.binary == "microdnf" {
		return nil
	}
	return d.runner.Run(ctx, d.binary, "makecache")
}

func (d *Dnf) Install(ctx context.Context, packages ...string) error {
	args := append([]string{"install", "-y"}, packages...)
	return d.runner.Run(ctx, d.binary, args...)
}

func (d *Dnf) Upgrade(ctx context.Context) error {
	return d.runner.Run(ctx, d.binary, "upgrade", "-y")
}

// DistroSync upgrades to the given release version. Only full dnf supports
// the release upgrade path.
func (d *Dnf) DistroSync(ctx context.Context, releasever string) error {
	return d.runner.Run(ctx, d.binary, "--releasever="+releasever, "distro-sync", "-y")
}

var _ PackageManager = (*Dnf)(nil)
