package provision

import (
	"context"

	"github.com/albertony/wslkit/pkg/types"
)

// debconfEnv suppresses debconf prompts during apt-get runs.
const debconfEnv = "DEBIAN_FRONTEND=noninteractive"

// AptGet drives the Debian/Ubuntu package manager.
type AptGet struct {
	runner types.CommandRunner
}

// NewAptGet creates the apt-get package manager.
func NewAptGet(runner types.CommandRunner) *AptGet {
	return &AptGet{runner: runner}
}

func (a *AptGet) Name() string {
	return "apt-get"
}

func (a *AptGet) Refresh(ctx context.Context) error {
	return a.runner.Run(ctx, "apt-get", "update")
}

func (a *AptGet) Install(ctx context.Context, packages ...string) error {
	args := append([]string{debconfEnv, "apt-get", "install", "-y", "-q"}, packages...)
	return a.runner.Run(ctx, "env", args...)
}

func (a *AptGet) Upgrade(ctx context.Context) error {
	return a.runner.Run(ctx, "env", debconfEnv, "apt-get", "dist-upgrade", "-y", "-q")
}

var _ PackageManager = (*AptGet)(nil)
