package provision

import (
	"context"

	"github.com/albertony/wslkit/pkg/types"
)

// Pacman drives the Arch Linux package manager.
type Pacman struct {
	runner types.CommandRunner
}

// NewPacman creates the pacman package manager.
func NewPacman(runner types.CommandRunner) *Pacman {
	return &Pacman{runner: runner}
}

func (p *Pacman) Name() string {
	return "pacman"
}

func (p *Pacman) Refresh(ctx context.Context) error {
	return p.runner.Run(ctx, "pacman", "-Sy", "--noconfirm")
}

func (p *Pacman) Install(ctx context.Context, packages ...string) error {
	args := append([]string{"-S", "--needed", "--noconfirm"}, packages...)
	return p.runner.Run(ctx, "pacman", args...)
}

func (p *Pacman) Upgrade(ctx context.Context) error {
	return p.runner.Run(ctx, "pacman", "-Syu", "--noconfirm")
}

var _ PackageManager = (*Pacman)(nil)
