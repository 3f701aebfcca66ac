// Package shellexec provides the production types.CommandRunner backed by
// os/exec.
package shellexec

import (
	"context"
	"os"
	"os/exec"

	"github.com/albertony/wslkit/pkg/logging"
	"github.com/albertony/wslkit/pkg/types"
)

// Runner executes external binaries with stdout/stderr attached to the
// current terminal, so interactive prompts (passphrases, confirmations from
// package managers) reach the user.
type Runner struct{}

// New creates the production command runner.
func New() types.CommandRunner {
	return &Runner{}
}

func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	logging.LogCommand(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Output()
}

func (r *Runner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
