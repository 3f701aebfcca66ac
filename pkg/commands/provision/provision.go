// Package provision implements the provision command: it detects the
// running distribution and applies its bootstrap steps.
package provision

import (
	"context"

	"github.com/albertony/wslkit/pkg/config"
	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/logging"
	sysprovision "github.com/albertony/wslkit/pkg/provision"
	"github.com/albertony/wslkit/pkg/shellexec"
	"github.com/albertony/wslkit/pkg/types"
)

// Options defines the options for the ProvisionSystem command.
type Options struct {
	// Distro overrides distribution detection ("arch", "fedora", "debian",
	// "ubuntu"). Empty means detect from /etc/os-release.
	Distro string

	// DryRun logs the steps without executing them.
	DryRun bool

	// Config holds the provisioning configuration. Nil means load it.
	Config *config.ProvisionConfig

	// FS overrides the OS filesystem, for tests.
	FS types.FS

	// Runner overrides the production command runner, for tests.
	Runner types.CommandRunner
}

// ProvisionSystem runs the bootstrap step sequence for the distribution.
func ProvisionSystem(ctx context.Context, opts Options) ([]sysprovision.StepResult, error) {
	log := logging.GetLogger("commands.provision")
	log.Debug().Str("command", "ProvisionSystem").Msg("Executing command")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	runner := opts.Runner
	if runner == nil {
		runner = shellexec.New()
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = &loaded.Provision
	}

	var distro sysprovision.Distro
	if opts.Distro != "" {
		distro = sysprovision.Distro(opts.Distro)
	} else {
		detected, err := sysprovision.DetectDistro(fs)
		if err != nil {
			return nil, err
		}
		distro = detected
	}
	log.Info().Str("distro", string(distro)).Bool("dry_run", opts.DryRun).Msg("Provisioning system")

	steps, err := sysprovision.BootstrapSteps(distro, cfg, fs, runner)
	if err != nil {
		return nil, err
	}

	runnerOpts := sysprovision.RunnerOptions{DryRun: opts.DryRun, Logger: log}
	results, err := sysprovision.NewRunner(runnerOpts).Execute(ctx, steps)
	if err != nil {
		log.Error().Err(err).Msg("Provisioning failed")
		return results, err
	}

	log.Info().Int("steps", len(results)).Msg("Provisioning completed")
	return results, nil
}
