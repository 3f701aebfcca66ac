// Package upgrade implements the Fedora release upgrade command.
package upgrade

import (
	"context"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/logging"
	"github.com/albertony/wslkit/pkg/provision"
	"github.com/albertony/wslkit/pkg/shellexec"
	"github.com/albertony/wslkit/pkg/types"
)

// Options defines the options for the UpgradeRelease command.
type Options struct {
	// Source yields the release version to upgrade to. Required.
	Source provision.VersionSource

	// Confirmer approves the upgrade before packages are touched. Nil
	// means auto-approve (the --yes flag).
	Confirmer types.Confirmer

	// DryRun logs the upgrade step without executing it.
	DryRun bool

	// FS overrides the OS filesystem, for tests.
	FS types.FS

	// Runner overrides the production command runner, for tests.
	Runner types.CommandRunner
}

// Status reports the outcome of the upgrade command.
type Status struct {
	Current  string
	Target   string
	Decision provision.UpgradeDecision

	// Upgraded is true when the distro-sync step actually ran.
	Upgraded bool

	// Declined is true when the user rejected the confirmation prompt.
	Declined bool
}

// UpgradeRelease compares the running Fedora release against the target
// and, after confirmation, moves the system to it. Running this on a
// non-Fedora system is an error.
func UpgradeRelease(ctx context.Context, opts Options) (*Status, error) {
	log := logging.GetLogger("commands.upgrade")
	log.Debug().Str("command", "UpgradeRelease").Msg("Executing command")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	runner := opts.Runner
	if runner == nil {
		runner = shellexec.New()
	}

	distro, err := provision.DetectDistro(fs)
	if err != nil {
		return nil, err
	}
	if distro != provision.DistroFedora {
		return nil, errors.Newf(errors.ErrDistroUnknown, "release upgrade is only supported on Fedora, detected %q", distro)
	}

	current, err := provision.CurrentRelease(fs)
	if err != nil {
		return nil, err
	}
	target, err := opts.Source.TargetRelease(ctx)
	if err != nil {
		return nil, err
	}

	decision, err := provision.PlanUpgrade(current, target)
	if err != nil {
		return nil, err
	}
	status := &Status{Current: current, Target: target, Decision: decision}

	switch decision {
	case provision.UpToDate:
		log.Info().Str("release", current).Msg("Already up to date")
		return status, nil
	case provision.TargetOlder:
		return status, errors.Newf(errors.ErrInvalidInput,
			"target release %s is older than running release %s", target, current)
	}

	if opts.Confirmer != nil {
		prompt := "Upgrade from Fedora " + current + " to " + target + "?"
		if !opts.Confirmer.Confirm(prompt) {
			log.Info().Msg("Upgrade declined")
			status.Declined = true
			return status, nil
		}
	}

	step := provision.ReleaseUpgradeStep(provision.NewDnf(runner), target)
	stepRunner := provision.NewRunner(provision.RunnerOptions{DryRun: opts.DryRun, Logger: log})
	if _, err := stepRunner.Execute(ctx, []provision.Step{step}); err != nil {
		return status, err
	}

	status.Upgraded = !opts.DryRun
	if status.Upgraded {
		log.Info().Str("from", current).Str("to", target).Msg("Release upgrade completed")
	}
	return status, nil
}
