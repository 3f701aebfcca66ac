package provision

import (
	"context"
	"fmt"

	"github.com/albertony/wslkit/pkg/config"
	"github.com/albertony/wslkit/pkg/types"
)

// sudoersDropInName is the drop-in file this tool owns.
const sudoersDropInName = "wslkit"

// BootstrapSteps assembles the bootstrap step sequence for a distro from
// the provisioning configuration.
func BootstrapSteps(distro Distro, cfg *config.ProvisionConfig, fsys types.FS, runner types.CommandRunner) ([]Step, error) {
	manager, err := PackageManagerFor(distro, runner)
	if err != nil {
		return nil, err
	}

	var steps []Step

	if distro == DistroArch {
		steps = append(steps, Step{
			Name: "enable pacman mirrors",
			Run: func(ctx context.Context) (bool, error) {
				return EnableMirrors(fsys, cfg.MirrorCountry)
			},
		})
	}

	steps = append(steps,
		Step{
			Name: fmt.Sprintf("refresh %s package databases", manager.Name()),
			Run: func(ctx context.Context) (bool, error) {
				return true, manager.Refresh(ctx)
			},
		},
		Step{
			Name: "upgrade installed packages",
			Run: func(ctx context.Context) (bool, error) {
				return true, manager.Upgrade(ctx)
			},
		},
		Step{
			Name: "install base packages",
			Run: func(ctx context.Context) (bool, error) {
				packages := cfg.PackagesFor(distro.Family())
				if len(packages) == 0 {
					return false, nil
				}
				return true, manager.Install(ctx, packages...)
			},
		},
	)

	// Fedora container images manage locale and timezone through the image
	// itself; the file edits apply to the Arch and Debian family systems.
	if distro != DistroFedora {
		steps = append(steps,
			Step{
				Name: fmt.Sprintf("generate locale %s", cfg.Locale),
				Run: func(ctx context.Context) (bool, error) {
					return EnsureLocale(ctx, fsys, runner, cfg.Locale)
				},
			},
			Step{
				Name: fmt.Sprintf("set timezone %s", cfg.Timezone),
				Run: func(ctx context.Context) (bool, error) {
					return EnsureTimezone(fsys, cfg.Timezone)
				},
			},
		)
	}

	if distro == DistroArch {
		steps = append(steps, Step{
			Name: fmt.Sprintf("grant sudo to group %s", cfg.SudoersGroup),
			Run: func(ctx context.Context) (bool, error) {
				return EnsureSudoersDropIn(fsys, sudoersDropInName, GroupSudoersContent(cfg.SudoersGroup))
			},
		})
	}

	return steps, nil
}
