package main

import (
	"fmt"

	cmdprovision "github.com/albertony/wslkit/pkg/commands/provision"
	"github.com/spf13/cobra"
)

func newProvisionCmd() *cobra.Command {
	var distro string

	provisionCmd := &cobra.Command{
		Use:   "provision",
		Short: "Bootstrap the development environment",
		Long: `Detects the running distribution and applies its bootstrap steps:
refresh package databases, upgrade and install the base package set, and
configure locale, timezone, mirrors and sudoers where applicable.

All steps are idempotent; re-running provision on a configured system
changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := cmdprovision.ProvisionSystem(cmd.Context(), cmdprovision.Options{
				Distro: distro,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			for _, result := range results {
				switch {
				case result.Skipped:
					fmt.Printf("would run: %s\n", result.Name)
				case result.Changed:
					fmt.Printf("done:      %s\n", result.Name)
				default:
					fmt.Printf("unchanged: %s\n", result.Name)
				}
			}
			return nil
		},
	}

	provisionCmd.Flags().StringVar(&distro, "distro", "", "Override distribution detection (arch, fedora, debian, ubuntu)")
	return provisionCmd
}
