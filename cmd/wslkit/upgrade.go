package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/albertony/wslkit/pkg/commands/upgrade"
	"github.com/albertony/wslkit/pkg/provision"
	"github.com/albertony/wslkit/pkg/types"
	"github.com/spf13/cobra"
)

// stdinConfirmer asks a yes/no question on the terminal.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func newUpgradeCmd() *cobra.Command {
	var (
		release string
		yes     bool
	)

	upgradeCmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade a Fedora system to a newer release",
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer types.Confirmer
			if !yes {
				confirmer = stdinConfirmer{}
			}

			status, err := upgrade.UpgradeRelease(cmd.Context(), upgrade.Options{
				Source:    provision.StaticVersion(release),
				Confirmer: confirmer,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}

			switch {
			case status.Declined:
				fmt.Println("upgrade declined")
			case status.Decision == provision.UpToDate:
				fmt.Printf("already on release %s\n", status.Current)
			case status.Upgraded:
				fmt.Printf("upgraded from %s to %s\n", status.Current, status.Target)
			}
			return nil
		},
	}

	upgradeCmd.Flags().StringVar(&release, "release", "", "Target release version")
	if err := upgradeCmd.MarkFlagRequired("release"); err != nil {
		panic(err)
	}
	upgradeCmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return upgradeCmd
}
