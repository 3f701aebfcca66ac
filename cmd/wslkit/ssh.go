package main

import (
	"fmt"
	"time"

	"github.com/albertony/wslkit/pkg/commands/sshsetup"
	"github.com/albertony/wslkit/pkg/config"
	"github.com/albertony/wslkit/pkg/shellexec"
	"github.com/albertony/wslkit/pkg/sshagent"
	"github.com/spf13/cobra"
)

func newSSHCmd() *cobra.Command {
	var (
		keyDir   string
		lifetime time.Duration
		strict   bool
	)

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "SSH agent management",
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Start an SSH agent if needed and load missing identities",
		Long: `Ensures an SSH agent is running and loads every private key from the key
directory that the agent does not already hold. Identities already loaded
are skipped, so repeated runs never re-prompt for a passphrase.

When a new agent is started, its environment is printed as shell export
statements; run eval "$(wslkit ssh setup)" so the invoking shell can reach
the agent afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts := sshsetup.Options{
				KeyDir:   keyDir,
				Lifetime: lifetime,
				Strict:   strict,
				Session:  sshagent.SessionFromEnvironment(),
				Runner:   shellexec.New(),
			}
			if opts.KeyDir == "" {
				opts.KeyDir = cfg.SSH.KeyDir
			}
			if opts.Lifetime == 0 {
				opts.Lifetime = cfg.SSH.Lifetime
			}
			if !cmd.Flags().Changed("strict") {
				opts.Strict = cfg.SSH.Strict
			}

			result, err := sshsetup.SetupSSH(cmd.Context(), opts)

			// Export lines go to stdout so the invoking shell can eval
			// them; everything else is on stderr via the logger. A strict
			// failure still reports the spawned agent, otherwise the shell
			// would leak it.
			if result != nil && result.Session.Spawned {
				fmt.Print(result.Session.ExportLines())
			}
			return err
		},
	}

	setupCmd.Flags().StringVar(&keyDir, "key-dir", "", "Directory of candidate key files (default ~/.ssh)")
	setupCmd.Flags().DurationVar(&lifetime, "lifetime", 0, "Identity lifetime in the agent (default 4h)")
	setupCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any key fails to load")

	sshCmd.AddCommand(setupCmd)
	return sshCmd
}
