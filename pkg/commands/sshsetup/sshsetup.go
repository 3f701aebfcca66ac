// Package sshsetup implements the ssh setup command: it ensures an agent is
// running and reconciles the local key files into it.
package sshsetup

import (
	"context"
	"time"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/logging"
	"github.com/albertony/wslkit/pkg/paths"
	"github.com/albertony/wslkit/pkg/sshagent"
	"github.com/albertony/wslkit/pkg/types"
)

// Options defines the options for the SetupSSH command.
type Options struct {
	// KeyDir is the directory of candidate key files. Empty means the
	// user's SSH directory.
	KeyDir string

	// Lifetime bounds loaded identities. Zero means the default.
	Lifetime time.Duration

	// Strict makes the command fail when any key failed to load.
	Strict bool

	// Session is the agent endpoint of the invoking session.
	Session sshagent.SessionContext

	// Client overrides the production agent client, for tests.
	Client sshagent.AgentClient

	// FS overrides the OS filesystem, for tests.
	FS types.FS

	// Runner executes the ssh-agent binary when spawning is needed.
	Runner types.CommandRunner
}

// SetupSSH runs one identity reconciliation and returns its result. With
// Strict set, any per-key failure turns into an error after the whole batch
// has been attempted.
func SetupSSH(ctx context.Context, opts Options) (*sshagent.Result, error) {
	log := logging.GetLogger("commands.sshsetup")
	log.Debug().Str("command", "SetupSSH").Msg("Executing command")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	keyDir := opts.KeyDir
	if keyDir == "" {
		dir, err := paths.SSHDir()
		if err != nil {
			return nil, err
		}
		keyDir = dir
	}

	client := opts.Client
	if client == nil {
		client = sshagent.NewSystemClient(sshagent.SystemClientOptions{
			Runner: opts.Runner,
			FS:     fs,
		})
	}

	reconciler := sshagent.New(sshagent.Options{
		Client:   client,
		FS:       fs,
		KeyDir:   keyDir,
		Lifetime: opts.Lifetime,
		Logger:   log,
	})

	result, err := reconciler.Run(ctx, opts.Session)
	if err != nil {
		log.Error().Err(err).Msg("Reconciliation failed")
		return nil, err
	}

	// Make the endpoint visible to child processes of this run; the CLI
	// additionally prints export lines for the invoking shell.
	if result.Session.Spawned {
		result.Session.Apply()
	}

	log.Info().
		Int("loaded", len(result.Loaded)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Msg("Reconciliation completed")

	if opts.Strict && len(result.Failed) > 0 {
		return result, errors.Newf(errors.ErrKeyLoad, "%d of %d identities failed to load",
			len(result.Failed), len(result.Loaded)+len(result.Skipped)+len(result.Failed))
	}
	return result, nil
}
