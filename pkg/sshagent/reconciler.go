package sshagent

import (
	"context"
	"time"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/logging"
	"github.com/albertony/wslkit/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultLifetime bounds how long the agent keeps a loaded identity when no
// lifetime is configured.
const DefaultLifetime = 4 * time.Hour

// Options configures the Reconciler.
type Options struct {
	// Client talks to the agent. Required.
	Client AgentClient

	// FS is the filesystem holding the key files. Defaults to the OS
	// filesystem.
	FS types.FS

	// KeyDir is the directory of candidate key files. Required.
	KeyDir string

	// Lifetime bounds loaded identities. Defaults to DefaultLifetime.
	Lifetime time.Duration

	// Logger overrides the default component logger.
	Logger zerolog.Logger
}

// KeyReport is the per-key outcome of a reconciliation run.
type KeyReport struct {
	Key         KeyFile
	Fingerprint string
	Err         error
}

// Result reports what one reconciliation run did. The run is idempotent:
// repeating it without filesystem or agent changes moves every entry from
// Loaded to Skipped and performs no load operations.
type Result struct {
	// State is the agent state observed at the start of the run.
	State AgentState

	// Session is the agent endpoint, updated when an agent was spawned.
	Session SessionContext

	Loaded  []KeyReport
	Skipped []KeyReport
	Failed  []KeyReport
}

// Reconciler loads missing identities into the agent.
type Reconciler struct {
	client   AgentClient
	fs       types.FS
	keyDir   string
	lifetime time.Duration
	logger   zerolog.Logger
}

// New creates a Reconciler.
func New(opts Options) *Reconciler {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	lifetime := opts.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("sshagent.reconciler")
	}
	return &Reconciler{
		client:   opts.Client,
		fs:       fs,
		keyDir:   opts.KeyDir,
		lifetime: lifetime,
		logger:   logger,
	}
}

// EnsureAgentRunning probes the endpoint in session and spawns a new agent
// when none is reachable. Spawn failure is fatal to the whole run.
func (r *Reconciler) EnsureAgentRunning(ctx context.Context, session SessionContext) (AgentState, SessionContext, error) {
	state, err := r.client.Probe(ctx, session)
	if err != nil {
		return StateNoAgent, session, errors.Wrap(err, errors.ErrAgentUnreachable, "agent probe failed")
	}
	if state != StateNoAgent {
		r.logger.Debug().Stringer("state", state).Msg("agent reachable")
		return state, session, nil
	}

	r.logger.Info().Msg("starting agent")
	spawned, err := r.client.Spawn(ctx)
	if err != nil {
		return StateNoAgent, session, errors.Wrap(err, errors.ErrAgentUnreachable, "could not start agent")
	}
	// A freshly started agent holds no keys.
	return StateRunningEmpty, spawned, nil
}

// Run performs one reconciliation: ensure an agent, enumerate candidates,
// and load every identity not already present. Individual load failures do
// not abort the batch; only an unreachable agent is fatal.
func (r *Reconciler) Run(ctx context.Context, session SessionContext) (*Result, error) {
	state, session, err := r.EnsureAgentRunning(ctx, session)
	if err != nil {
		return nil, err
	}
	result := &Result{State: state, Session: session}

	candidates, err := ListCandidateKeys(r.fs, r.keyDir)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		r.logger.Debug().Str("dir", r.keyDir).Msg("no candidate keys")
		return result, nil
	}

	// When the agent is known to be empty there is nothing to compare
	// against, so the loaded-fingerprint query is skipped entirely and
	// every candidate is loaded directly.
	loaded := make(map[string]struct{})
	if state == StateRunningWithKeys {
		fingerprints, err := r.client.ListLoaded(ctx, session)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrAgentUnreachable, "could not query loaded identities")
		}
		for _, fp := range fingerprints {
			loaded[fp] = struct{}{}
		}
	}

	for _, key := range candidates {
		report := KeyReport{Key: key}

		if state == StateRunningWithKeys {
			fp, err := Fingerprint(r.fs, key)
			if err != nil {
				report.Err = err
				result.Failed = append(result.Failed, report)
				r.logger.Warn().Err(err).Str("key", key.Path).Msg("could not fingerprint key")
				continue
			}
			report.Fingerprint = fp
			if _, ok := loaded[fp]; ok {
				result.Skipped = append(result.Skipped, report)
				r.logger.Info().Str("key", key.Path).Msg("identity exists")
				continue
			}
		}

		r.logger.Info().Str("key", key.Path).Msg("adding identity")
		if err := r.client.Load(ctx, session, key, r.lifetime); err != nil {
			report.Err = err
			result.Failed = append(result.Failed, report)
			r.logger.Warn().Err(err).Str("key", key.Path).Msg("failed to add identity")
			continue
		}
		result.Loaded = append(result.Loaded, report)
	}

	return result, nil
}
