package sshagent

import (
	"context"
	"time"
)

// AgentClient is the capability boundary between the reconciliation
// algorithm and the agent process. The production implementation is
// SystemClient; tests use an in-memory fake.
type AgentClient interface {
	// Probe checks the endpoint in session and reports the agent state.
	// An unset or unreachable endpoint is StateNoAgent, not an error.
	Probe(ctx context.Context, session SessionContext) (AgentState, error)

	// Spawn starts a new agent process and returns its endpoint.
	Spawn(ctx context.Context) (SessionContext, error)

	// ListLoaded returns the fingerprints of all identities the agent
	// currently holds, computed under the same scheme as Fingerprint.
	// An empty agent yields an empty list.
	ListLoaded(ctx context.Context, session SessionContext) ([]string, error)

	// Load adds the private key to the agent with a bounded lifetime. It
	// may block on an interactive passphrase prompt for encrypted keys.
	Load(ctx context.Context, session SessionContext, key KeyFile, lifetime time.Duration) error
}
