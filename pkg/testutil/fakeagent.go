package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/albertony/wslkit/pkg/sshagent"
	"github.com/albertony/wslkit/pkg/types"
)

// FakeAgent is an in-memory sshagent.AgentClient. It records call counts so
// tests can verify, for example, that an empty agent is never queried for
// loaded identities.
type FakeAgent struct {
	// Running reports whether the probe finds a reachable agent.
	Running bool

	// Identities holds the fingerprints currently loaded, keyed for set
	// membership.
	Identities map[string]struct{}

	// LoadErrors maps private key paths to scripted load failures.
	LoadErrors map[string]error

	// SpawnError makes Spawn fail.
	SpawnError error

	// FS resolves key files so Load can record the loaded fingerprint the
	// same way a real agent would.
	FS types.FS

	ProbeCalls      int
	SpawnCalls      int
	ListLoadedCalls int
	LoadCalls       int

	// LoadedPaths records the private key paths passed to Load, in order.
	LoadedPaths []string

	// LastLifetime records the lifetime of the most recent load.
	LastLifetime time.Duration
}

// NewFakeAgent creates a fake agent backed by fsys for fingerprinting.
func NewFakeAgent(fsys types.FS) *FakeAgent {
	return &FakeAgent{
		Identities: make(map[string]struct{}),
		LoadErrors: make(map[string]error),
		FS:         fsys,
	}
}

func (f *FakeAgent) Probe(ctx context.Context, session sshagent.SessionContext) (sshagent.AgentState, error) {
	f.ProbeCalls++
	if !f.Running {
		return sshagent.StateNoAgent, nil
	}
	if len(f.Identities) == 0 {
		return sshagent.StateRunningEmpty, nil
	}
	return sshagent.StateRunningWithKeys, nil
}

func (f *FakeAgent) Spawn(ctx context.Context) (sshagent.SessionContext, error) {
	f.SpawnCalls++
	if f.SpawnError != nil {
		return sshagent.SessionContext{}, f.SpawnError
	}
	f.Running = true
	return sshagent.SessionContext{
		AuthSock: "/tmp/fake-agent.sock",
		AgentPID: 4321,
		Spawned:  true,
	}, nil
}

func (f *FakeAgent) ListLoaded(ctx context.Context, session sshagent.SessionContext) ([]string, error) {
	f.ListLoadedCalls++
	fingerprints := make([]string, 0, len(f.Identities))
	for fp := range f.Identities {
		fingerprints = append(fingerprints, fp)
	}
	return fingerprints, nil
}

func (f *FakeAgent) Load(ctx context.Context, session sshagent.SessionContext, key sshagent.KeyFile, lifetime time.Duration) error {
	f.LoadCalls++
	f.LastLifetime = lifetime
	if err := f.LoadErrors[key.Path]; err != nil {
		return err
	}
	fp, err := sshagent.Fingerprint(f.FS, key)
	if err != nil {
		return fmt.Errorf("fake agent could not fingerprint %s: %w", key.Path, err)
	}
	f.Identities[fp] = struct{}{}
	f.LoadedPaths = append(f.LoadedPaths, key.Path)
	return nil
}
