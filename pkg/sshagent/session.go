package sshagent

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names of the agent endpoint contract.
const (
	EnvAuthSock = "SSH_AUTH_SOCK"
	EnvAgentPID = "SSH_AGENT_PID"
)

// SessionContext is the environment-scoped handle to a running agent. A Go
// process cannot mutate its parent shell's environment, so when a new agent
// is spawned the caller is responsible for propagating this value: within
// the process via Apply, and to the invoking shell by eval'ing ExportLines.
type SessionContext struct {
	// AuthSock is the agent's unix socket path. Empty means no endpoint.
	AuthSock string

	// AgentPID is the agent's process id, when known.
	AgentPID int

	// Spawned is true when this run started the agent.
	Spawned bool
}

// SessionFromEnvironment reads the agent endpoint from the process
// environment.
func SessionFromEnvironment() SessionContext {
	session := SessionContext{
		AuthSock: os.Getenv(EnvAuthSock),
	}
	if pid, err := strconv.Atoi(os.Getenv(EnvAgentPID)); err == nil {
		session.AgentPID = pid
	}
	return session
}

// Apply exports the endpoint into the current process environment so that
// child processes inherit it.
func (s SessionContext) Apply() {
	if s.AuthSock != "" {
		os.Setenv(EnvAuthSock, s.AuthSock)
	}
	if s.AgentPID != 0 {
		os.Setenv(EnvAgentPID, strconv.Itoa(s.AgentPID))
	}
}

// ExportLines renders the endpoint as POSIX shell export statements, in the
// same format ssh-agent -s emits, for eval by the invoking shell.
func (s SessionContext) ExportLines() string {
	var b strings.Builder
	if s.AuthSock != "" {
		fmt.Fprintf(&b, "%s=%s; export %s;\n", EnvAuthSock, s.AuthSock, EnvAuthSock)
	}
	if s.AgentPID != 0 {
		fmt.Fprintf(&b, "%s=%d; export %s;\n", EnvAgentPID, s.AgentPID, EnvAgentPID)
	}
	return b.String()
}
