package sshagent

// AgentState is the observed state of the agent at probe time. It is
// recomputed on every invocation and never persisted.
type AgentState int

const (
	// StateNoAgent means no endpoint is set or the endpoint is unreachable.
	StateNoAgent AgentState = iota

	// StateRunningEmpty means the agent answered the probe and holds no keys.
	StateRunningEmpty

	// StateRunningWithKeys means the agent answered the probe and holds at
	// least one key.
	StateRunningWithKeys
)

func (s AgentState) String() string {
	switch s {
	case StateNoAgent:
		return "no-agent"
	case StateRunningEmpty:
		return "running-empty"
	case StateRunningWithKeys:
		return "running-with-keys"
	}
	return "unknown"
}
