// Package sshagent reconciles SSH agent identities: it ensures an agent is
// running, enumerates candidate key files, and loads only the identities the
// agent does not already hold, so repeated runs never re-prompt for a
// passphrase of a key that is already resident.
//
// The reconciliation algorithm is decoupled from process mechanics through
// the AgentClient interface; the production implementation speaks the agent
// protocol over SSH_AUTH_SOCK and spawns ssh-agent when needed.
package sshagent
