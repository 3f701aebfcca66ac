package sshagent

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/logging"
	"github.com/albertony/wslkit/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/term"
)

// PassphrasePrompt asks the user for the passphrase of an encrypted key.
// The default prompt reads from the terminal with echo disabled.
type PassphrasePrompt func(keyPath string) ([]byte, error)

// SystemClient implements AgentClient against a real ssh-agent: it speaks
// the agent protocol over the unix socket and spawns the ssh-agent binary
// when no agent is reachable.
type SystemClient struct {
	runner types.CommandRunner
	fs     types.FS
	prompt PassphrasePrompt
	logger zerolog.Logger
}

// SystemClientOptions configures NewSystemClient.
type SystemClientOptions struct {
	Runner types.CommandRunner
	FS     types.FS
	// Prompt overrides the terminal passphrase prompt, for tests.
	Prompt PassphrasePrompt
}

// NewSystemClient creates the production agent client.
func NewSystemClient(opts SystemClientOptions) *SystemClient {
	prompt := opts.Prompt
	if prompt == nil {
		prompt = terminalPrompt
	}
	return &SystemClient{
		runner: opts.Runner,
		fs:     opts.FS,
		prompt: prompt,
		logger: logging.GetLogger("sshagent.client"),
	}
}

// Probe dials the endpoint and lists identities. Any failure to reach or
// query the agent is reported as StateNoAgent; a stale socket is
// indistinguishable from no agent at all.
func (c *SystemClient) Probe(ctx context.Context, session SessionContext) (AgentState, error) {
	if session.AuthSock == "" {
		return StateNoAgent, nil
	}
	keys, err := c.list(ctx, session)
	if err != nil {
		c.logger.Debug().Err(err).Str("sock", session.AuthSock).Msg("agent probe failed")
		return StateNoAgent, nil
	}
	if len(keys) == 0 {
		return StateRunningEmpty, nil
	}
	return StateRunningWithKeys, nil
}

// agentOutputPattern matches the variable assignments in ssh-agent -s
// output: "SSH_AUTH_SOCK=/tmp/...; export SSH_AUTH_SOCK;".
var agentOutputPattern = regexp.MustCompile(`(SSH_AUTH_SOCK|SSH_AGENT_PID)=([^;]+);`)

// Spawn starts a new ssh-agent and parses its endpoint from the Bourne
// shell output format.
func (c *SystemClient) Spawn(ctx context.Context) (SessionContext, error) {
	out, err := c.runner.Output(ctx, "ssh-agent", "-s")
	if err != nil {
		return SessionContext{}, errors.Wrap(err, errors.ErrAgentSpawn, "failed to start ssh-agent")
	}

	session, err := parseAgentOutput(string(out))
	if err != nil {
		return SessionContext{}, err
	}
	c.logger.Debug().Str("sock", session.AuthSock).Int("pid", session.AgentPID).Msg("agent spawned")
	return session, nil
}

// parseAgentOutput extracts the endpoint from ssh-agent -s output.
func parseAgentOutput(out string) (SessionContext, error) {
	session := SessionContext{Spawned: true}
	for _, match := range agentOutputPattern.FindAllStringSubmatch(out, -1) {
		switch match[1] {
		case EnvAuthSock:
			session.AuthSock = match[2]
		case EnvAgentPID:
			if pid, err := strconv.Atoi(match[2]); err == nil {
				session.AgentPID = pid
			}
		}
	}
	if session.AuthSock == "" {
		return SessionContext{}, errors.New(errors.ErrAgentSpawn, "ssh-agent output did not contain SSH_AUTH_SOCK")
	}
	return session, nil
}

// ListLoaded returns the fingerprints of all identities in the agent.
func (c *SystemClient) ListLoaded(ctx context.Context, session SessionContext) ([]string, error) {
	keys, err := c.list(ctx, session)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrAgentUnreachable, "failed to list agent identities")
	}
	fingerprints := make([]string, 0, len(keys))
	for _, key := range keys {
		fingerprints = append(fingerprints, ssh.FingerprintSHA256(key))
	}
	return fingerprints, nil
}

// Load parses the private key, prompting for a passphrase when the key is
// encrypted, and adds it to the agent with the given lifetime. The prompt
// is an interactive suspension point and must not be suppressed.
func (c *SystemClient) Load(ctx context.Context, session SessionContext, key KeyFile, lifetime time.Duration) error {
	data, err := c.fs.ReadFile(key.Path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read private key %s", key.Path)
	}

	priv, err := ssh.ParseRawPrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if !stderrors.As(err, &missing) {
			return errors.Wrapf(err, errors.ErrKeyParse, "failed to parse private key %s", key.Path)
		}
		passphrase, promptErr := c.prompt(key.Path)
		if promptErr != nil {
			return errors.Wrapf(promptErr, errors.ErrKeyLoad, "passphrase entry aborted for %s", key.Path)
		}
		priv, err = ssh.ParseRawPrivateKeyWithPassphrase(data, passphrase)
		if err != nil {
			return errors.Wrapf(err, errors.ErrKeyLoad, "failed to decrypt private key %s", key.Path)
		}
	}

	conn, err := net.Dial("unix", session.AuthSock)
	if err != nil {
		return errors.Wrapf(err, errors.ErrAgentUnreachable, "failed to connect to agent at %s", session.AuthSock)
	}
	defer conn.Close()

	addedKey := agent.AddedKey{
		PrivateKey:   priv,
		Comment:      key.Name,
		LifetimeSecs: uint32(lifetime / time.Second),
	}
	if err := agent.NewClient(conn).Add(addedKey); err != nil {
		return errors.Wrapf(err, errors.ErrKeyLoad, "agent refused key %s", key.Path)
	}
	return nil
}

// list dials the endpoint and returns the agent's loaded keys.
func (c *SystemClient) list(ctx context.Context, session SessionContext) ([]*agent.Key, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", session.AuthSock)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return agent.NewClient(conn).List()
}

// terminalPrompt reads a passphrase from the controlling terminal with echo
// disabled.
func terminalPrompt(keyPath string) ([]byte, error) {
	fmt.Fprintf(os.Stderr, "Enter passphrase for %s: ", keyPath)
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return passphrase, err
}
