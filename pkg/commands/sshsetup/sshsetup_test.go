package sshsetup_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/albertony/wslkit/pkg/commands/sshsetup"
	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/sshagent"
	"github.com/albertony/wslkit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSSHLoadsKeys(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.WriteKeyPair(t, fs, "/keys", "id_ed25519")
	agent := testutil.NewFakeAgent(fs)

	result, err := sshsetup.SetupSSH(context.Background(), sshsetup.Options{
		KeyDir: "/keys",
		Client: agent,
		FS:     fs,
	})
	require.NoError(t, err)
	assert.Len(t, result.Loaded, 1)
	assert.True(t, result.Session.Spawned)
}

func TestSetupSSHBestEffortByDefault(t *testing.T) {
	fs := filesystem.NewMemory()
	key := testutil.WriteKeyPair(t, fs, "/keys", "id_rsa")
	agent := testutil.NewFakeAgent(fs)
	agent.LoadErrors[key.PrivatePath] = fmt.Errorf("corrupt file")

	result, err := sshsetup.SetupSSH(context.Background(), sshsetup.Options{
		KeyDir: "/keys",
		Client: agent,
		FS:     fs,
	})

	require.NoError(t, err, "per-key failure must not fail the command by default")
	assert.Len(t, result.Failed, 1)
}

func TestSetupSSHStrictMode(t *testing.T) {
	fs := filesystem.NewMemory()
	key := testutil.WriteKeyPair(t, fs, "/keys", "id_rsa")
	testutil.WriteKeyPair(t, fs, "/keys", "id_ed25519")
	agent := testutil.NewFakeAgent(fs)
	agent.LoadErrors[key.PrivatePath] = fmt.Errorf("corrupt file")

	result, err := sshsetup.SetupSSH(context.Background(), sshsetup.Options{
		KeyDir: "/keys",
		Client: agent,
		FS:     fs,
		Strict: true,
	})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrKeyLoad))
	// The whole batch was still attempted before the error.
	require.NotNil(t, result)
	assert.Len(t, result.Loaded, 1)
	assert.Len(t, result.Failed, 1)
}

func TestSetupSSHAppliesSpawnedSession(t *testing.T) {
	t.Setenv(sshagent.EnvAuthSock, "")
	t.Setenv(sshagent.EnvAgentPID, "")

	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/keys", 0700))
	agent := testutil.NewFakeAgent(fs)

	result, err := sshsetup.SetupSSH(context.Background(), sshsetup.Options{
		KeyDir: "/keys",
		Client: agent,
		FS:     fs,
	})
	require.NoError(t, err)
	require.True(t, result.Session.Spawned)
	assert.Equal(t, result.Session.AuthSock, sshagent.SessionFromEnvironment().AuthSock)
}
