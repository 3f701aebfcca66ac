package sshagent_test

import (
	"testing"

	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/sshagent"
	"github.com/albertony/wslkit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCandidateKeys(t *testing.T) {
	fs := filesystem.NewMemory()
	dir := "/home/user/.ssh"

	testutil.WriteKeyPair(t, fs, dir, "id_rsa")
	testutil.WriteKeyPair(t, fs, dir, "id_ed25519")
	// Files that must not match the private key convention.
	require.NoError(t, fs.WriteFile(dir+"/known_hosts", []byte("host data"), 0644))
	require.NoError(t, fs.WriteFile(dir+"/config", []byte("Host *"), 0644))
	require.NoError(t, fs.WriteFile(dir+"/stray.pub", []byte("stray"), 0644))

	keys, err := sshagent.ListCandidateKeys(fs, dir)
	require.NoError(t, err)

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.Name)
	}
	assert.ElementsMatch(t, []string{"id_rsa", "id_ed25519"}, names)
	for _, key := range keys {
		assert.True(t, key.HasPublicKey, "key %s should have a .pub companion", key.Name)
	}
}

func TestListCandidateKeysExcludesPubSuffix(t *testing.T) {
	fs := filesystem.NewMemory()
	dir := "/home/user/.ssh"

	// A .pub file without a private counterpart matches the id_ prefix but
	// must be excluded by the suffix rule.
	require.NoError(t, fs.MkdirAll(dir, 0700))
	require.NoError(t, fs.WriteFile(dir+"/id_rsa.pub", []byte("ssh-rsa AAAA"), 0644))

	keys, err := sshagent.ListCandidateKeys(fs, dir)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestListCandidateKeysEmptyDirectory(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/home/user/.ssh", 0700))

	keys, err := sshagent.ListCandidateKeys(fs, "/home/user/.ssh")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestListCandidateKeysMissingDirectory(t *testing.T) {
	fs := filesystem.NewMemory()

	keys, err := sshagent.ListCandidateKeys(fs, "/does/not/exist")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestListCandidateKeysWithoutCompanion(t *testing.T) {
	fs := filesystem.NewMemory()
	dir := "/home/user/.ssh"
	testutil.WritePrivateKeyOnly(t, fs, dir, "id_ecdsa")

	keys, err := sshagent.ListCandidateKeys(fs, dir)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.False(t, keys[0].HasPublicKey)
}
