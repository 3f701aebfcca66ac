package sshagent_test

import (
	"strings"
	"testing"

	"github.com/albertony/wslkit/pkg/filesystem"
	"github.com/albertony/wslkit/pkg/sshagent"
	"github.com/albertony/wslkit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintMatchesPublicKey(t *testing.T) {
	fs := filesystem.NewMemory()
	generated := testutil.WriteKeyPair(t, fs, "/keys", "id_ed25519")

	keys, err := sshagent.ListCandidateKeys(fs, "/keys")
	require.NoError(t, err)
	require.Len(t, keys, 1)

	fp, err := sshagent.Fingerprint(fs, keys[0])
	require.NoError(t, err)
	assert.Equal(t, generated.Fingerprint, fp)
	assert.True(t, strings.HasPrefix(fp, "SHA256:"))
}

func TestFingerprintIsDeterministic(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.WriteKeyPair(t, fs, "/keys", "id_ed25519")

	keys, err := sshagent.ListCandidateKeys(fs, "/keys")
	require.NoError(t, err)
	require.Len(t, keys, 1)

	first, err := sshagent.Fingerprint(fs, keys[0])
	require.NoError(t, err)
	second, err := sshagent.Fingerprint(fs, keys[0])
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFingerprintDerivedFromPrivateKey(t *testing.T) {
	fs := filesystem.NewMemory()
	generated := testutil.WritePrivateKeyOnly(t, fs, "/keys", "id_ed25519")

	keys, err := sshagent.ListCandidateKeys(fs, "/keys")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.False(t, keys[0].HasPublicKey)

	// Without a .pub companion the fingerprint is derived from the private
	// key and must agree with the one computed from the public key.
	fp, err := sshagent.Fingerprint(fs, keys[0])
	require.NoError(t, err)
	assert.Equal(t, generated.Fingerprint, fp)
}

func TestFingerprintCorruptPublicKey(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/keys", 0700))
	require.NoError(t, fs.WriteFile("/keys/id_rsa", []byte("not a key"), 0600))
	require.NoError(t, fs.WriteFile("/keys/id_rsa.pub", []byte("not a public key"), 0644))

	keys, err := sshagent.ListCandidateKeys(fs, "/keys")
	require.NoError(t, err)
	require.Len(t, keys, 1)

	_, err = sshagent.Fingerprint(fs, keys[0])
	assert.Error(t, err)
}
