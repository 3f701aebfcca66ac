package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"path/filepath"
	"testing"

	"github.com/albertony/wslkit/pkg/types"
	"golang.org/x/crypto/ssh"
)

// TestKey is a generated SSH key pair written to a test filesystem.
type TestKey struct {
	// PrivatePath is the path of the private key file.
	PrivatePath string

	// Fingerprint is the SHA-256 fingerprint of the public key.
	Fingerprint string
}

// WriteKeyPair generates an ed25519 key pair and writes the private key and
// its .pub companion into dir on fsys, using the given file name for the
// private key.
func WriteKeyPair(t *testing.T, fsys types.FS, dir, name string) TestKey {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	block, err := ssh.MarshalPrivateKey(priv, name)
	if err != nil {
		t.Fatalf("failed to marshal private key: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("failed to convert public key: %v", err)
	}

	if err := fsys.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("failed to create key directory: %v", err)
	}
	privatePath := filepath.Join(dir, name)
	if err := fsys.WriteFile(privatePath, pem.EncodeToMemory(block), 0600); err != nil {
		t.Fatalf("failed to write private key: %v", err)
	}
	if err := fsys.WriteFile(privatePath+".pub", ssh.MarshalAuthorizedKey(sshPub), 0644); err != nil {
		t.Fatalf("failed to write public key: %v", err)
	}

	return TestKey{
		PrivatePath: privatePath,
		Fingerprint: ssh.FingerprintSHA256(sshPub),
	}
}

// WritePrivateKeyOnly is WriteKeyPair without the .pub companion file.
func WritePrivateKeyOnly(t *testing.T, fsys types.FS, dir, name string) TestKey {
	t.Helper()

	key := WriteKeyPair(t, fsys, dir, name)
	if err := fsys.Remove(key.PrivatePath + ".pub"); err != nil {
		t.Fatalf("failed to remove public key: %v", err)
	}
	return key
}
