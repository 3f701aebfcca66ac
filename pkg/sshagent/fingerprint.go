package sshagent

import (
	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
	"golang.org/x/crypto/ssh"
)

// Fingerprint computes the SHA-256 fingerprint of the key's public material,
// in the standard "SHA256:" + unpadded base64 form. It prefers the .pub
// companion file; when that is absent it derives the public key from the
// private file. Encrypted private keys without a companion cannot be
// fingerprinted without prompting, which is reported as a parse error.
//
// The fingerprint is used only for set membership, never for verification.
func Fingerprint(fsys types.FS, key KeyFile) (string, error) {
	if key.HasPublicKey {
		data, err := fsys.ReadFile(key.PublicKeyPath())
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read public key %s", key.PublicKeyPath())
		}
		pub, _, _, _, err := ssh.ParseAuthorizedKey(data)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrKeyParse, "failed to parse public key %s", key.PublicKeyPath())
		}
		return ssh.FingerprintSHA256(pub), nil
	}

	data, err := fsys.ReadFile(key.Path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read private key %s", key.Path)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrKeyParse, "failed to parse private key %s", key.Path)
	}
	return ssh.FingerprintSHA256(signer.PublicKey()), nil
}
