package sshagent

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/types"
)

const (
	// keyFilePrefix is the conventional private key file name prefix.
	keyFilePrefix = "id_"

	// publicKeySuffix marks public key companion files.
	publicKeySuffix = ".pub"
)

// KeyFile identifies a candidate private key file.
type KeyFile struct {
	// Path is the absolute path of the private key file.
	Path string

	// Name is the file name, used as the identity comment.
	Name string

	// HasPublicKey reports whether a .pub companion file exists.
	HasPublicKey bool
}

// PublicKeyPath returns the path of the .pub companion file.
func (k KeyFile) PublicKeyPath() string {
	return k.Path + publicKeySuffix
}

// ListCandidateKeys enumerates private key files in dir: names with the id_
// prefix that do not carry the .pub suffix. A missing or empty directory
// yields an empty list, not an error. Enumeration order is whatever the
// filesystem reports; callers must not depend on it.
func ListCandidateKeys(fsys types.FS, dir string) ([]KeyFile, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read key directory %s", dir)
	}

	var keys []KeyFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, keyFilePrefix) || strings.HasSuffix(name, publicKeySuffix) {
			continue
		}
		key := KeyFile{
			Path: filepath.Join(dir, name),
			Name: name,
		}
		if _, err := fsys.Stat(key.PublicKeyPath()); err == nil {
			key.HasPublicKey = true
		}
		keys = append(keys, key)
	}
	return keys, nil
}
