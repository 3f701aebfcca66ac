// Package paths provides centralized path handling for wslkit.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/albertony/wslkit/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for wslkit
	EnvConfigDir = "WSLKIT_CONFIG_DIR"

	// EnvSSHDir overrides the directory scanned for key files
	EnvSSHDir = "WSLKIT_SSH_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for wslkit-specific files
	AppDirName = "wslkit"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "wslkit.toml"

	// SSHDirName is the per-user SSH configuration directory name
	SSHDirName = ".ssh"
)

// ConfigFile returns the path of the user configuration file. The file is
// not required to exist.
func ConfigFile() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, ConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// StateDir returns the directory for wslkit state files (log output).
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppDirName)
}

// SSHDir returns the directory scanned for candidate key files,
// honoring the WSLKIT_SSH_DIR override.
func SSHDir() (string, error) {
	if dir := os.Getenv(EnvSSHDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "could not determine home directory")
	}
	return filepath.Join(home, SSHDirName), nil
}
