// Package config loads wslkit configuration from layered sources:
// embedded defaults, the user config file, and WSLKIT_* environment
// variables, in increasing order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/albertony/wslkit/pkg/errors"
	"github.com/albertony/wslkit/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. WSLKIT_SSH_STRICT=true sets ssh.strict.
const EnvPrefix = "WSLKIT_"

// envKeyAliases maps environment variable suffixes to config keys whose
// names themselves contain underscores, which the generic underscore-to-dot
// transform would otherwise mangle.
var envKeyAliases = map[string]string{
	"ssh_key_dir":              "ssh.key_dir",
	"provision_mirror_country": "provision.mirror_country",
	"provision_sudoers_group":  "provision.sudoers_group",
}

// SSHConfig configures the identity reconciler.
type SSHConfig struct {
	// KeyDir is the directory scanned for key files. Empty means ~/.ssh.
	KeyDir string `koanf:"key_dir"`
	// Lifetime bounds how long the agent keeps a loaded identity.
	Lifetime time.Duration `koanf:"lifetime"`
	// Strict makes any failed key load fail the whole command.
	Strict bool `koanf:"strict"`
}

// DistroConfig holds the per-distro package list.
type DistroConfig struct {
	Packages []string `koanf:"packages"`
}

// ProvisionConfig configures the bootstrap steps.
type ProvisionConfig struct {
	Locale        string       `koanf:"locale"`
	Timezone      string       `koanf:"timezone"`
	MirrorCountry string       `koanf:"mirror_country"`
	SudoersGroup  string       `koanf:"sudoers_group"`
	Arch          DistroConfig `koanf:"arch"`
	Fedora        DistroConfig `koanf:"fedora"`
	Debian        DistroConfig `koanf:"debian"`
}

// Config is the root configuration.
type Config struct {
	SSH       SSHConfig       `koanf:"ssh"`
	Provision ProvisionConfig `koanf:"provision"`
}

// Load builds the configuration from defaults, the user file at
// paths.ConfigFile() (if present), and environment overrides.
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom is Load with an explicit user config file path, for tests.
func LoadFrom(userFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default configuration")
	}

	// 2. User config file, if it exists
	if userFile != "" {
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", userFile)
			}
		}
	}

	// 3. Environment overrides: WSLKIT_SSH_STRICT -> ssh.strict
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if mapped, ok := envKeyAliases[key]; ok {
			return mapped
		}
		return strings.ReplaceAll(key, "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// PackagesFor returns the configured package list for a distro family
// identifier ("arch", "fedora", "debian").
func (c *ProvisionConfig) PackagesFor(family string) []string {
	switch family {
	case "arch":
		return c.Arch.Packages
	case "fedora":
		return c.Fedora.Packages
	case "debian":
		return c.Debian.Packages
	}
	return nil
}
