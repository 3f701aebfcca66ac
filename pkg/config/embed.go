package config

import (
	_ "embed"

	"github.com/knadh/koanf/parsers/toml"
)

// defaultConfig is the embedded default configuration shipped with the
// binary. It is always loaded first; user file and environment layers
// override it.
//
//go:embed wslkit.toml
var defaultConfig []byte

// rawBytesProvider implements koanf.Provider for in-memory TOML bytes.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	m, err := toml.Parser().Unmarshal(r.bytes)
	if err != nil {
		return nil, err
	}
	return m, nil
}
