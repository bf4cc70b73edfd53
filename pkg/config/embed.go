package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/devrig.toml
var defaultManifest []byte

// DefaultManifest returns the embedded stock provisioning manifest.
func DefaultManifest() string {
	return string(defaultManifest)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
