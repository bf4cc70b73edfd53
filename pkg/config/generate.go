package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/devrig/devrig/pkg/errors"
)

// Dump renders the effective manifest as TOML, for `--gen-config` and
// troubleshooting.
func Dump(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return string(data), nil
}

// GenerateTemplate returns the stock manifest with every value
// commented out, ready to drop into the user config directory.
func GenerateTemplate() string {
	lines := strings.Split(DefaultManifest(), "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Blank lines, comments and section headers stay as-is.
		if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
			(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
