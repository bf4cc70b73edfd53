// Package config loads the provisioning manifest: the package list,
// repositories, and per-step settings the runner consumes. The
// embedded stock manifest is overlaid by an optional user file and
// DEVRIG_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	koanftoml "github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/devrig/devrig/pkg/errors"
	"github.com/devrig/devrig/pkg/installer"
	"github.com/devrig/devrig/pkg/paths"
	"github.com/devrig/devrig/pkg/platform"
)

// Config is the full provisioning manifest.
type Config struct {
	Dotfiles DotfilesConfig  `koanf:"dotfiles" toml:"dotfiles"`
	SSH      SSHConfig       `koanf:"ssh" toml:"ssh"`
	Shell    ShellConfig     `koanf:"shell" toml:"shell"`
	Tmux     TmuxConfig      `koanf:"tmux" toml:"tmux"`
	Packages []PackageConfig `koanf:"packages" toml:"packages"`
	Fonts    FontsConfig     `koanf:"fonts" toml:"fonts"`
	Pyenv    PyenvConfig     `koanf:"pyenv" toml:"pyenv"`
	Editor   EditorConfig    `koanf:"editor" toml:"editor"`
	Krew     KrewConfig      `koanf:"krew" toml:"krew"`
}

// DotfilesConfig locates the dotfiles repository.
type DotfilesConfig struct {
	Repo string `koanf:"repo" toml:"repo"`
	Dir  string `koanf:"dir" toml:"dir"`
}

// SSHConfig controls key generation and forge verification.
type SSHConfig struct {
	KeyType    string `koanf:"key_type" toml:"key_type"`
	KeyComment string `koanf:"key_comment" toml:"key_comment"`
	VerifyHost string `koanf:"verify_host" toml:"verify_host"`
}

// ShellConfig names the login shell and its plugins.
type ShellConfig struct {
	Default   string        `koanf:"default" toml:"default"`
	PluginDir string        `koanf:"plugin_dir" toml:"plugin_dir"`
	Plugins   []CloneTarget `koanf:"plugins" toml:"plugins"`
}

// TmuxConfig locates the tmux plugin manager.
type TmuxConfig struct {
	PluginRepo string `koanf:"plugin_repo" toml:"plugin_repo"`
	PluginDir  string `koanf:"plugin_dir" toml:"plugin_dir"`
}

// CloneTarget is one git repository cloned into a local directory.
type CloneTarget struct {
	Name string `koanf:"name" toml:"name"`
	Repo string `koanf:"repo" toml:"repo"`
}

// PackageConfig is one logical package with per-family name overrides,
// keyed by family string ("fedora", "debian", ...).
type PackageConfig struct {
	Name      string            `koanf:"name" toml:"name"`
	Overrides map[string]string `koanf:"overrides" toml:"overrides"`
}

// Spec converts the configuration entry into the installer's package
// spec.
func (p PackageConfig) Spec() installer.Spec {
	spec := installer.Spec{Name: p.Name}
	if len(p.Overrides) > 0 {
		spec.Overrides = make(map[platform.Family]string, len(p.Overrides))
		for family, name := range p.Overrides {
			spec.Overrides[platform.Family(family)] = name
		}
	}
	return spec
}

// FontsConfig controls nerd font installation.
type FontsConfig struct {
	Enabled    bool       `koanf:"enabled" toml:"enabled"`
	Fontconfig bool       `koanf:"fontconfig" toml:"fontconfig"`
	Family     string     `koanf:"family" toml:"family"`
	Files      []FontFile `koanf:"files" toml:"files"`
}

// FontFile is one downloadable font artifact.
type FontFile struct {
	Name string `koanf:"name" toml:"name"`
	URL  string `koanf:"url" toml:"url"`
}

// PyenvConfig controls the pyenv checkout.
type PyenvConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Repo    string `koanf:"repo" toml:"repo"`
}

// EditorConfig carries desktop/editor preference writes per platform.
type EditorConfig struct {
	Darwin []DefaultsEntry  `koanf:"darwin" toml:"darwin"`
	Gnome  []GSettingsEntry `koanf:"gnome" toml:"gnome"`
}

// DefaultsEntry is one macOS `defaults write` invocation.
type DefaultsEntry struct {
	Domain string `koanf:"domain" toml:"domain"`
	Key    string `koanf:"key" toml:"key"`
	Value  string `koanf:"value" toml:"value"`
}

// GSettingsEntry is one GNOME `gsettings set` invocation.
type GSettingsEntry struct {
	Schema string `koanf:"schema" toml:"schema"`
	Key    string `koanf:"key" toml:"key"`
	Value  string `koanf:"value" toml:"value"`
}

// KrewConfig lists kubectl plugins installed through krew.
type KrewConfig struct {
	Plugins []string `koanf:"plugins" toml:"plugins"`
}

// Load builds the manifest: embedded defaults, then the user file at
// explicitPath (or the first of devrig.toml / devrig.yaml under the
// config dir), then DEVRIG_* environment variables.
func Load(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultManifest}, koanftoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	path, err := userConfigPath(explicitPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
		}
	}

	// DEVRIG_DOTFILES_REPO -> dotfiles.repo
	envProvider := env.Provider("DEVRIG_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "DEVRIG_")), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// userConfigPath resolves the user manifest file. An explicit path
// must exist; the conventional locations are optional.
func userConfigPath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", explicitPath)
		}
		return explicitPath, nil
	}

	dir := paths.ConfigDir()
	for _, name := range []string{paths.ConfigFileName, paths.ConfigFileNameYAML} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return koanfyaml.Parser()
	default:
		return koanftoml.Parser()
	}
}
