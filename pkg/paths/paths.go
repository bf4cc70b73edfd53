// Package paths provides centralized path handling for devrig.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/devrig/devrig/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for devrig
	EnvConfigDir = "DEVRIG_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvPyenvRoot is the pyenv installation root
	EnvPyenvRoot = "PYENV_ROOT"
)

// Default directories and files
const (
	// AppDirName is the directory name for devrig-specific files
	AppDirName = "devrig"

	// ConfigFileName is the name of the configuration file (TOML)
	ConfigFileName = "devrig.toml"

	// ConfigFileNameYAML is the alternate YAML configuration file
	ConfigFileNameYAML = "devrig.yaml"

	// LogFileName is the name of the log file
	LogFileName = "devrig.log"

	// SSHDirName is the user's SSH directory under home
	SSHDirName = ".ssh"

	// DefaultSSHKeyName is the key file generated for the dotfiles forge
	DefaultSSHKeyName = "id_ed25519"

	// DefaultDotfilesDir is where the bare dotfiles repository lives
	DefaultDotfilesDir = ".dotfiles"

	// DefaultPyenvDir is the pyenv root when PYENV_ROOT is unset
	DefaultPyenvDir = ".pyenv"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable. If both fail, it returns an error rather than using dangerous
// defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess,
		"unable to determine home directory: neither os.UserHomeDir() nor HOME are available")
}

// ExpandHome expands the ~ character to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot expand ~")
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}

// ConfigDir returns the directory holding the user configuration file.
// DEVRIG_CONFIG_DIR overrides the XDG default.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory for run state and logs.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppDirName)
}

// CacheDir returns the directory for downloaded artifacts (fonts, archives).
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// SSHDir returns the user's ~/.ssh directory.
func SSHDir() (string, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, SSHDirName), nil
}

// SSHKeyPath returns the path of the provisioned private key for the
// given key type ("ed25519" -> ~/.ssh/id_ed25519). An empty type
// yields the default key name.
func SSHKeyPath(keyType string) (string, error) {
	dir, err := SSHDir()
	if err != nil {
		return "", err
	}
	if keyType == "" {
		return filepath.Join(dir, DefaultSSHKeyName), nil
	}
	return filepath.Join(dir, "id_"+keyType), nil
}

// DotfilesDir returns the bare repository directory for dotfiles.
func DotfilesDir() (string, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDotfilesDir), nil
}

// PyenvRoot returns PYENV_ROOT, defaulting to ~/.pyenv.
func PyenvRoot() (string, error) {
	if root := os.Getenv(EnvPyenvRoot); root != "" {
		return root, nil
	}
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultPyenvDir), nil
}

// FontconfigDir returns the user fontconfig drop-in directory.
func FontconfigDir() string {
	return filepath.Join(xdg.ConfigHome, "fontconfig", "conf.d")
}

// UserFontDir returns the per-user font directory for the current platform.
// darwin keeps fonts in ~/Library/Fonts, Linux under XDG data.
func UserFontDir(goos string) (string, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	if goos == "darwin" {
		return filepath.Join(home, "Library", "Fonts"), nil
	}
	return filepath.Join(xdg.DataHome, "fonts"), nil
}
