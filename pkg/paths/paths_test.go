package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHomeDirectory(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)
	assert.NotEmpty(t, home)
}

func TestExpandHome(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/dotfiles", filepath.Join(home, "dotfiles")},
		{"absolute untouched", "/etc/os-release", "/etc/os-release"},
		{"relative untouched", "fonts/hack.ttf", "fonts/hack.ttf"},
		{"tilde in middle untouched", "/opt/~cache", "/opt/~cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigDirOverride(t *testing.T) {
	t.Setenv(EnvConfigDir, "/custom/config")
	assert.Equal(t, "/custom/config", ConfigDir())
}

func TestSSHKeyPath(t *testing.T) {
	tests := []struct {
		name    string
		keyType string
		want    string
	}{
		{"default", "", DefaultSSHKeyName},
		{"ed25519", "ed25519", "id_ed25519"},
		{"rsa", "rsa", "id_rsa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SSHKeyPath(tt.keyType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filepath.Base(got))
			assert.Equal(t, SSHDirName, filepath.Base(filepath.Dir(got)))
		})
	}
}

func TestPyenvRoot(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		t.Setenv(EnvPyenvRoot, "/opt/pyenv")
		got, err := PyenvRoot()
		require.NoError(t, err)
		assert.Equal(t, "/opt/pyenv", got)
	})

	t.Run("default under home", func(t *testing.T) {
		t.Setenv(EnvPyenvRoot, "")
		got, err := PyenvRoot()
		require.NoError(t, err)
		assert.Equal(t, DefaultPyenvDir, filepath.Base(got))
	})
}

func TestUserFontDir(t *testing.T) {
	darwin, err := UserFontDir("darwin")
	require.NoError(t, err)
	assert.Contains(t, darwin, filepath.Join("Library", "Fonts"))

	linux, err := UserFontDir("linux")
	require.NoError(t, err)
	assert.Equal(t, "fonts", filepath.Base(linux))
}
