package steps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devrig/devrig/pkg/config"
	"github.com/devrig/devrig/pkg/runner"
	"github.com/devrig/devrig/pkg/testutil"
)

func setupXDG(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return tmp
}

func fontsConfig() *config.Config {
	return &config.Config{Fonts: config.FontsConfig{
		Enabled:    true,
		Fontconfig: true,
		Family:     "Hack Nerd Font",
		Files: []config.FontFile{
			{Name: "Hack Regular Nerd Font Complete.ttf", URL: "https://example.test/Hack.tar.xz"},
		},
	}}
}

func TestFontsDownloadUnpackAndCache(t *testing.T) {
	tmp := setupXDG(t)
	fake := &testutil.FakeRunner{}

	result := runFonts(context.Background(), newContext(fontsConfig(), fake))

	require.Equal(t, runner.Succeeded, result.Outcome)

	fontDir := filepath.Join(tmp, "data", "fonts")
	archive := filepath.Join(tmp, "cache", "devrig", "Hack.tar.xz")
	lines := fake.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "curl -fsSL -o "+archive+" https://example.test/Hack.tar.xz", lines[0])
	assert.Equal(t, "tar -xf "+archive+" -C "+fontDir, lines[1])
	assert.Equal(t, "fc-cache -f "+fontDir, lines[2])
}

func TestFontsWritesFontconfigPreference(t *testing.T) {
	tmp := setupXDG(t)
	fake := &testutil.FakeRunner{}

	result := runFonts(context.Background(), newContext(fontsConfig(), fake))
	require.Equal(t, runner.Succeeded, result.Outcome)

	conf := filepath.Join(tmp, "config", "fontconfig", "conf.d", "99-devrig-fonts.conf")
	data, err := os.ReadFile(conf)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<fontconfig>")
	assert.Contains(t, string(data), "Hack Nerd Font")
	assert.Contains(t, string(data), "monospace")
}

func TestFontsSkippedWhenInstalled(t *testing.T) {
	tmp := setupXDG(t)
	fontDir := filepath.Join(tmp, "data", "fonts")
	require.NoError(t, os.MkdirAll(fontDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(fontDir, "Hack Regular Nerd Font Complete.ttf"), []byte("ttf"), 0o644))

	fake := &testutil.FakeRunner{}
	result := runFonts(context.Background(), newContext(fontsConfig(), fake))

	assert.Equal(t, runner.Skipped, result.Outcome)
	assert.Empty(t, fake.Calls)
}

func TestFontsDisabled(t *testing.T) {
	fake := &testutil.FakeRunner{}
	result := runFonts(context.Background(), newContext(&config.Config{}, fake))

	assert.Equal(t, runner.Skipped, result.Outcome)
	assert.Empty(t, fake.Calls)
}
