package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfigPrintsCommentedTemplate(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--gen-config"})
	t.Cleanup(func() {
		genConfig = false
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "[dotfiles]")
	assert.Contains(t, out.String(), `# repo = ""`)
	assert.NotContains(t, out.String(), "\nrepo =", "values are commented out")
}

func TestConfigPrintsEffectiveManifest(t *testing.T) {
	t.Setenv("DEVRIG_CONFIG_DIR", t.TempDir()) // no user file in play
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"config"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "[dotfiles]")
	assert.Contains(t, out.String(), "key_type = 'ed25519'")
}

func TestDocsFallsBackToPlainMarkdown(t *testing.T) {
	// Stdout is not a TTY under go test, so the raw markdown comes back.
	rendered := renderMarkdown(guideMarkdown)
	assert.Contains(t, rendered, "# devrig guide")
}
