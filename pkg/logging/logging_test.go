package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// setStateHome points the XDG state directory at dir for the duration
// of the test.
func setStateHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			setStateHome(t, tempDir)

			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			logPath := filepath.Join(tempDir, "devrig", "devrig.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		setStateHome(t, "/custom/state")

		got := getLogFilePath()
		if got != "/custom/state/devrig/devrig.log" {
			t.Errorf("getLogFilePath() = %q, want /custom/state/devrig/devrig.log", got)
		}
	})

	t.Run("defaults under the state dir", func(t *testing.T) {
		got := getLogFilePath()
		if !strings.HasSuffix(got, filepath.Join("devrig", "devrig.log")) {
			t.Errorf("getLogFilePath() = %q, want a devrig/devrig.log path", got)
		}
	})
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("executor")
	// The component field is attached lazily; just make sure we get a usable logger.
	logger.Debug().Msg("component logger works")
}
