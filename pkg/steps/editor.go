package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/devrig/devrig/pkg/errors"
	"github.com/devrig/devrig/pkg/platform"
	"github.com/devrig/devrig/pkg/runner"
)

// EditorPreferences applies the manifest's desktop and editor
// settings: `defaults write` entries on macOS, `gsettings set` on
// GNOME. Hosts without the relevant tool are skipped, not failed.
func EditorPreferences() runner.Step {
	return runner.Step{
		Name: "editor preferences",
		Run:  runEditorPreferences,
	}
}

func runEditorPreferences(ctx context.Context, rc *runner.Context) runner.StepResult {
	if rc.Platform.Family == platform.Darwin {
		return applyDefaults(ctx, rc)
	}
	return applyGSettings(ctx, rc)
}

func applyDefaults(ctx context.Context, rc *runner.Context) runner.StepResult {
	entries := rc.Config.Editor.Darwin
	if len(entries) == 0 {
		return runner.Skip("no preferences configured")
	}

	var failed []string
	for _, e := range entries {
		result, err := rc.Runner.Run(ctx,
			[]string{"defaults", "write", e.Domain, e.Key, e.Value}, runnerSilent())
		if err != nil || !result.Succeeded {
			failed = append(failed, fmt.Sprintf("%s %s", e.Domain, e.Key))
		}
	}
	return preferencesResult(failed)
}

func applyGSettings(ctx context.Context, rc *runner.Context) runner.StepResult {
	entries := rc.Config.Editor.Gnome
	if len(entries) == 0 {
		return runner.Skip("no preferences configured")
	}

	var failed []string
	for _, e := range entries {
		result, err := rc.Runner.Run(ctx,
			[]string{"gsettings", "set", e.Schema, e.Key, e.Value}, runnerSilent())
		if err != nil {
			// No gsettings binary: not a GNOME session.
			if errors.IsErrorCode(err, errors.ErrSpawn) {
				return runner.Skip("gsettings not available")
			}
			failed = append(failed, fmt.Sprintf("%s %s", e.Schema, e.Key))
			continue
		}
		if !result.Succeeded {
			failed = append(failed, fmt.Sprintf("%s %s", e.Schema, e.Key))
		}
	}
	return preferencesResult(failed)
}

func preferencesResult(failed []string) runner.StepResult {
	if len(failed) > 0 {
		return runner.Failf("could not apply: %s", strings.Join(failed, ", "))
	}
	return runner.Success()
}
