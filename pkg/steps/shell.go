package steps

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/devrig/devrig/pkg/runner"
)

// DefaultShell changes the login shell to the configured one via chsh.
// Skipped when $SHELL already matches. chsh prompts for the user's
// password, so the invocation is interactive.
func DefaultShell() runner.Step {
	return runner.Step{
		Name: "default shell",
		Run:  runDefaultShell,
	}
}

func runDefaultShell(ctx context.Context, rc *runner.Context) runner.StepResult {
	want := rc.Config.Shell.Default
	if want == "" {
		return runner.Skip("no default shell configured")
	}
	if filepath.Base(shellEnv()) == want {
		return runner.Skip("$SHELL is already %s", want)
	}

	// Resolve the full binary path; chsh rejects bare names not listed
	// in /etc/shells.
	probe, err := rc.Runner.Run(ctx, []string{"sh", "-c", "command -v " + want}, runnerSilent())
	if err != nil || !probe.Succeeded {
		return runner.Failf("%s not found on PATH", want)
	}
	shellPath := strings.TrimSpace(probe.CombinedOutput)

	result, err := rc.Runner.Run(ctx, []string{"chsh", "-s", shellPath},
		interactiveOpts(rc.Interactive))
	if err != nil {
		return runner.Failf("chsh not runnable: %v", err)
	}
	if !result.Succeeded {
		return runner.Fail(result.CombinedOutput, result.ExitCode)
	}
	return runner.Success()
}

// ShellPlugins clones the configured zsh plugins into the plugin
// directory, skipping any that are already checked out.
func ShellPlugins() runner.Step {
	return runner.Step{
		Name: "zsh plugins",
		Run:  runShellPlugins,
	}
}

func runShellPlugins(ctx context.Context, rc *runner.Context) runner.StepResult {
	if len(rc.Config.Shell.Plugins) == 0 {
		return runner.Skip("no shell plugins configured")
	}

	pluginDir, err := expand(rc.Config.Shell.PluginDir)
	if err != nil {
		return runner.Failf("cannot resolve plugin dir: %v", err)
	}

	var cloned, failed []string
	for _, plugin := range rc.Config.Shell.Plugins {
		target := filepath.Join(pluginDir, plugin.Name)
		skipped, result := cloneIfMissing(ctx, rc, plugin.Repo, target)
		switch {
		case skipped:
		case result.Outcome == runner.Succeeded:
			cloned = append(cloned, plugin.Name)
		default:
			failed = append(failed, plugin.Name)
		}
	}

	if len(failed) > 0 {
		return runner.Failf("could not clone: %s", strings.Join(failed, ", "))
	}
	if len(cloned) == 0 {
		return runner.Skip("all plugins already present")
	}
	return runner.Success()
}
