package steps

import (
	"context"

	"github.com/devrig/devrig/pkg/runner"
)

// TmuxPlugins clones the tmux plugin manager so a first `prefix + I`
// inside tmux can take over.
func TmuxPlugins() runner.Step {
	return runner.Step{
		Name: "tmux plugin manager",
		Run:  runTmuxPlugins,
	}
}

func runTmuxPlugins(ctx context.Context, rc *runner.Context) runner.StepResult {
	cfg := rc.Config.Tmux
	if cfg.PluginRepo == "" {
		return runner.Skip("no tmux plugin manager configured")
	}

	dir, err := expand(cfg.PluginDir)
	if err != nil {
		return runner.Failf("cannot resolve tmux plugin dir: %v", err)
	}

	_, result := cloneIfMissing(ctx, rc, cfg.PluginRepo, dir)
	return result
}
