package steps

import (
	"context"
	"strings"

	"github.com/devrig/devrig/pkg/runner"
)

// KrewPlugins installs the configured kubectl plugins through krew.
// Individual plugin failures are reported and the loop continues;
// hosts without kubectl or krew are skipped.
func KrewPlugins() runner.Step {
	return runner.Step{
		Name: "kubectl plugins",
		Run:  runKrewPlugins,
	}
}

func runKrewPlugins(ctx context.Context, rc *runner.Context) runner.StepResult {
	plugins := rc.Config.Krew.Plugins
	if len(plugins) == 0 {
		return runner.Skip("no kubectl plugins configured")
	}

	probe, err := rc.Runner.Run(ctx, []string{"kubectl", "krew", "version"}, runnerSilent())
	if err != nil || !probe.Succeeded {
		return runner.Skip("krew not installed")
	}

	var failed []string
	for _, plugin := range plugins {
		result, err := rc.Runner.Run(ctx, []string{"kubectl", "krew", "install", plugin}, runnerSilent())
		if err != nil || !result.Succeeded {
			failed = append(failed, plugin)
		}
	}

	if len(failed) > 0 {
		return runner.Failf("could not install: %s", strings.Join(failed, ", "))
	}
	return runner.Success()
}
