package steps

import (
	"context"

	"github.com/devrig/devrig/pkg/paths"
	"github.com/devrig/devrig/pkg/runner"
)

// Pyenv clones pyenv into PYENV_ROOT (default ~/.pyenv).
func Pyenv() runner.Step {
	return runner.Step{
		Name: "pyenv",
		Run:  runPyenv,
	}
}

func runPyenv(ctx context.Context, rc *runner.Context) runner.StepResult {
	cfg := rc.Config.Pyenv
	if !cfg.Enabled || cfg.Repo == "" {
		return runner.Skip("pyenv disabled")
	}

	root, err := paths.PyenvRoot()
	if err != nil {
		return runner.Failf("cannot resolve pyenv root: %v", err)
	}

	_, result := cloneIfMissing(ctx, rc, cfg.Repo, root)
	return result
}
