package steps

import (
	"context"

	"github.com/devrig/devrig/pkg/paths"
	"github.com/devrig/devrig/pkg/runner"
)

// Dotfiles clones the dotfiles repository bare and checks it out with
// the home directory as work tree. Fatal: everything after this
// assumes the dotfiles are in place.
func Dotfiles() runner.Step {
	return runner.Step{
		Name:  "dotfiles",
		Fatal: true,
		Run:   runDotfiles,
	}
}

func runDotfiles(ctx context.Context, rc *runner.Context) runner.StepResult {
	cfg := rc.Config.Dotfiles
	if cfg.Repo == "" {
		return runner.Skip("no dotfiles repository configured")
	}

	var gitDir string
	var err error
	if cfg.Dir != "" {
		gitDir, err = expand(cfg.Dir)
	} else {
		gitDir, err = paths.DotfilesDir()
	}
	if err != nil {
		return runner.Failf("cannot resolve dotfiles dir: %v", err)
	}
	home, err := paths.GetHomeDirectory()
	if err != nil {
		return runner.Failf("cannot resolve home: %v", err)
	}

	if !dirExists(gitDir) {
		result, err := rc.Runner.Run(ctx, []string{"git", "clone", "--bare", cfg.Repo, gitDir}, runnerSilent())
		if err != nil {
			return runner.Failf("git not runnable: %v", err)
		}
		if !result.Succeeded {
			return runner.Fail(result.CombinedOutput, result.ExitCode)
		}
	}

	// The bare repo is driven with explicit --git-dir/--work-tree; the
	// shell alias users add later is the same invocation.
	result, err := rc.Runner.Run(ctx, dotfilesGit(gitDir, home, "checkout"), runnerSilent())
	if err != nil {
		return runner.Failf("git not runnable: %v", err)
	}
	if !result.Succeeded {
		// Checkout refuses to clobber pre-existing files; that needs a
		// human decision, not an automatic overwrite.
		return runner.Fail("checkout failed, move conflicting files aside and re-run:\n"+
			result.CombinedOutput, result.ExitCode)
	}

	// Untracked-file noise would otherwise swamp every status call on a
	// home-directory work tree.
	_, _ = rc.Runner.Run(ctx, dotfilesGit(gitDir, home,
		"config", "--local", "status.showUntrackedFiles", "no"), runnerSilent())

	return runner.Success()
}

// dotfilesGit builds a git invocation against the bare dotfiles repo.
func dotfilesGit(gitDir, workTree string, args ...string) []string {
	argv := []string{"git", "--git-dir=" + gitDir, "--work-tree=" + workTree}
	return append(argv, args...)
}
