// Package steps defines the provisioning sequence devrig runs. Each
// step is idempotent: it checks for its desired end state first and
// reports Skipped when nothing needs doing.
//
// Declared order is load-bearing: packages install git/zsh before the
// clone and shell steps, the SSH key exists before the dotfiles clone.
package steps

import (
	"context"
	"os"

	"github.com/devrig/devrig/pkg/config"
	"github.com/devrig/devrig/pkg/executor"
	"github.com/devrig/devrig/pkg/paths"
	"github.com/devrig/devrig/pkg/runner"
)

// Build assembles the full step list for a run from the loaded
// manifest.
func Build(cfg *config.Config) []runner.Step {
	return []runner.Step{
		Packages(),
		DefaultShell(),
		ShellPlugins(),
		TmuxPlugins(),
		SSHKey(cfg.SSH),
		Dotfiles(),
		Fonts(),
		Pyenv(),
		EditorPreferences(),
		KrewPlugins(),
	}
}

// expand resolves a leading ~ in a configured path.
func expand(path string) (string, error) {
	return paths.ExpandHome(path)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// runnerSilent suppresses the executor's own diagnostic; steps fold
// captured output into their result instead.
func runnerSilent() executor.Options {
	return executor.Options{Silent: true}
}

// interactiveOpts hands the terminal to commands that may prompt, when
// a terminal exists at all.
func interactiveOpts(interactive bool) executor.Options {
	return executor.Options{Interactive: interactive, Silent: true}
}

func shellEnv() string {
	return os.Getenv("SHELL")
}

// cloneIfMissing clones repo into dir unless dir already exists.
// Returns (skipped, result).
func cloneIfMissing(ctx context.Context, rc *runner.Context, repo, dir string) (bool, runner.StepResult) {
	if dirExists(dir) {
		return true, runner.Skip("%s already present", dir)
	}

	result, err := rc.Runner.Run(ctx, []string{"git", "clone", repo, dir}, runnerSilent())
	if err != nil {
		return false, runner.Failf("git not runnable: %v", err)
	}
	if !result.Succeeded {
		return false, runner.Fail(result.CombinedOutput, result.ExitCode)
	}
	return false, runner.Success()
}
