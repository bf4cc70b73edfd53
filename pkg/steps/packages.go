package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/devrig/devrig/pkg/installer"
	"github.com/devrig/devrig/pkg/runner"
)

// Packages installs the manifest's base package list. Individual
// failures do not stop the loop: the step reports them all at once and
// the run continues.
func Packages() runner.Step {
	return runner.Step{
		Name: "base packages",
		Run:  runPackages,
	}
}

func runPackages(ctx context.Context, rc *runner.Context) runner.StepResult {
	var installed, failed []string
	var details []string

	for _, pkg := range rc.Config.Packages {
		result := rc.Installer.EnsureInstalled(ctx, pkg.Spec())
		switch result.Outcome {
		case installer.Installed:
			installed = append(installed, pkg.Name)
		case installer.Failed:
			failed = append(failed, pkg.Name)
			if result.Detail != "" {
				details = append(details, fmt.Sprintf("%s: %s", pkg.Name, firstLine(result.Detail)))
			}
		}
	}

	if len(failed) > 0 {
		detail := fmt.Sprintf("could not install: %s", strings.Join(failed, ", "))
		if len(details) > 0 {
			detail += "\n" + strings.Join(details, "\n")
		}
		return runner.Fail(detail, 1)
	}
	if len(installed) == 0 {
		return runner.Skip("all packages already installed")
	}
	return runner.Success()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
