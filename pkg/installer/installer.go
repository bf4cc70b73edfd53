// Package installer brings packages to an installed state through the
// platform's primary package manager, with Homebrew as a
// cross-platform fallback.
package installer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devrig/devrig/pkg/executor"
	"github.com/devrig/devrig/pkg/logging"
	"github.com/devrig/devrig/pkg/platform"
)

// Spec names a logical package, with optional per-family overrides for
// distributions that ship it under a different name (e.g. ssh-askpass
// is openssh-askpass on Fedora). Immutable configuration data.
type Spec struct {
	Name      string
	Overrides map[platform.Family]string
}

// NameFor resolves the package name for a family, falling back to the
// logical name.
func (s Spec) NameFor(family platform.Family) string {
	if name, ok := s.Overrides[family]; ok {
		return name
	}
	return s.Name
}

// Outcome classifies an EnsureInstalled call.
type Outcome int

const (
	AlreadyPresent Outcome = iota
	Installed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case AlreadyPresent:
		return "already present"
	case Installed:
		return "installed"
	default:
		return "failed"
	}
}

// Result carries the outcome plus captured failure output for the
// caller's reporting. A Failed result is non-fatal to the installer;
// the orchestrator decides whether to halt.
type Result struct {
	Outcome Outcome
	Detail  string
}

// Installer checks package presence and delegates installation to the
// command runner.
type Installer struct {
	runner   executor.Runner
	platform platform.Info
	logger   zerolog.Logger

	// brewAvailable is injectable for tests; defaults to a PATH probe.
	brewAvailable func() bool
}

// New creates an installer for the detected platform.
func New(runner executor.Runner, info platform.Info) *Installer {
	return &Installer{
		runner:        runner,
		platform:      info,
		logger:        logging.GetLogger("installer"),
		brewAvailable: func() bool { return executor.Available("brew") },
	}
}

// EnsureInstalled checks whether the package is present and installs
// it if not: primary manager first, then Homebrew (when on the host)
// with the logical name.
func (i *Installer) EnsureInstalled(ctx context.Context, spec Spec) Result {
	primary := managerFor(i.platform)
	brew, haveBrew := brewManager(), i.brewAvailable()

	if i.isPresent(ctx, spec, primary, brew, haveBrew) {
		i.logger.Debug().Str("package", spec.Name).Msg("Package already present")
		return Result{Outcome: AlreadyPresent}
	}

	var detail string
	if primary != nil {
		name := spec.NameFor(i.platform.PackageFamily())
		result, err := i.runner.Run(ctx, primary.installArgv(name), executor.Options{Silent: true})
		if err == nil && result.Succeeded {
			i.logger.Info().Str("package", name).Str("manager", primary.name).Msg("Package installed")
			return Result{Outcome: Installed}
		}
		if err != nil {
			// Spawn failure counts as a failed attempt for fallback
			// purposes, logged distinctly.
			i.logger.Warn().Err(err).Str("manager", primary.name).Msg("Package manager not runnable")
			detail = err.Error()
		} else {
			detail = result.CombinedOutput
		}
	}

	// Homebrew fallback is tried regardless of platform, but only with
	// the logical, non-mapped name.
	if haveBrew && (primary == nil || primary.name != brew.name) {
		result, err := i.runner.Run(ctx, brew.installArgv(spec.Name), executor.Options{Silent: true})
		if err == nil && result.Succeeded {
			i.logger.Info().Str("package", spec.Name).Str("manager", brew.name).Msg("Package installed via fallback")
			return Result{Outcome: Installed}
		}
		if err != nil {
			detail = err.Error()
		} else if result.CombinedOutput != "" {
			detail = result.CombinedOutput
		}
	}

	i.logger.Warn().Str("package", spec.Name).Msg("Package installation failed")
	return Result{Outcome: Failed, Detail: detail}
}

// isPresent runs the platform-appropriate installed check. A package
// satisfied by a different manager than the platform's primary (e.g. a
// manual brew install on Linux) still counts as present.
func (i *Installer) isPresent(ctx context.Context, spec Spec, primary *manager, brew *manager, haveBrew bool) bool {
	if primary != nil {
		name := spec.NameFor(i.platform.PackageFamily())
		result, err := i.runner.Run(ctx, primary.checkArgv(name), executor.Options{Silent: true})
		if err == nil && result.Succeeded {
			return true
		}
	}
	if haveBrew && (primary == nil || primary.name != brew.name) {
		result, err := i.runner.Run(ctx, brew.checkArgv(spec.Name), executor.Options{Silent: true})
		if err == nil && result.Succeeded {
			return true
		}
	}
	return false
}
