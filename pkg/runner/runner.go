// Package runner executes the ordered list of provisioning steps,
// logging start and outcome per step, collecting non-fatal failures
// into an end-of-run summary, and aborting on fatal step failure.
//
// There is no reordering and no dependency resolution: declared order
// encodes the real dependency chain (shell before default-shell
// change, SSH key before dotfiles clone).
package runner

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devrig/devrig/pkg/config"
	"github.com/devrig/devrig/pkg/executor"
	"github.com/devrig/devrig/pkg/installer"
	"github.com/devrig/devrig/pkg/logging"
	"github.com/devrig/devrig/pkg/platform"
	"github.com/devrig/devrig/pkg/style"
)

// Context carries everything a step is allowed to touch. No ambient
// globals: platform facts are detected once and handed in read-only.
type Context struct {
	Platform  platform.Info
	Runner    executor.Runner
	Installer *installer.Installer
	Config    *config.Config
	Console   *style.Console
	Logger    zerolog.Logger

	// Interactive reports whether a terminal is available for prompts.
	Interactive bool
}

// Step is one named unit of provisioning work. Fatal steps stop the
// run on failure; non-fatal ones are reported and the run continues.
type Step struct {
	Name  string
	Fatal bool
	Run   func(ctx context.Context, rc *Context) StepResult
}

// Runner drives steps strictly sequentially on a single goroutine and
// owns the append-only record list.
type Runner struct {
	console *style.Console
	logger  zerolog.Logger
	runID   string
}

// New creates a step runner reporting through the given console.
func New(console *style.Console) *Runner {
	return &Runner{
		console: console,
		logger:  logging.GetLogger("runner"),
		runID:   uuid.NewString(),
	}
}

// RunID identifies this run in logs and the summary.
func (r *Runner) RunID() string {
	return r.runID
}

// Report is the result of a full run.
type Report struct {
	RunID   string
	Records []Record

	// Fatal holds the record of the step that aborted the run, nil
	// when the run completed.
	Fatal *Record
}

// ExitCode maps the report onto the process exit status: zero on full
// success or success with non-fatal warnings, nonzero on fatal
// failure.
func (rep *Report) ExitCode() int {
	if rep.Fatal != nil {
		return 1
	}
	return 0
}

// Summary condenses the report for end-of-run rendering.
func (rep *Report) Summary(info platform.Info) style.Summary {
	s := style.Summary{RunID: rep.RunID, Platform: info.String()}
	for _, rec := range rep.Records {
		switch rec.Outcome {
		case Succeeded:
			s.Succeeded++
		case Failed:
			s.Failed++
			s.ManualSteps = append(s.ManualSteps, style.ManualStep{Name: rec.Name, Detail: rec.Detail})
		case Warned:
			s.Warned++
		case Skipped:
			s.Skipped++
		}
	}
	return s
}

// Run executes steps in declared order. A failing fatal step stops the
// run immediately: remaining steps are recorded Skipped and a
// diagnostic block identifies the failure.
func (r *Runner) Run(ctx context.Context, rc *Context, steps []Step) *Report {
	report := &Report{RunID: r.runID}

	r.logger.Info().
		Str("runID", r.runID).
		Int("steps", len(steps)).
		Str("platform", rc.Platform.String()).
		Msg("Run started")

	for idx, step := range steps {
		r.console.StepStart(step.Name)
		r.logger.Info().Str("step", step.Name).Msg("Step started")

		result := step.Run(ctx, rc)
		record := Record{Name: step.Name, Outcome: result.Outcome, Detail: result.Detail}
		report.Records = append(report.Records, record)

		switch result.Outcome {
		case Succeeded:
			r.console.StepOK()
		case Skipped:
			r.console.StepSkipped()
		case Warned:
			r.console.StepWarned()
		case Failed:
			r.console.StepFailed()
			if step.Fatal {
				r.logger.Error().
					Str("step", step.Name).
					Int("exitCode", result.ExitCode).
					Msg("Fatal step failed, aborting run")

				report.Fatal = &record
				r.skipRemaining(report, steps[idx+1:])
				r.console.Println(style.RenderFailureDiagnostic(
					step.Name, result.ExitCode, result.Detail, r.console.Color()))
				return report
			}
			r.logger.Warn().Str("step", step.Name).Msg("Non-fatal step failed, continuing")
		}
	}

	r.logger.Info().Str("runID", r.runID).Msg("Run completed")
	return report
}

func (r *Runner) skipRemaining(report *Report, remaining []Step) {
	for _, step := range remaining {
		report.Records = append(report.Records, Record{
			Name:    step.Name,
			Outcome: Skipped,
			Detail:  "skipped after fatal failure",
		})
	}
}
