// Package executor runs external commands for provisioning steps,
// capturing interleaved stdout+stderr, exit status, and showing a
// spinner while a non-interactive command is in flight.
//
// A failing subprocess is not an error: it is reported through
// Result.Succeeded so callers can drive fallback logic. Only a spawn
// failure (binary missing, fork failed) surfaces as an error.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	rigerrors "github.com/devrig/devrig/pkg/errors"
	"github.com/devrig/devrig/pkg/logging"
)

// Result is the outcome of one subprocess invocation. It is ephemeral:
// consumed immediately by the caller to decide control flow.
type Result struct {
	ExitCode       int
	CombinedOutput string
	Succeeded      bool
}

// Options controls a single invocation.
type Options struct {
	// Interactive hands the terminal to the subprocess: no spinner,
	// output streamed live and still duplicated into the capture
	// buffer. Used whenever the command may prompt (e.g. sudo without
	// a cached credential).
	Interactive bool

	// Silent suppresses the failure diagnostic. The caller can still
	// inspect Result.CombinedOutput. Overridden by verbose mode.
	Silent bool
}

// Runner is the execution contract consumed by the installer, the
// privilege keep-alive and the provisioning steps. Tests substitute a
// fake.
type Runner interface {
	Run(ctx context.Context, argv []string, opts Options) (Result, error)
}

// Exec is the production Runner backed by os/exec.
type Exec struct {
	// Verbose forces failure diagnostics even for silent invocations.
	Verbose bool

	// DryRun logs the command without spawning it and reports success.
	DryRun bool

	// Diag receives failure diagnostics; defaults to os.Stderr.
	Diag io.Writer

	// Spin draws the progress indicator. Nil disables it.
	Spin Spinner

	logger zerolog.Logger
}

// New returns an executor with the spinner enabled when stderr is a
// terminal.
func New(verbose, dryRun bool) *Exec {
	return &Exec{
		Verbose: verbose,
		DryRun:  dryRun,
		Diag:    os.Stderr,
		Spin:    newTerminalSpinner(),
		logger:  logging.GetLogger("executor"),
	}
}

// Run executes argv and returns its result. The subprocess is killed
// when ctx is cancelled.
func (e *Exec) Run(ctx context.Context, argv []string, opts Options) (Result, error) {
	if len(argv) == 0 {
		return Result{}, rigerrors.New(rigerrors.ErrInvalidInput, "empty command")
	}

	logging.LogCommand(argv[0], argv[1:])
	start := time.Now()
	defer logging.LogDuration(start, "run "+argv[0])

	if e.DryRun {
		e.logger.Info().Strs("argv", argv).Msg("Dry run, command not executed")
		return Result{ExitCode: 0, Succeeded: true}, nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var capture syncBuffer
	if opts.Interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = io.MultiWriter(os.Stdout, &capture)
		cmd.Stderr = io.MultiWriter(os.Stderr, &capture)
	} else {
		// Detached from the controlling terminal's input. Assigning
		// the identical writer to both streams keeps emission order.
		cmd.Stdin = nil
		cmd.Stdout = &capture
		cmd.Stderr = &capture
	}

	if !opts.Interactive && e.Spin != nil {
		e.Spin.Start(argv[0])
	}

	err := cmd.Run()

	if !opts.Interactive && e.Spin != nil {
		e.Spin.Stop()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Could not be spawned at all: a distinct, rarer fault.
			e.logger.Error().Err(err).Strs("argv", argv).Msg("Failed to spawn command")
			return Result{ExitCode: -1}, rigerrors.Wrapf(err, rigerrors.ErrSpawn,
				"failed to spawn %q", argv[0])
		}

		result := Result{
			ExitCode:       exitErr.ExitCode(),
			CombinedOutput: capture.String(),
			Succeeded:      false,
		}
		e.logger.Debug().
			Strs("argv", argv).
			Int("exitCode", result.ExitCode).
			Msg("Command exited nonzero")

		if !opts.Silent || e.Verbose {
			e.printFailure(argv, result)
		}
		return result, nil
	}

	return Result{
		ExitCode:       0,
		CombinedOutput: capture.String(),
		Succeeded:      true,
	}, nil
}

// printFailure emits the diagnostic block for a failing invocation.
// This happens exactly once per failure; callers never duplicate it.
func (e *Exec) printFailure(argv []string, result Result) {
	w := e.Diag
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "command failed: %s\n", strings.Join(argv, " "))
	fmt.Fprintln(w, failureDelimiter)
	fmt.Fprint(w, result.CombinedOutput)
	if !strings.HasSuffix(result.CombinedOutput, "\n") {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, failureDelimiter)
}

const failureDelimiter = "----------------------------------------"

// Available reports whether a binary can be found on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// syncBuffer is a write-locked buffer. Interactive mode duplicates two
// live streams into it concurrently.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
