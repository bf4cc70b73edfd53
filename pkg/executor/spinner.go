package executor

import (
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/devrig/devrig/pkg/style"
)

// Spinner is the in-flight progress indicator shown while a
// non-interactive command runs.
type Spinner interface {
	Start(label string)
	Stop()
}

// termSpinner draws a rotating glyph on stderr at a fixed redraw
// interval, removed once the command completes.
type termSpinner struct {
	printer *pterm.SpinnerPrinter
	active  *pterm.SpinnerPrinter
}

// newTerminalSpinner returns a spinner when stderr is a TTY, nil
// otherwise so redirected output stays clean.
func newTerminalSpinner() Spinner {
	if !style.IsTTY(os.Stderr) {
		return nil
	}
	printer := pterm.DefaultSpinner.
		WithWriter(os.Stderr).
		WithDelay(100 * time.Millisecond).
		WithRemoveWhenDone(true)
	return &termSpinner{printer: printer}
}

func (s *termSpinner) Start(label string) {
	sp, err := s.printer.Start(label)
	if err != nil {
		return
	}
	s.active = sp
}

func (s *termSpinner) Stop() {
	if s.active == nil {
		return
	}
	_ = s.active.Stop()
	s.active = nil
}
