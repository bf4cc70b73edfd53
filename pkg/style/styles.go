// Package style defines the terminal output for devrig runs: the
// per-step progress protocol ([INFO] name... [OK]) and the end-of-run
// summary box. Styling degrades to plain text on non-TTY output.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Adaptive colors, adjusted to light and dark terminal themes.
var (
	SuccessColor = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "124", Dark: "196"}
	WarningColor = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "243", Dark: "246"}
	BorderColor  = lipgloss.AdaptiveColor{Light: "240", Dark: "244"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(InfoColor).
			Bold(true).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)
)

// pterm styles for the inline step markers
var (
	infoMarker = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	okMarker   = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	failMarker = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	warnMarker = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	skipMarker = pterm.NewStyle(pterm.FgGray)
)

// IsTTY reports whether f is an interactive terminal. Markers and the
// spinner are only drawn when it is.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled reports whether the terminal supports color output,
// honoring NO_COLOR via termenv.
func ColorEnabled() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
