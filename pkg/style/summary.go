package style

import (
	"fmt"
	"strings"
)

// Summary is the end-of-run report data rendered for the user.
type Summary struct {
	RunID     string
	Platform  string
	Succeeded int
	Failed    int
	Warned    int
	Skipped   int

	// ManualSteps lists non-fatal failures the user must resolve by
	// hand, in the order they occurred.
	ManualSteps []ManualStep
}

// ManualStep is one entry in the "manual steps required" list.
type ManualStep struct {
	Name   string
	Detail string
}

// RenderSummary renders the end-of-run summary. Colorized inside a box
// when color is on, plain text otherwise.
func RenderSummary(s Summary, color bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Provisioning finished on %s (run %s)\n", s.Platform, s.RunID)
	fmt.Fprintf(&b, "%d succeeded, %d failed, %d warnings, %d skipped\n",
		s.Succeeded, s.Failed, s.Warned, s.Skipped)

	if len(s.ManualSteps) > 0 {
		b.WriteString("\nManual steps required:\n")
		for _, m := range s.ManualSteps {
			fmt.Fprintf(&b, "  - %s", m.Name)
			if m.Detail != "" {
				fmt.Fprintf(&b, ": %s", firstLine(m.Detail))
			}
			b.WriteString("\n")
		}
	}

	body := strings.TrimRight(b.String(), "\n")
	if !color {
		return body
	}

	// Re-style the counts line piecewise so each count carries its color.
	lines := strings.Split(body, "\n")
	lines[0] = TitleStyle.Render(lines[0])
	if s.Failed > 0 {
		lines[1] = ErrorStyle.Render(lines[1])
	} else if s.Warned > 0 {
		lines[1] = WarningStyle.Render(lines[1])
	} else {
		lines[1] = SuccessStyle.Render(lines[1])
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// RenderFailureDiagnostic renders the fatal-step diagnostic block:
// step name, exit code, and the full captured output between
// delimiters.
func RenderFailureDiagnostic(step string, exitCode int, output string, color bool) string {
	header := fmt.Sprintf("step %q failed (exit code %d)", step, exitCode)
	if color {
		header = ErrorStyle.Render(header)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(output, "\n"))
	b.WriteString("\n")
	b.WriteString(delimiter)
	return b.String()
}

const delimiter = "----------------------------------------"

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
