package style

import (
	"fmt"
	"io"
	"os"
)

// Console writes the per-step progress protocol. Each step prints
// exactly one `[INFO] <name>... ` line followed in place by exactly
// one terminal marker once it concludes.
type Console struct {
	out   io.Writer
	color bool
}

// NewConsole returns a console writing to stderr, with color when
// stderr is a TTY and color is not disabled by the environment.
func NewConsole() *Console {
	return &Console{
		out:   os.Stderr,
		color: IsTTY(os.Stderr) && ColorEnabled(),
	}
}

// NewConsoleWriter returns a console for an arbitrary writer, used in
// tests. Color is never applied.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Writer exposes the underlying writer for components that print
// adjacent output, like the executor's failure diagnostics.
func (c *Console) Writer() io.Writer {
	return c.out
}

// Color reports whether this console styles its output, so adjacent
// rendering (summary box, diagnostics) can match.
func (c *Console) Color() bool {
	return c.color
}

func (c *Console) marker(text string, styled func(...interface{}) string) string {
	if c.color {
		return styled(text)
	}
	return text
}

// StepStart announces a step. The line is left open for the closing
// marker.
func (c *Console) StepStart(name string) {
	fmt.Fprintf(c.out, "%s %s... ", c.marker("[INFO]", infoMarker.Sprint), name)
}

// StepOK closes the current step line with a success marker.
func (c *Console) StepOK() {
	fmt.Fprintf(c.out, "%s\n", c.marker("[OK]", okMarker.Sprint))
}

// StepFailed closes the current step line with a failure marker.
func (c *Console) StepFailed() {
	fmt.Fprintf(c.out, "%s\n", c.marker("[FAILED]", failMarker.Sprint))
}

// StepWarned closes the current step line with a warning marker.
func (c *Console) StepWarned() {
	fmt.Fprintf(c.out, "%s\n", c.marker("[WARN]", warnMarker.Sprint))
}

// StepSkipped closes the current step line with a skip marker.
func (c *Console) StepSkipped() {
	fmt.Fprintf(c.out, "%s\n", c.marker("[SKIPPED]", skipMarker.Sprint))
}

// Println writes a plain line outside the step protocol.
func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}
