package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleStepProtocol(t *testing.T) {
	tests := []struct {
		name   string
		finish func(c *Console)
		want   string
	}{
		{"success", (*Console).StepOK, "[INFO] install packages... [OK]\n"},
		{"failure", (*Console).StepFailed, "[INFO] install packages... [FAILED]\n"},
		{"warning", (*Console).StepWarned, "[INFO] install packages... [WARN]\n"},
		{"skipped", (*Console).StepSkipped, "[INFO] install packages... [SKIPPED]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewConsoleWriter(&buf)
			c.StepStart("install packages")
			tt.finish(c)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderSummaryPlain(t *testing.T) {
	out := RenderSummary(Summary{
		RunID:     "f81d4fae-7dec-11d0-a765-00a0c91e6bf6",
		Platform:  "ubuntu 24.4 \"noble\" (amd64)",
		Succeeded: 5,
		Failed:    1,
		Skipped:   0,
		Warned:    0,
		ManualSteps: []ManualStep{
			{Name: "krew plugins", Detail: "plugin ctx failed\nsecond line ignored"},
		},
	}, false)

	assert.Contains(t, out, "5 succeeded, 1 failed")
	assert.Contains(t, out, "Manual steps required:")
	assert.Contains(t, out, "krew plugins: plugin ctx failed")
	assert.NotContains(t, out, "second line ignored")
}

func TestRenderSummaryNoManualSection(t *testing.T) {
	out := RenderSummary(Summary{RunID: "id", Platform: "fedora", Succeeded: 3}, false)
	assert.NotContains(t, out, "Manual steps required")
}

func TestRenderFailureDiagnostic(t *testing.T) {
	out := RenderFailureDiagnostic("clone dotfiles", 128, "fatal: repository not found\n", false)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], `step "clone dotfiles" failed (exit code 128)`)
	assert.Equal(t, delimiter, lines[1])
	assert.Equal(t, "fatal: repository not found", lines[2])
	assert.Equal(t, delimiter, lines[3])
}

func TestConsoleColorFollowsConstruction(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, NewConsoleWriter(&buf).Color(), "test consoles never style")

	colored := &Console{out: &buf, color: true}
	assert.True(t, colored.Color())

	// A colored console's diagnostic rendering takes the same flag.
	rendered := RenderFailureDiagnostic("dotfiles", 1, "boom", colored.Color())
	assert.Contains(t, rendered, "boom")
}
