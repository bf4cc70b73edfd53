package runner

import "fmt"

// Outcome is the terminal state of one step.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
	Warned    Outcome = "warned"
	Skipped   Outcome = "skipped"
)

// Record is one entry in the run's audit trail. The ordered sequence
// of records is the run's result; it only grows while a run is in
// flight.
type Record struct {
	Name    string
	Outcome Outcome
	Detail  string
}

// StepResult is what a step function reports back.
type StepResult struct {
	Outcome Outcome
	Detail  string

	// ExitCode of the decisive failing command, for the fatal
	// diagnostic block. Zero when not applicable.
	ExitCode int
}

// Success is the plain successful result.
func Success() StepResult {
	return StepResult{Outcome: Succeeded}
}

// Skip marks a step as already satisfied.
func Skip(format string, args ...interface{}) StepResult {
	return StepResult{Outcome: Skipped, Detail: fmt.Sprintf(format, args...)}
}

// Warn marks a step as completed with a caveat.
func Warn(format string, args ...interface{}) StepResult {
	return StepResult{Outcome: Warned, Detail: fmt.Sprintf(format, args...)}
}

// Fail marks a step as failed with diagnostic detail.
func Fail(detail string, exitCode int) StepResult {
	return StepResult{Outcome: Failed, Detail: detail, ExitCode: exitCode}
}

// Failf marks a step as failed with a formatted message.
func Failf(format string, args ...interface{}) StepResult {
	return StepResult{Outcome: Failed, Detail: fmt.Sprintf(format, args...)}
}
