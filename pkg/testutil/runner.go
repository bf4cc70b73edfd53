// Package testutil provides shared fakes for devrig tests.
package testutil

import (
	"context"
	"strings"

	"github.com/devrig/devrig/pkg/executor"
)

// Call records one invocation of the fake runner.
type Call struct {
	Argv []string
	Opts executor.Options
}

// Line returns the invocation as a single command line.
func (c Call) Line() string {
	return strings.Join(c.Argv, " ")
}

// FakeRunner implements executor.Runner with scripted results. The
// zero value answers every command with success and empty output.
type FakeRunner struct {
	Calls []Call

	// Results maps an exact command line to its result. Commands not
	// listed succeed.
	Results map[string]executor.Result

	// Errors maps an exact command line to a spawn error.
	Errors map[string]error

	// Handler, when set, answers every call and overrides Results and
	// Errors.
	Handler func(argv []string, opts executor.Options) (executor.Result, error)
}

var _ executor.Runner = (*FakeRunner)(nil)

// Run records the call and returns the scripted answer.
func (f *FakeRunner) Run(_ context.Context, argv []string, opts executor.Options) (executor.Result, error) {
	call := Call{Argv: argv, Opts: opts}
	f.Calls = append(f.Calls, call)

	if f.Handler != nil {
		return f.Handler(argv, opts)
	}
	if err, ok := f.Errors[call.Line()]; ok {
		return executor.Result{ExitCode: -1}, err
	}
	if result, ok := f.Results[call.Line()]; ok {
		return result, nil
	}
	return executor.Result{ExitCode: 0, Succeeded: true}, nil
}

// Lines returns every recorded invocation as command lines, in order.
func (f *FakeRunner) Lines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.Line())
	}
	return lines
}

// CallsMatching counts recorded invocations whose command line begins
// with prefix.
func (f *FakeRunner) CallsMatching(prefix string) int {
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Line(), prefix) {
			n++
		}
	}
	return n
}
