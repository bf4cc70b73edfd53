package privilege

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rigerrors "github.com/devrig/devrig/pkg/errors"
	"github.com/devrig/devrig/pkg/executor"
	"github.com/devrig/devrig/pkg/testutil"
)

func newTestKeepAlive(fake *testutil.FakeRunner) *KeepAlive {
	k := New(fake)
	k.sudoOnPath = func() bool { return true }
	k.interval = 5 * time.Millisecond
	return k
}

func TestStartWithCachedCredential(t *testing.T) {
	fake := &testutil.FakeRunner{} // sudo -n true succeeds immediately
	k := newTestKeepAlive(fake)

	require.NoError(t, k.Start(context.Background()))
	defer k.Stop()

	assert.True(t, k.Supported())
	assert.Equal(t, []string{"sudo -n true"}, fake.Lines())
}

func TestStartPromptsOnceThenCaches(t *testing.T) {
	probeFailedOnce := false
	fake := &testutil.FakeRunner{}
	fake.Handler = func(argv []string, opts executor.Options) (executor.Result, error) {
		line := testutil.Call{Argv: argv}.Line()
		if line == "sudo -n true" && !probeFailedOnce {
			probeFailedOnce = true
			return executor.Result{ExitCode: 1}, nil
		}
		return executor.Result{Succeeded: true}, nil
	}
	k := newTestKeepAlive(fake)

	require.NoError(t, k.Start(context.Background()))
	defer k.Stop()

	assert.True(t, k.Supported())
	require.Len(t, fake.Calls, 3)
	assert.Equal(t, "sudo -v", fake.Calls[1].Line())
	assert.True(t, fake.Calls[1].Opts.Interactive, "the one prompt must reach the terminal")
}

func TestStartFailsWhenUserCannotAuthenticate(t *testing.T) {
	fake := &testutil.FakeRunner{Results: map[string]executor.Result{
		"sudo -n true": {ExitCode: 1},
		"sudo -v":      {ExitCode: 1}, // wrong password three times
	}}
	k := newTestKeepAlive(fake)

	err := k.Start(context.Background())
	require.Error(t, err)
	assert.True(t, rigerrors.IsErrorCode(err, rigerrors.ErrPrivilege))
	assert.False(t, k.Supported())
}

func TestStartNoOpWithoutSudo(t *testing.T) {
	fake := &testutil.FakeRunner{}
	k := New(fake)
	k.sudoOnPath = func() bool { return false }

	require.NoError(t, k.Start(context.Background()))
	k.Stop()

	assert.False(t, k.Supported())
	assert.Empty(t, fake.Calls)
}

func TestCachingUnsupportedDegradesToNoOp(t *testing.T) {
	fake := &testutil.FakeRunner{Results: map[string]executor.Result{
		"sudo -n true": {ExitCode: 1}, // never caches, even after sudo -v
	}}
	k := newTestKeepAlive(fake)

	require.NoError(t, k.Start(context.Background()))
	k.Stop()

	assert.False(t, k.Supported())
}

func TestRefreshLoopRunsAndStops(t *testing.T) {
	fake := &testutil.FakeRunner{}
	k := newTestKeepAlive(fake)

	require.NoError(t, k.Start(context.Background()))
	time.Sleep(30 * time.Millisecond)
	k.Stop()

	refreshes := fake.CallsMatching("sudo -n -v")
	assert.Greater(t, refreshes, 0, "refresh loop ticked at least once")

	// Stop joins the loop: no further refreshes afterwards.
	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, refreshes, fake.CallsMatching("sudo -n -v"))
}

func TestStopWithoutStartIsSafe(t *testing.T) {
	k := New(&testutil.FakeRunner{})
	k.Stop()
}
