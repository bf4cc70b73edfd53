// Package privilege keeps the elevated-credential cache warm for the
// duration of a provisioning run, so package installs do not re-prompt.
package privilege

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devrig/devrig/pkg/errors"
	"github.com/devrig/devrig/pkg/executor"
	"github.com/devrig/devrig/pkg/logging"
)

// refreshInterval is comfortably shorter than sudo's default
// timestamp_timeout of 5 minutes.
const refreshInterval = 30 * time.Second

// KeepAlive validates sudo credential caching once and then refreshes
// the cached credential in the background until stopped. It is a
// structured task: Start hands out no detached goroutine that outlives
// Stop.
type KeepAlive struct {
	runner    executor.Runner
	interval  time.Duration
	logger    zerolog.Logger
	supported bool

	// sudoOnPath is injectable for tests.
	sudoOnPath func() bool

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a keep-alive backed by the given runner.
func New(runner executor.Runner) *KeepAlive {
	return &KeepAlive{
		runner:     runner,
		interval:   refreshInterval,
		logger:     logging.GetLogger("privilege"),
		sudoOnPath: func() bool { return executor.Available("sudo") },
	}
}

// Start acquires the cached credential and launches the refresh loop.
// When the host does not support credential caching the keep-alive is
// a no-op and the run will see interactive prompts instead. A user who
// cannot authenticate at all is a fatal condition: the run must abort
// before any step executes.
func (k *KeepAlive) Start(ctx context.Context) error {
	if !k.sudoOnPath() {
		k.logger.Info().Msg("sudo not on host, credential keep-alive disabled")
		return nil
	}

	if !k.probe(ctx) {
		// No cached credential yet: prompt once interactively.
		result, err := k.runner.Run(ctx, []string{"sudo", "-v"}, executor.Options{Interactive: true})
		if err != nil {
			return errors.Wrap(err, errors.ErrPrivilege, "failed to run sudo")
		}
		if !result.Succeeded {
			return errors.New(errors.ErrPrivilege, "could not acquire elevated credentials")
		}
		if !k.probe(ctx) {
			// Authenticated but still no cached credential: caching is
			// disabled on this host (timestamp_timeout=0).
			k.logger.Info().Msg("credential caching unsupported, expect repeated prompts")
			return nil
		}
	}

	k.supported = true
	loopCtx, cancel := context.WithCancel(ctx)
	k.cancel = cancel
	k.done = make(chan struct{})

	go k.refreshLoop(loopCtx)
	return nil
}

// Supported reports whether the background refresh is running.
func (k *KeepAlive) Supported() bool {
	return k.supported
}

// Stop cancels the refresh loop and joins it. Safe to call when Start
// was a no-op.
func (k *KeepAlive) Stop() {
	if k.cancel == nil {
		return
	}
	k.cancel()
	<-k.done
	k.cancel = nil
}

func (k *KeepAlive) refreshLoop(ctx context.Context) {
	defer close(k.done)

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := k.runner.Run(ctx, []string{"sudo", "-n", "-v"}, executor.Options{Silent: true}); err != nil {
				k.logger.Warn().Err(err).Msg("Credential refresh failed")
			}
		}
	}
}

// probe checks non-interactively whether a cached credential exists.
func (k *KeepAlive) probe(ctx context.Context) bool {
	result, err := k.runner.Run(ctx, []string{"sudo", "-n", "true"}, executor.Options{Silent: true})
	return err == nil && result.Succeeded
}
