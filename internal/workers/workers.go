package workers

import (
	"context"
	"sync"

	"github.com/adilgabb/commitgate/internal/logger"
)

// Runner executes deferred tasks on their own goroutines, detached from any
// request context, and guarantees that every scheduled task runs to
// completion before Stop returns. Task panics are recovered and logged so a
// misbehaving enrichment call cannot take the process down.
type Runner struct {
	logger *logger.Logger

	mu      sync.Mutex
	wg      sync.WaitGroup
	stopped bool
}

// NewRunner constructs a Runner that reports task failures to log.
func NewRunner(log *logger.Logger) *Runner {
	return &Runner{logger: log}
}

// Schedule queues task for execution on its own goroutine. The name is used
// for log correlation only. Tasks scheduled after Stop are rejected and
// logged, not run.
func (r *Runner) Schedule(name string, task Task) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		r.logger.Warn().Str("task", name).Msg("task scheduled after runner stop, dropped")
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error().Str("task", name).Any("panic", rec).Msg("background task panicked")
			}
		}()

		if err := task(context.Background()); err != nil {
			r.logger.Err(err).Str("task", name).Msg("background task failed")
			return
		}
		r.logger.Debug().Str("task", name).Msg("background task finished")
	}()
}

// Stop waits for every in-flight task to finish. Further Schedule calls are
// no-ops after Stop returns.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.wg.Wait()
}
