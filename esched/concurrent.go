package esched

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/gordian-engine/eddy/edispose"
	"github.com/gordian-engine/eddy/internal/epool"
)

// Concurrent is a [Scheduler] backed by a pool of worker goroutines.
//
// Each scheduled unit is independent:
// two units submitted to the same Concurrent may run in either order,
// or at the same time, unless the Concurrent has a single worker.
type Concurrent struct {
	log *slog.Logger

	ctx context.Context

	pool *epool.Pool
}

// ConcurrentConfig is the configuration for a [Concurrent] scheduler.
type ConcurrentConfig struct {
	// Number of worker goroutines.
	// If zero, runtime.GOMAXPROCS(0) is used.
	Workers int
}

// validate panics if there are any illegal settings in the configuration.
func (c ConcurrentConfig) validate() {
	var panicErrs error

	if c.Workers < 0 {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("ConcurrentConfig.Workers must not be negative (got %d)", c.Workers),
		)
	}

	if panicErrs != nil {
		panic(panicErrs)
	}
}

// NewConcurrent returns a running Concurrent scheduler.
//
// The scheduler stops when ctx is canceled.
// Work that has not started by then never runs,
// and periodic units stop firing.
func NewConcurrent(ctx context.Context, log *slog.Logger, cfg ConcurrentConfig) *Concurrent {
	cfg.validate()

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Concurrent{
		log: log,

		ctx: ctx,

		pool: epool.New(ctx, log.With("sched_component", "pool"), epool.Config{
			Workers: workers,
		}),
	}
}

// NewSerial returns a Concurrent scheduler with a single worker.
// Units run one at a time, in the order they were submitted.
func NewSerial(ctx context.Context, log *slog.Logger) *Concurrent {
	return NewConcurrent(ctx, log, ConcurrentConfig{Workers: 1})
}

// Wait blocks until the scheduler's workers have stopped
// following context cancellation.
func (c *Concurrent) Wait() {
	c.pool.Wait()
}

func (c *Concurrent) Now() time.Time {
	return time.Now()
}

func (c *Concurrent) Schedule(action func() edispose.Disposable) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("Concurrent.Schedule"))
	}
	return scheduleNow(c.submit, action)
}

func (c *Concurrent) ScheduleRelative(
	delay time.Duration, action func() edispose.Disposable,
) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("Concurrent.ScheduleRelative"))
	}
	return scheduleRelative(c.submit, delay, action)
}

func (c *Concurrent) SchedulePeriodic(
	initialDelay, period time.Duration, action func(),
) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("Concurrent.SchedulePeriodic"))
	}
	return schedulePeriodic(c.ctx, c.submit, initialDelay, period, action)
}

func (c *Concurrent) submit(fn func()) bool {
	if c.pool.Submit(fn) {
		return true
	}

	c.log.Debug(
		"Dropping scheduled work after scheduler stopped",
		"cause", context.Cause(c.ctx),
	)
	return false
}
