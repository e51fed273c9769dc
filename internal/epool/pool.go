// Package epool is the multi-worker execution substrate behind esched.
//
// A [Pool] accepts units of work without ever blocking the submitter,
// and runs them on a fixed set of worker goroutines.
// There is no ordering guarantee between two submissions
// unless the pool has exactly one worker,
// in which case work runs in submission order.
package epool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool runs submitted functions on a fixed number of worker goroutines.
type Pool struct {
	log *slog.Logger

	mu     sync.Mutex
	queue  []func()
	closed bool

	// Buffered with capacity 1.
	// A send means "the queue may be non-empty";
	// workers drain the queue fully before waiting again.
	wake chan struct{}

	eg errgroup.Group

	done chan struct{}
}

// Config is the configuration for a [Pool].
type Config struct {
	// Number of worker goroutines. Must be positive.
	Workers int
}

func (c Config) validate() {
	var panicErrs error

	if c.Workers <= 0 {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("Config.Workers must be positive (got %d)", c.Workers),
		)
	}

	if panicErrs != nil {
		panic(panicErrs)
	}
}

// New returns a running Pool.
// The workers stop when ctx is canceled;
// use [*Pool.Wait] to block until they have all returned.
func New(ctx context.Context, log *slog.Logger, cfg Config) *Pool {
	cfg.validate()

	p := &Pool{
		log: log,

		wake: make(chan struct{}, 1),

		done: make(chan struct{}),
	}

	for i := range cfg.Workers {
		p.eg.Go(func() error {
			p.work(ctx, i)
			return nil
		})
	}

	go p.waitWorkers(ctx)

	return p
}

// Submit enqueues fn to run on a worker goroutine, and returns immediately.
//
// Submit reports false if the pool has already stopped,
// in which case fn will never run.
func (p *Pool) Submit(fn func()) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	p.queue = append(p.queue, fn)
	p.mu.Unlock()

	p.signal()
	return true
}

// Wait blocks until every worker has returned after context cancellation.
func (p *Pool) Wait() {
	<-p.done
}

// Done returns a channel that is closed once every worker has returned.
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

func (p *Pool) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
		// Already signaled; some worker will observe the new item.
	}
}

func (p *Pool) pop() (func(), bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return nil, false
	}

	fn := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]

	if len(p.queue) > 0 {
		// Let another idle worker pick up the remainder concurrently.
		p.signal()
	}

	return fn, true
}

func (p *Pool) work(ctx context.Context, idx int) {
	for {
		// Drain before waiting, so that work submitted
		// before this worker started is not missed.
		for {
			if ctx.Err() != nil {
				break
			}

			fn, ok := p.pop()
			if !ok {
				break
			}
			fn()
		}

		select {
		case <-ctx.Done():
			p.log.Debug(
				"Worker stopping due to context cancellation",
				"worker", idx, "cause", context.Cause(ctx),
			)
			return

		case <-p.wake:
			// Loop back around to drain.
		}
	}
}

func (p *Pool) waitWorkers(ctx context.Context) {
	defer close(p.done)

	<-ctx.Done()
	_ = p.eg.Wait()

	p.mu.Lock()
	p.closed = true
	dropped := len(p.queue)
	p.queue = nil
	p.mu.Unlock()

	if dropped > 0 {
		p.log.Info(
			"Dropped pending work after context cancellation",
			"dropped", dropped, "cause", context.Cause(ctx),
		)
	}
}
