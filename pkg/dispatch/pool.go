// Package dispatch runs parse and query operations on a bounded worker
// pool and hands back detached results, so cooperative callers never
// share arena memory across goroutines.
//
// Each submitted operation parses its own private Document inside a
// worker, runs the query there, and converts every matched element to
// its owned Record form before completion. Concurrent operations are
// fully independent: the queue is the only shared state. Once a worker
// has started an operation it runs to completion; cancellation applies
// only while the operation is still waiting for queue admission or
// while the caller is waiting on a future.
package dispatch

import (
	"context"
	"runtime"
	"sync"
)

// Pool is a fixed set of worker goroutines fed by a bounded queue.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// NewPool creates a pool with the given worker count and queue depth.
// workers <= 0 means runtime.NumCPU(); queueDepth < 0 means an
// unbuffered queue (submission rendezvouses with a free worker).
func NewPool(workers, queueDepth int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if queueDepth < 0 {
		queueDepth = 0
	}

	p := &Pool{tasks: make(chan func(), queueDepth)}
	for range workers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task()
			}
		}()
	}
	return p
}

// Close stops accepting work and waits for in-flight operations to
// finish. Submitting after Close is a caller bug.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}

// submit enqueues a task, blocking at queue admission. It returns the
// context error if ctx is done before the task is admitted.
func (p *Pool) submit(ctx context.Context, task func()) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- task:
		return nil
	}
}
