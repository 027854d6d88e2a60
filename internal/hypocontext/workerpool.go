package hypocontext

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed-size pool of goroutines draining a shared task
// queue. It is the lazily-created executor a Context hands to hydration
// and mappings-completion for their per-class tasks (spec §4.D). A single
// shared channel rather than a per-worker deque-and-steal scheduler: the
// teacher's own directory walker (a comparable fan-out-over-items
// problem) uses exactly this shape, and nothing in the retrieved corpus
// implements true work-stealing, so this is the idiomatic Go rendition of
// "work-stealing task executor" rather than a literal deque-stealing
// scheduler.
type WorkerPool struct {
	pending   int64
	tasks     chan func()
	wg        sync.WaitGroup
	closeOnce sync.Once
	done      chan struct{}
}

// NewWorkerPool starts workers goroutines; workers <= 0 means host CPU
// count.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &WorkerPool{
		tasks: make(chan func(), workers*4),
		done:  make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.loop()
	}
	return p
}

func (p *WorkerPool) loop() {
	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task()
		case <-p.done:
			return
		}
	}
}

// Submit enqueues task, blocking only if the queue is full. Submit after
// Shutdown silently drops the task.
func (p *WorkerPool) Submit(task func()) {
	p.wg.Add(1)
	atomic.AddInt64(&p.pending, 1)
	wrapped := func() {
		defer p.wg.Done()
		defer atomic.AddInt64(&p.pending, -1)
		task()
	}
	select {
	case p.tasks <- wrapped:
	case <-p.done:
		atomic.AddInt64(&p.pending, -1)
		p.wg.Done()
	}
}

// Wait blocks until every submitted task has run.
func (p *WorkerPool) Wait() { p.wg.Wait() }

// Pending reports whether any submitted task has not yet completed.
func (p *WorkerPool) Pending() bool {
	return atomic.LoadInt64(&p.pending) > 0
}

// Shutdown stops accepting new work and terminates idle workers. It does
// not wait for in-flight tasks; callers that need that call Wait first.
func (p *WorkerPool) Shutdown() {
	p.closeOnce.Do(func() { close(p.done) })
}

// RunAll submits one task per item and waits for all of them, returning
// the first error encountered (spec §4.E: "the framework waits for all
// futures; the first failure propagates... other in-flight tasks are
// allowed to finish"). wrap, if non-nil, is applied to a per-item error to
// attach identifying context (class/member name) before it is recorded as
// the first failure.
func RunAll[T any](pool *WorkerPool, items []T, fn func(T) error, wrap func(T, error) error) error {
	var once sync.Once
	var firstErr error
	var wg sync.WaitGroup
	wg.Add(len(items))
	for _, item := range items {
		item := item
		pool.Submit(func() {
			defer wg.Done()
			if err := fn(item); err != nil {
				if wrap != nil {
					err = wrap(item, err)
				}
				once.Do(func() { firstErr = err })
			}
		})
	}
	wg.Wait()
	return firstErr
}
