package batch

import "sync"

// Task is a unit of work submitted to an Executor.
type Task func() (any, error)

// Future is a handle to a submitted task.
type Future interface {
	// Done reports whether the task has completed.
	Done() bool
	// Result blocks until the task completes and returns its outcome.
	// Result may be called more than once; every call returns the same
	// values.
	Result() (any, error)
}

// Executor dispatches task execution. Implementations decide where tasks
// run: a goroutine pool, a remote cluster, or inline on the caller.
type Executor interface {
	Submit(Task) Future
}

// outcome is the terminal state of a task.
type outcome struct {
	value any
	err   error
}

// future is the channel-backed Future used by the built-in executors.
type future struct {
	done chan struct{}
	once sync.Once
	res  outcome
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func (f *future) complete(value any, err error) {
	f.once.Do(func() {
		f.res = outcome{value: value, err: err}
		close(f.done)
	})
}

func (f *future) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *future) Result() (any, error) {
	<-f.done
	return f.res.value, f.res.err
}

// Pool is an Executor backed by a fixed number of worker goroutines.
// Submit never blocks: tasks queue on an internal channel until a worker
// picks them up. The zero value is not usable; create pools with [NewPool].
type Pool struct {
	jobs      chan poolJob
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type poolJob struct {
	task Task
	fut  *future
}

// NewPool creates a pool with the given number of workers. A worker count
// below one is raised to one.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{jobs: make(chan poolJob, workers*2)}
	for range workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		v, err := j.task()
		j.fut.complete(v, err)
	}
}

// Submit schedules the task on the pool and returns its Future.
func (p *Pool) Submit(task Task) Future {
	fut := newFuture()
	select {
	case p.jobs <- poolJob{task: task, fut: fut}:
	default:
		// Queue is full; hand off from a fresh goroutine so Submit
		// never blocks the submitting loop.
		go func() { p.jobs <- poolJob{task: task, fut: fut} }()
	}
	return fut
}

// Close shuts the pool down after all queued tasks finish. Submit must not
// be called after Close.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
		p.wg.Wait()
	})
}

// Ensure Pool implements Executor.
var _ Executor = (*Pool)(nil)
