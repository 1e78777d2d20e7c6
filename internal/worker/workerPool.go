package worker

import (
	"sync"
)

type Task interface {
	Execute()
}

// Pool runs tasks on a fixed number of workers. Tasks run inline on the
// worker goroutine, so the pool size is a hard cap on concurrent RPC calls.
type Pool struct {
	mu      sync.Mutex
	size    int
	tasks   chan Task
	kill    chan struct{}
	wg      sync.WaitGroup
	pending sync.WaitGroup
}

func NewPool(speed int, queue int) *Pool {
	pool := &Pool{
		tasks: make(chan Task, queue),
		kill:  make(chan struct{}),
	}
	pool.Resize(speed)
	return pool
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task.Execute()
			p.pending.Done()
		case <-p.kill:
			return
		}
	}
}

func (p *Pool) Resize(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.size < n {
		p.size++
		p.wg.Add(1)
		go p.worker()
	}
	for p.size > n {
		p.size--
		p.kill <- struct{}{}
	}
}

func (p *Pool) Close() {
	close(p.tasks)
}

// Wait blocks until every queued task has finished executing.
func (p *Pool) Wait() {
	p.pending.Wait()
}

func (p *Pool) Exec(task Task) {
	p.pending.Add(1)
	p.tasks <- task
}

// Run is a convenience for plain-function tasks.
type Run func()

func (r Run) Execute() { r() }
