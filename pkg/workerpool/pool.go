// Package workerpool runs background work on a fixed set of goroutines.
//
// Submit never blocks: when every worker is busy and the buffer is full it
// returns ErrPoolFull and the caller decides whether the work can be skipped.
// The catalog cache uses this to refill list entries off the request path.
package workerpool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/mayorista/pkg/logger"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
)

var (
	ErrPoolFull   = errors.New("workerpool: pool is full")
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

// Pool is a bounded goroutine pool.
type Pool struct {
	name string

	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
}

// New starts size workers. The task buffer holds twice the worker count.
func New(name string, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		name:  name,
		tasks: make(chan func(), size*2),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting work and waits for queued tasks to finish.
// Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			metrics.WorkerPanics.WithLabelValues(p.name).Inc()
			logger.Error("workerpool: task panicked", "pool", p.name, "panic", fmt.Sprint(r))
		}
	}()
	task()
}
