package worker

import "sync"

// Task represents a unit of work executed by the pool.
type Task func()

// DefaultQueueSize 每個 pool 的待處理佇列長度
const DefaultQueueSize = 256

// Pool runs tasks on a fixed number of goroutines.
type Pool interface {
	// Submit queues t, blocking while the queue is full.
	// It returns false once the pool has been stopped.
	Submit(Task) bool
	// TrySubmit queues t without blocking. It returns false when the pool
	// has been stopped or the queue is full.
	TrySubmit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers and a DefaultQueueSize queue. n<=0 defaults to 1.
func NewPool(n int) Pool {
	return NewPoolWithQueue(n, DefaultQueueSize)
}

// NewPoolWithQueue 同 NewPool，但可指定佇列長度；size<0 視為 0（無緩衝）
func NewPoolWithQueue(n, size int) Pool {
	if n <= 0 {
		n = 1
	}
	if size < 0 {
		size = 0
	}
	p := &pool{jobs: make(chan Task, size)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	p.jobs <- t
	return true
}

func (p *pool) TrySubmit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	default:
		return false
	}
}

// Stop drains queued tasks and waits for the workers to exit. Safe to call twice.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
