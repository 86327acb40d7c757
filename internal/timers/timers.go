// Package timers keeps at most one delay in flight. Scheduling a new delay
// supersedes the previous one; Stop discards it.
package timers

import (
	"sync"
	"time"
)

type Runner struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   int
}

func New() *Runner {
	return &Runner{}
}

// Schedule runs fn after d, replacing any pending delay. fn never fires for a
// superseded or stopped delay.
func (r *Runner) Schedule(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.gen++
	gen := r.gen
	r.timer = time.AfterFunc(d, func() {
		r.mu.Lock()
		live := r.gen == gen
		r.mu.Unlock()
		if live {
			fn()
		}
	})
}

// Stop cancels the pending delay, if any.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.gen++
}
