// Package frame provides the display-refresh cadence the page effects run on.
//
// A Scheduler is cooperative and single-threaded: every frame callback and
// posted task runs on whichever goroutine calls Pump, one after another, so
// the state they touch needs no locking. Only the queues themselves are
// guarded, which lets other goroutines (dialogs, timers) Post work safely.
package frame

import (
	"context"
	"sort"
	"sync"
	"time"
)

// ID identifies a requested frame callback.
type ID uint64

// Scheduler queues frame callbacks and one-shot tasks until the next refresh.
type Scheduler struct {
	mu      sync.Mutex
	nextID  ID
	pending map[ID]func()
	tasks   []func()
	pumping bool
	frames  uint64
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: map[ID]func(){}}
}

// RequestFrame registers fn to run once on the next refresh. Callbacks
// requested while a refresh is being pumped wait for the following one.
func (s *Scheduler) RequestFrame(fn func()) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.pending[s.nextID] = fn
	return s.nextID
}

// CancelFrame drops a requested callback. Unknown or already-run ids are ignored.
func (s *Scheduler) CancelFrame(id ID) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Post queues fn to run at the start of the next refresh, before any frame
// callback of that refresh.
func (s *Scheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, fn)
	s.mu.Unlock()
}

// Pending reports how many frame callbacks are waiting.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Frames reports how many refreshes have been pumped.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Pump runs one refresh: posted tasks first, then the frame callbacks that
// were due when the refresh started, in request order. It returns the number
// of frame callbacks that ran. Re-entrant calls are ignored.
func (s *Scheduler) Pump() int {
	s.mu.Lock()
	if s.pumping {
		s.mu.Unlock()
		return 0
	}
	s.pumping = true
	tasks := s.tasks
	s.tasks = nil
	s.frames++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pumping = false
		s.mu.Unlock()
	}()

	for _, task := range tasks {
		task()
	}

	s.mu.Lock()
	ids := make([]ID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		// A callback earlier in this refresh may have cancelled this one.
		s.mu.Lock()
		fn, ok := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		if !ok {
			continue
		}
		fn()
		ran++
	}
	return ran
}

// Run pumps the scheduler on a fixed interval until ctx is done. It is the
// refresh source for hosts without a display.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Pump()
		}
	}
}
