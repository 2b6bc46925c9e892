package editor

import (
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/metrics"
)

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a one-shot timer. time.AfterFunc in production, a fake clock in tests.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler debounces render requests. It holds at most one pending timer; every
// Schedule call cancels the previous one and restarts the quiescence interval, so only
// the last request within a window fires.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	after    AfterFunc
	pending  Timer
	// seq identifies the armed timer; a callback whose seq is stale lost a race with
	// Stop or a re-arm and must not fire.
	seq uint64

	onClear func()
	onFire  func()
}

func NewScheduler(interval time.Duration, after AfterFunc, onClear, onFire func()) *Scheduler {
	if after == nil {
		after = stdAfterFunc
	}
	if onClear == nil {
		onClear = func() {}
	}
	if onFire == nil {
		onFire = func() {}
	}
	return &Scheduler{interval: interval, after: after, onClear: onClear, onFire: onFire}
}

// Schedule starts a new debounce cycle.
func (s *Scheduler) Schedule() {
	s.onClear()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.pending.Stop()
	}
	s.seq++
	seq := s.seq
	s.pending = s.after(s.interval, func() { s.fire(seq) })
}

func (s *Scheduler) fire(seq uint64) {
	s.mu.Lock()
	if seq != s.seq || s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	metrics.RecordRenderTrigger()
	s.onFire()
}

// Stop cancels the pending trigger, if any.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.seq++
}

// Pending reports whether a trigger is armed.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
