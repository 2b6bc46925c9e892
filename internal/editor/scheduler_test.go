package editor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const debounce = 300 * time.Millisecond

func newCountingScheduler(clock *fakeClock) (*Scheduler, *int32, *int32) {
	var fired, cleared int32
	s := NewScheduler(debounce, clock.AfterFunc,
		func() { atomic.AddInt32(&cleared, 1) },
		func() { atomic.AddInt32(&fired, 1) },
	)
	return s, &fired, &cleared
}

func TestScheduler_EditsWithinIntervalFireOnce(t *testing.T) {
	for _, delta := range []time.Duration{0, time.Millisecond, 150 * time.Millisecond, debounce - time.Millisecond} {
		t.Run(delta.String(), func(t *testing.T) {
			clock := newFakeClock()
			s, fired, _ := newCountingScheduler(clock)

			s.Schedule()
			clock.Advance(delta)
			s.Schedule()

			// the trigger is relative to the later edit
			clock.Advance(debounce - time.Millisecond)
			assert.Equal(t, int32(0), atomic.LoadInt32(fired))

			clock.Advance(time.Millisecond)
			assert.Equal(t, int32(1), atomic.LoadInt32(fired))

			clock.Advance(10 * debounce)
			assert.Equal(t, int32(1), atomic.LoadInt32(fired))
		})
	}
}

func TestScheduler_EditsFartherApartFireTwice(t *testing.T) {
	clock := newFakeClock()
	s, fired, _ := newCountingScheduler(clock)

	s.Schedule()
	clock.Advance(debounce + time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(fired))

	s.Schedule()
	clock.Advance(debounce)
	assert.Equal(t, int32(2), atomic.LoadInt32(fired))
}

func TestScheduler_ClearsErrorEachCycle(t *testing.T) {
	clock := newFakeClock()
	s, _, cleared := newCountingScheduler(clock)

	for i := 0; i < 4; i++ {
		s.Schedule()
	}
	assert.Equal(t, int32(4), atomic.LoadInt32(cleared))
}

func TestScheduler_SinglePendingTimer(t *testing.T) {
	clock := newFakeClock()
	s, _, _ := newCountingScheduler(clock)

	for i := 0; i < 10; i++ {
		s.Schedule()
	}

	live := 0
	for _, tm := range clock.timers {
		if !tm.stopped {
			live++
		}
	}
	assert.Equal(t, 1, live)
	assert.True(t, s.Pending())
}

func TestScheduler_Stop(t *testing.T) {
	clock := newFakeClock()
	s, fired, _ := newCountingScheduler(clock)

	s.Schedule()
	s.Stop()
	assert.False(t, s.Pending())

	clock.Advance(2 * debounce)
	assert.Equal(t, int32(0), atomic.LoadInt32(fired))
}

func TestScheduler_StaleCallbackIgnored(t *testing.T) {
	clock := newFakeClock()
	s, fired, _ := newCountingScheduler(clock)

	// a real timer may already be running its callback when Stop is called
	s.Schedule()
	stale := clock.timers[0]
	s.Schedule()
	stale.f()

	assert.Equal(t, int32(0), atomic.LoadInt32(fired))
	clock.Advance(debounce)
	assert.Equal(t, int32(1), atomic.LoadInt32(fired))
}

func TestScheduler_RealTimer(t *testing.T) {
	done := make(chan struct{})
	s := NewScheduler(10*time.Millisecond, nil, nil, func() { close(done) })
	s.Schedule()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("render trigger did not fire")
	}
}
