package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(clock *fakeClock) *Registry {
	r := NewRegistry(RegistryConfig{
		InitialMarkup:  "graph TD\n    A --> B",
		RenderDebounce: debounce,
		IdleTTL:        time.Hour,
		AfterFunc:      clock.AfterFunc,
	})
	r.now = clock.Now
	return r
}

func TestRegistry_WorkspacePerSession(t *testing.T) {
	clock := newFakeClock()
	r := newTestRegistry(clock)

	a := r.Workspace("a")
	assert.Same(t, a, r.Workspace("a"))
	assert.NotSame(t, a, r.Workspace("b"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "graph TD\n    A --> B", a.Markup())
}

func TestRegistry_EvictIdle(t *testing.T) {
	clock := newFakeClock()
	r := newTestRegistry(clock)

	idle := r.Workspace("idle")
	busy := r.Workspace("busy")
	require.True(t, busy.BeginGeneration())
	idle.SetMarkup("graph LR")

	clock.Advance(30 * time.Minute)
	r.Workspace("active")

	clock.Advance(45 * time.Minute)
	assert.Equal(t, 1, r.EvictIdle())
	assert.Equal(t, 2, r.Len())

	// the evicted session starts over
	fresh := r.Workspace("idle")
	assert.NotSame(t, idle, fresh)
	assert.Equal(t, "graph TD\n    A --> B", fresh.Markup())
}

func TestRegistry_EvictionStopsPendingRender(t *testing.T) {
	clock := newFakeClock()
	r := newTestRegistry(clock)

	w := r.Workspace("s")
	w.SetMarkup("graph LR")
	clock.now = clock.now.Add(2 * time.Hour)

	assert.Equal(t, 1, r.EvictIdle())
	assert.False(t, w.sched.Pending())
}

func TestRegistry_StartAndStop(t *testing.T) {
	r := NewRegistry(RegistryConfig{InitialMarkup: "graph TD"})
	require.NoError(t, r.StartEviction())
	r.Workspace("s")
	r.Stop()
	assert.Equal(t, 0, r.Len())
}

func TestWorkspace_HistoryIsCapped(t *testing.T) {
	w := NewWorkspace("graph TD", debounce, newFakeClock().AfterFunc)
	for i := 0; i < MaxHistory+7; i++ {
		w.AppendHistory("user", "p")
	}
	assert.Len(t, w.Snapshot().History, MaxHistory)
}

func TestWorkspace_RenderAndErrorSlot(t *testing.T) {
	clock := newFakeClock()
	w := NewWorkspace("graph TD", debounce, clock.AfterFunc)

	w.SetError("boom")
	assert.Equal(t, "boom", w.Snapshot().Error)

	w.SetMarkup("graph LR")
	st := w.Snapshot()
	assert.Empty(t, st.Error)
	assert.Equal(t, uint64(0), st.RenderRevision)

	clock.Advance(debounce)
	assert.Equal(t, uint64(1), w.Snapshot().RenderRevision)

	w.AppendHistory("user", "x")
	w.Reset("graph TD")
	clock.Advance(debounce)
	st = w.Snapshot()
	assert.Equal(t, "graph TD", st.Markup)
	assert.Empty(t, st.History)
	assert.Equal(t, uint64(2), st.RenderRevision)
}
