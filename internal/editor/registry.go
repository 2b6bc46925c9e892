package editor

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/metrics"
)

// EvictionSchedule runs the idle sweep every ten minutes (cron with seconds field).
const EvictionSchedule = "0 */10 * * * *"

type RegistryConfig struct {
	InitialMarkup  string
	RenderDebounce time.Duration
	IdleTTL        time.Duration
	AfterFunc      AfterFunc
	// GeneratePerMinute and GenerateBurst throttle generations per session.
	// Zero disables throttling.
	GeneratePerMinute int
	GenerateBurst     int
}

// Registry maps editor sessions to their workspaces.
type Registry struct {
	mu    sync.Mutex
	items map[string]*Workspace
	cfg   RegistryConfig
	now   func() time.Time
	cron  *cron.Cron
}

func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.RenderDebounce <= 0 {
		cfg.RenderDebounce = 300 * time.Millisecond
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 2 * time.Hour
	}
	return &Registry{
		items: make(map[string]*Workspace),
		cfg:   cfg,
		now:   time.Now,
	}
}

// Workspace returns the session's workspace, creating it on first use.
func (r *Registry) Workspace(sessionID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.items[sessionID]; ok {
		w.touch()
		return w
	}
	w := newWorkspace(r.cfg.InitialMarkup, r.cfg.RenderDebounce, r.cfg.AfterFunc, r.newLimiter(), r.now)
	r.items[sessionID] = w
	metrics.SetWorkspaces(len(r.items))
	return w
}

func (r *Registry) newLimiter() *rate.Limiter {
	if r.cfg.GeneratePerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := r.cfg.GenerateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(r.cfg.GeneratePerMinute)), burst)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// EvictIdle drops workspaces with no activity for longer than the idle TTL.
// Workspaces with a generation in flight are kept.
func (r *Registry) EvictIdle() int {
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var evicted []*Workspace
	for id, w := range r.items {
		if w.busy() || w.idleSince().After(cutoff) {
			continue
		}
		delete(r.items, id)
		evicted = append(evicted, w)
	}
	metrics.SetWorkspaces(len(r.items))
	r.mu.Unlock()

	for _, w := range evicted {
		w.Close()
	}
	return len(evicted)
}

// StartEviction runs EvictIdle on EvictionSchedule until Stop is called.
func (r *Registry) StartEviction() error {
	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(EvictionSchedule, func() {
		if n := r.EvictIdle(); n > 0 {
			logging.Base().Sugar().Infow("evicted idle editor workspaces", "count", n, "remaining", r.Len())
		}
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	c.Start()
	return nil
}

// Stop halts the eviction job and cancels every pending render.
func (r *Registry) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	items := r.items
	r.items = make(map[string]*Workspace)
	metrics.SetWorkspaces(0)
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	for _, w := range items {
		w.Close()
	}
}
