package editor

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MaxHistory bounds the per-session conversation log.
const MaxHistory = 50

type Entry struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// State is a point-in-time copy of a workspace.
type State struct {
	Markup         string  `json:"markup"`
	RenderRevision uint64  `json:"render_revision"`
	Error          string  `json:"error,omitempty"`
	Generating     bool    `json:"generating"`
	History        []Entry `json:"history"`
	CredentialSet  bool    `json:"credential_set"`
}

// Workspace is one session's editor: the current markup, its render trigger and the
// inline error slot shown next to the preview.
type Workspace struct {
	mu           sync.Mutex
	markup       string
	revision     uint64
	errMsg       string
	generating   bool
	history      []Entry
	lastActivity time.Time
	now          func() time.Time

	sched   *Scheduler
	limiter *rate.Limiter
}

// NewWorkspace returns a workspace without generation throttling.
func NewWorkspace(initial string, debounce time.Duration, after AfterFunc) *Workspace {
	return newWorkspace(initial, debounce, after, rate.NewLimiter(rate.Inf, 0), time.Now)
}

func newWorkspace(initial string, debounce time.Duration, after AfterFunc, limiter *rate.Limiter, now func() time.Time) *Workspace {
	w := &Workspace{markup: initial, now: now, lastActivity: now(), limiter: limiter}
	w.sched = NewScheduler(debounce, after, w.clearError, w.bumpRevision)
	return w
}

// allowGeneration takes a token from the session's generation budget.
func (w *Workspace) allowGeneration() bool {
	return w.limiter.AllowN(w.now(), 1)
}

func (w *Workspace) clearError() {
	w.mu.Lock()
	w.errMsg = ""
	w.mu.Unlock()
}

func (w *Workspace) bumpRevision() {
	w.mu.Lock()
	w.revision++
	w.mu.Unlock()
}

func (w *Workspace) Markup() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.markup
}

// SetMarkup replaces the markup and schedules a render. The scheduler runs
// outside the workspace lock because its callbacks take it.
func (w *Workspace) SetMarkup(markup string) {
	w.mu.Lock()
	w.markup = markup
	w.lastActivity = w.now()
	w.mu.Unlock()

	w.sched.Schedule()
}

func (w *Workspace) SetError(msg string) {
	w.mu.Lock()
	w.errMsg = msg
	w.mu.Unlock()
}

// BeginGeneration sets the in-flight flag. It returns false if a generation is
// already running for this workspace.
func (w *Workspace) BeginGeneration() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generating {
		return false
	}
	w.generating = true
	w.lastActivity = w.now()
	return true
}

func (w *Workspace) EndGeneration() {
	w.mu.Lock()
	w.generating = false
	w.lastActivity = w.now()
	w.mu.Unlock()
}

func (w *Workspace) AppendHistory(role, content string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.history = append(w.history, Entry{Role: role, Content: content, At: w.now().UTC()})
	if n := len(w.history); n > MaxHistory {
		w.history = append([]Entry(nil), w.history[n-MaxHistory:]...)
	}
}

// Reset puts the workspace back to initial markup with an empty log.
func (w *Workspace) Reset(initial string) {
	w.mu.Lock()
	w.history = nil
	w.mu.Unlock()

	w.SetMarkup(initial)
}

func (w *Workspace) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	return State{
		Markup:         w.markup,
		RenderRevision: w.revision,
		Error:          w.errMsg,
		Generating:     w.generating,
		History:        append([]Entry{}, w.history...),
	}
}

func (w *Workspace) touch() {
	w.mu.Lock()
	w.lastActivity = w.now()
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActivity
}

func (w *Workspace) busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generating
}

// Close cancels any pending render.
func (w *Workspace) Close() {
	w.sched.Stop()
}
