// Package autocomplete turns raw keystrokes into debounced suggestion
// fetches. A Controller is a small state machine: every keystroke restarts
// the debounce timer, only the last keystroke in a window fetches, and a
// result is applied only if no newer fetch has started since.
package autocomplete

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/conorfabian/streamlinks/internal/lexical"
	"github.com/conorfabian/streamlinks/internal/search"
	"github.com/conorfabian/streamlinks/pkg/models"
)

const DefaultDebounce = 300 * time.Millisecond

type State int

const (
	Idle State = iota
	Pending
	Fetching
	Settled
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Fetching:
		return "fetching"
	case Settled:
		return "settled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for st := Idle; st <= Failed; st++ {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// Fetcher performs one suggestion request.
type Fetcher func(ctx context.Context, req search.Request) ([]models.Suggestion, error)

// Snapshot is an immutable view of the controller state.
type Snapshot struct {
	State       State               `json:"state"`
	Query       string              `json:"query"`
	Scope       search.Scope        `json:"scope"`
	Suggestions []models.Suggestion `json:"suggestions"`
	Error       string              `json:"error,omitempty"`
	// Seq is the sequence number of the fetch that produced Suggestions.
	Seq uint64 `json:"seq"`
}

type Option func(*Controller)

func WithClock(c Clock) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.clock = c
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.debounce = d
		}
	}
}

func WithLimit(n int) Option {
	return func(ctl *Controller) { ctl.limit = n }
}

func WithScope(s search.Scope) Option {
	return func(ctl *Controller) {
		if s != "" {
			ctl.state.Scope = s
		}
	}
}

type Controller struct {
	mu       sync.Mutex
	clock    Clock
	fetch    Fetcher
	debounce time.Duration
	limit    int
	ctx      context.Context
	cancel   context.CancelFunc

	state   Snapshot
	timer   Timer
	gen     uint64 // bumped whenever the pending timer is replaced or cancelled
	waiting bool   // a debounce timer is armed
	seq     uint64 // last fetch started
	current uint64 // fetch whose result may still be applied; 0 = none
	closed  bool

	listeners []func(Snapshot)
	outbox    []Snapshot
	flushing  sync.Mutex

	// ran is called after every fetch completes; tests use it to observe
	// dropped results.
	ran func(seq uint64, applied bool)
}

func New(fetch Fetcher, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		clock:    realClock{},
		fetch:    fetch,
		debounce: DefaultDebounce,
		ctx:      ctx,
		cancel:   cancel,
		state:    Snapshot{State: Idle, Scope: search.ScopeAll},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to receive every state change, in order. fn runs
// outside the controller lock.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Input records a keystroke. Queries shorter than two characters cancel any
// pending fetch and reset to Idle.
func (c *Controller) Input(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Query = query
	if utf8.RuneCountInString(query) < lexical.MinQueryLen {
		c.resetLocked()
	} else {
		c.scheduleLocked()
	}
	c.emitLocked()
	c.mu.Unlock()
	c.flush()
}

// SetScope changes the scope for subsequent fetches and re-runs the current
// query through the debounce window.
func (c *Controller) SetScope(scope search.Scope) {
	c.mu.Lock()
	if c.closed || scope == c.state.Scope {
		c.mu.Unlock()
		return
	}
	c.state.Scope = scope
	if c.state.State != Idle {
		c.scheduleLocked()
	}
	c.emitLocked()
	c.mu.Unlock()
	c.flush()
}

// Select cancels any pending fetch and clears suggestions.
func (c *Controller) Select() {
	c.mu.Lock()
	c.resetLocked()
	c.emitLocked()
	c.mu.Unlock()
	c.flush()
}

// Submit behaves like Select and returns the query that was submitted.
func (c *Controller) Submit() string {
	c.mu.Lock()
	q := strings.TrimSpace(c.state.Query)
	c.resetLocked()
	c.emitLocked()
	c.mu.Unlock()
	c.flush()
	return q
}

// Close stops the timer and discards any in-flight result.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.resetLocked()
	c.mu.Unlock()
	c.cancel()
}

func (c *Controller) scheduleLocked() {
	c.stopTimerLocked()
	c.gen++
	gen := c.gen
	c.waiting = true
	c.state.State = Pending
	c.timer = c.clock.AfterFunc(c.debounce, func() { c.fire(gen) })
}

func (c *Controller) resetLocked() {
	c.stopTimerLocked()
	c.gen++
	c.current = 0
	c.state.State = Idle
	c.state.Suggestions = nil
	c.state.Error = ""
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.waiting = false
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || !c.waiting {
		c.mu.Unlock()
		return
	}
	c.waiting = false
	c.timer = nil
	c.seq++
	seq := c.seq
	c.current = seq
	req := search.Request{
		Query: c.state.Query,
		Scope: c.state.Scope,
		Limit: c.limit,
	}
	c.state.State = Fetching
	c.emitLocked()
	c.mu.Unlock()
	c.flush()

	go c.run(seq, req)
}

func (c *Controller) run(seq uint64, req search.Request) {
	res, err := c.safeFetch(req)

	c.mu.Lock()
	if seq != c.current {
		ran := c.ran
		c.mu.Unlock()
		if ran != nil {
			ran(seq, false)
		}
		return
	}
	if err != nil {
		c.state.Suggestions = nil
		c.state.Error = err.Error()
		c.state.State = Failed
	} else {
		c.state.Suggestions = res
		c.state.Error = ""
		c.state.State = Settled
	}
	c.state.Seq = seq
	if c.waiting {
		c.state.State = Pending
	}
	c.emitLocked()
	ran := c.ran
	c.mu.Unlock()
	c.flush()
	if ran != nil {
		ran(seq, true)
	}
}

func (c *Controller) safeFetch(req search.Request) (res []models.Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return c.fetch(c.ctx, req)
}

func (c *Controller) snapshotLocked() Snapshot {
	s := c.state
	if s.Suggestions == nil {
		s.Suggestions = []models.Suggestion{}
	} else {
		s.Suggestions = append([]models.Suggestion(nil), s.Suggestions...)
	}
	return s
}

func (c *Controller) emitLocked() {
	if len(c.listeners) == 0 {
		return
	}
	c.outbox = append(c.outbox, c.snapshotLocked())
}

// flush delivers queued snapshots in the order they were emitted. Only one
// goroutine delivers at a time; others leave their snapshots for it.
func (c *Controller) flush() {
	for {
		if !c.flushing.TryLock() {
			return
		}
		for {
			c.mu.Lock()
			batch := c.outbox
			c.outbox = nil
			listeners := c.listeners
			c.mu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, s := range batch {
				for _, fn := range listeners {
					fn(s)
				}
			}
		}
		c.flushing.Unlock()

		c.mu.Lock()
		empty := len(c.outbox) == 0
		c.mu.Unlock()
		if empty {
			return
		}
	}
}
