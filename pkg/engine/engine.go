// Package engine drives interactive editing of one assembly.
//
// A Session is the explicit context object for an edit: it owns the
// assembly, the change-detection snapshot, the transform cache and an
// optional store handle. There is no package-level state; every
// operation goes through a Session.
//
// # Event model
//
// Mutations arrive as discrete commands (node-add, node-drag,
// dimension-edit, type-change, ...). Each command mutates the model and
// reruns the position resolver synchronously, so callers get clamp and
// reference violations back immediately. The expensive tail — diffing
// against the last snapshot, emitting minimal transform updates to the
// geometry applier and saving to the store — is coalesced behind a
// cancel-and-reschedule debounce window so a burst of drags produces a
// single sync pass with only the latest state.
//
// The session is guarded by a mutex because the debounce timer fires on
// its own goroutine; logically there is still a single writer.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/diff"
	"github.com/framewright/framewright/pkg/frame/resolve"
	"github.com/framewright/framewright/pkg/frame/transform"
	"github.com/framewright/framewright/pkg/store"
)

// DefaultDebounce is the edit-coalescing window.
const DefaultDebounce = 250 * time.Millisecond

// Options configures a Session.
type Options struct {
	// MinPanelLengthMM is the resolver clamp floor.
	// Zero means frame.DefaultMinPanelLengthMM.
	MinPanelLengthMM float64

	// Debounce is the coalescing window for sync passes. Zero means
	// synchronous: every command syncs before returning. Negative
	// means DefaultDebounce.
	Debounce time.Duration

	// Store, when set, receives an autosave at the end of every sync
	// pass. Save failures keep the session dirty and never touch the
	// in-memory assembly.
	Store store.Store

	// Applier, when set, receives minimal transform updates after each
	// sync pass.
	Applier Applier

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Session is an edit session over a single assembly.
type Session struct {
	mu sync.Mutex

	assembly *frame.Assembly
	snapshot diff.Snapshot
	cache    *transform.Cache

	st      store.Store
	applier Applier
	logger  *log.Logger

	resolveOpts resolve.Options
	debounced   func(func())
	syncNow     bool // Debounce == 0: sync inside every command
	dirty       bool

	lastSync SyncResult
}

// NewSession creates a session around an existing assembly.
// The assembly is resolved once so the session starts consistent, and
// the initial snapshot is taken from that resolved state.
func NewSession(a *frame.Assembly, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	window := opts.Debounce
	if window < 0 {
		window = DefaultDebounce
	}

	s := &Session{
		assembly:    a,
		cache:       transform.NewCache(),
		st:          opts.Store,
		applier:     opts.Applier,
		logger:      logger,
		resolveOpts: resolve.Options{MinPanelLengthMM: opts.MinPanelLengthMM},
		syncNow:     window == 0,
	}
	if !s.syncNow {
		s.debounced = debounce.New(window)
	}

	resolve.Pass(a, s.resolveOpts)
	s.cache.Bind(a)
	s.snapshot = diff.Take(a)
	return s
}

// LoadSession loads an assembly from the store and opens a session on it.
func LoadSession(ctx context.Context, st store.Store, id string, opts Options) (*Session, error) {
	a, err := st.Load(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.New(errors.ErrCodeAssemblyNotFound, "no assembly %s", id)
		}
		return nil, err
	}
	if opts.Store == nil {
		opts.Store = st
	}
	return NewSession(a, opts), nil
}

// Assembly returns a deep copy of the current assembly state.
// The session's own copy is only mutated through commands.
func (s *Session) Assembly() *frame.Assembly {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assembly.Clone()
}

// Dirty reports whether edits are awaiting a sync pass.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// LastSync returns the result of the most recent sync pass.
func (s *Session) LastSync() SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// Close flushes any pending edits.
func (s *Session) Close(ctx context.Context) error {
	_, err := s.Flush(ctx)
	return err
}

// markDirty flags pending work and schedules the coalesced sync.
// Callers hold s.mu; the debounce callback takes it again.
func (s *Session) markDirty() {
	s.cache.Invalidate()
	s.dirty = true
	if s.syncNow || s.debounced == nil {
		return
	}
	s.debounced(func() {
		if _, err := s.Flush(context.Background()); err != nil {
			s.logger.Error("debounced sync failed", "err", err)
		}
	})
}

// finishCommand runs the per-command tail under s.mu: synchronous sync
// when the session was created with a zero debounce window.
func (s *Session) finishCommand(ctx context.Context) error {
	if s.syncNow {
		_, err := s.syncLocked(ctx)
		return err
	}
	return nil
}
