package engine

import (
	"context"
	"time"

	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/diff"
	"github.com/framewright/framewright/pkg/frame/resolve"
	"github.com/framewright/framewright/pkg/frame/transform"
	"github.com/framewright/framewright/pkg/observability"
)

// SyncResult reports what one coalesced sync pass did.
type SyncResult struct {
	// Changes is the minimal change set against the previous snapshot.
	Changes diff.Changes `json:"changes"`
	// Updates are the transforms handed to the applier, sorted by ID.
	Updates []transform.Update `json:"updates,omitempty"`
	// Violations are the resolver's constraint outcomes for this pass.
	Violations []resolve.Violation `json:"violations,omitempty"`
	// Saved reports whether the autosave reached the store.
	Saved bool `json:"saved"`
}

// Flush runs a sync pass immediately, superseding any pending debounce.
// It is a no-op when the session is not dirty.
func (s *Session) Flush(ctx context.Context) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return s.lastSync, nil
	}
	return s.syncLocked(ctx)
}

// syncLocked is the single sync path: resolve → diff → minimal
// transform updates → applier → snapshot → autosave. Callers hold s.mu.
//
// Store failures leave the session dirty with its in-memory state
// untouched, so no edit is ever lost to a persistence error.
func (s *Session) syncLocked(ctx context.Context) (SyncResult, error) {
	a := s.assembly
	start := time.Now()
	observability.Session().OnSyncStart(ctx, a.ID, len(a.Nodes), len(a.Panels))

	res := resolve.Pass(a, s.resolveOpts)
	changes := diff.Diff(a, s.snapshot)

	out := SyncResult{
		Changes:    changes,
		Violations: res.Violations,
	}

	s.cache.Invalidate()
	out.Updates = s.cache.Updates(changes.Touched())

	if s.applier != nil {
		if err := s.applier.ApplyTransforms(ctx, out.Updates); err != nil {
			s.lastSync = out
			observability.Session().OnSyncComplete(ctx, a.ID, len(changes.Touched()), len(res.Violations), time.Since(start), err)
			return out, err
		}
		if len(changes.Removed) > 0 {
			if err := s.applier.RemoveEntities(ctx, changes.Removed); err != nil {
				s.lastSync = out
				observability.Session().OnSyncComplete(ctx, a.ID, len(changes.Touched()), len(res.Violations), time.Since(start), err)
				return out, err
			}
		}
	}

	s.snapshot = diff.Take(a)

	if s.st != nil {
		if err := s.save(ctx, a); err != nil {
			// Keep dirty: the next pass retries the save.
			s.lastSync = out
			s.logger.Error("autosave failed; edits retained in memory", "assembly", a.ID, "err", err)
			observability.Session().OnSyncComplete(ctx, a.ID, len(changes.Touched()), len(res.Violations), time.Since(start), err)
			return out, err
		}
		out.Saved = true
	}

	s.dirty = false
	s.lastSync = out

	for _, v := range res.Violations {
		s.logger.Warn("constraint violation", "code", v.Code, "entity", v.EntityID, "detail", v.Detail)
	}
	s.logger.Debug("sync pass",
		"assembly", a.ID,
		"changed", len(changes.Changed),
		"added", len(changes.Added),
		"removed", len(changes.Removed),
		"duration", time.Since(start).Round(time.Microsecond))

	observability.Session().OnSyncComplete(ctx, a.ID, len(changes.Touched()), len(res.Violations), time.Since(start), nil)
	return out, nil
}

func (s *Session) save(ctx context.Context, a *frame.Assembly) error {
	start := time.Now()
	err := s.st.Save(ctx, a)
	size := len(a.Nodes) + len(a.Panels)
	observability.StoreEvents().OnSave(ctx, a.ID, size, time.Since(start), err)
	return err
}
