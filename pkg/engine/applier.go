package engine

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/framewright/framewright/pkg/frame/transform"
)

// Applier is the geometry-engine boundary. A sync pass hands it the
// minimal set of transforms to place and the IDs to remove; the engine
// never touches rendering directly.
type Applier interface {
	// ApplyTransforms places or re-places the given entities.
	ApplyTransforms(ctx context.Context, updates []transform.Update) error

	// RemoveEntities drops entities that no longer exist in the model.
	RemoveEntities(ctx context.Context, ids []string) error
}

// NullApplier discards all updates. Used when no geometry engine is
// attached (headless CLI operation).
type NullApplier struct{}

func (NullApplier) ApplyTransforms(context.Context, []transform.Update) error { return nil }
func (NullApplier) RemoveEntities(context.Context, []string) error            { return nil }

var _ Applier = NullApplier{}

// LogApplier logs every update at debug level. Useful for tracing what
// a real geometry engine would receive.
type LogApplier struct {
	Logger *log.Logger
}

func (a LogApplier) ApplyTransforms(_ context.Context, updates []transform.Update) error {
	for _, u := range updates {
		a.Logger.Debug("apply transform",
			"id", u.ID,
			"x", u.Transform.Position.X,
			"z", u.Transform.Position.Z)
	}
	return nil
}

func (a LogApplier) RemoveEntities(_ context.Context, ids []string) error {
	for _, id := range ids {
		a.Logger.Debug("remove entity", "id", id)
	}
	return nil
}

var _ Applier = LogApplier{}
