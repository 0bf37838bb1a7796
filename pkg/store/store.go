// Package store provides persistence for assemblies.
//
// Assemblies are keyed by their generated XXXNNN identifier. The Store
// interface has implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files in a config directory, for CLI usage
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage, one document per assembly
//
// Save is an upsert; Load of a missing ID returns ErrNotFound. A store
// failure never touches the caller's in-memory assembly: the engine
// keeps unsaved edits and surfaces the error.
package store

import (
	"context"
	"errors"

	"github.com/framewright/framewright/pkg/frame"
)

// ErrNotFound is returned when no assembly exists for the given ID.
var ErrNotFound = errors.New("assembly not found")

// Store is the interface for assembly persistence backends.
type Store interface {
	// Save persists the assembly, overwriting any existing one with
	// the same ID.
	Save(ctx context.Context, a *frame.Assembly) error

	// Load retrieves an assembly by ID.
	// Returns ErrNotFound if it does not exist.
	Load(ctx context.Context, id string) (*frame.Assembly, error)

	// List returns the stored assembly IDs in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes an assembly. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
