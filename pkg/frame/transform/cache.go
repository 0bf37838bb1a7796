// Package transform maintains the derived spatial index over an
// assembly: entity ID → resolved transform and chain handle.
//
// The cache is never authoritative. It is a disposable projection of
// the assembly's nodes and panels, invalidated on any mutation and
// rebuilt lazily on the next query. Rebuilding is a pure function of
// assembly state: rebuilding twice from the same state yields an
// identical cache.
package transform

import (
	"sort"

	"github.com/framewright/framewright/pkg/frame"
)

// Vec3 is a position in mm.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform is a spatial position and orientation for one renderable
// entity, ready to hand to a geometry engine.
type Transform struct {
	Position Vec3             `json:"position"`
	Rotation frame.Quaternion `json:"rotation"`
}

// EntityKind distinguishes handle types in the index.
type EntityKind string

const (
	KindNode  EntityKind = "node"
	KindPanel EntityKind = "panel"
)

// Handle locates an entity within the chain without string searching:
// kind plus chain position. Panels index by their from-node position.
type Handle struct {
	Kind       EntityKind `json:"kind"`
	ChainIndex int        `json:"chain_index"`
}

// State is the cache lifecycle state.
type State int

const (
	// StateDirty means the cache needs a rebuild before the next read.
	StateDirty State = iota
	// StateClean means the cache matches the bound assembly.
	StateClean
)

func (s State) String() string {
	if s == StateClean {
		return "clean"
	}
	return "dirty"
}

// Update pairs an entity ID with its resolved transform. A sync pass
// emits one Update per changed entity to the geometry engine.
type Update struct {
	ID        string    `json:"id"`
	Transform Transform `json:"transform"`
}

// Cache is the transform cache for one assembly.
// It is not safe for concurrent use; all access is expected from the
// single editing goroutine (the engine's event model).
type Cache struct {
	assembly   *frame.Assembly
	state      State
	transforms map[string]Transform
	handles    map[string]Handle
}

// NewCache returns an empty, unbound cache.
func NewCache() *Cache {
	return &Cache{
		transforms: map[string]Transform{},
		handles:    map[string]Handle{},
	}
}

// Bind attaches the cache to an assembly and marks it dirty.
func (c *Cache) Bind(a *frame.Assembly) {
	c.assembly = a
	c.Invalidate()
}

// Invalidate marks the cache dirty. Call after any node or panel
// mutation; the next read rebuilds.
func (c *Cache) Invalidate() {
	c.state = StateDirty
}

// State returns the current lifecycle state.
func (c *Cache) State() State {
	return c.state
}

// Len returns the number of cached transforms, rebuilding if needed.
func (c *Cache) Len() int {
	c.ensure()
	return len(c.transforms)
}

// Lookup returns the cached transform for an entity, rebuilding first
// if the cache is dirty. Dangling panels have no transform.
func (c *Cache) Lookup(id string) (Transform, bool) {
	c.ensure()
	t, ok := c.transforms[id]
	return t, ok
}

// HandleFor returns the chain handle for an entity, rebuilding first
// if the cache is dirty.
func (c *Cache) HandleFor(id string) (Handle, bool) {
	c.ensure()
	h, ok := c.handles[id]
	return h, ok
}

// Updates returns the (id, transform) pairs for the given entity IDs,
// sorted by ID. IDs without a transform (removed entities, dangling
// panels) are skipped: they have nothing to place.
func (c *Cache) Updates(ids []string) []Update {
	c.ensure()
	out := make([]Update, 0, len(ids))
	for _, id := range ids {
		if t, ok := c.transforms[id]; ok {
			out = append(out, Update{ID: id, Transform: t})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// All returns every cached update, sorted by ID.
func (c *Cache) All() []Update {
	c.ensure()
	ids := make([]string, 0, len(c.transforms))
	for id := range c.transforms {
		ids = append(ids, id)
	}
	return c.Updates(ids)
}

// ensure rebuilds the cache if dirty. With no assembly bound the
// rebuild is a no-op: the cache stays empty and dirty, which is not an
// error — there is simply nothing to project yet.
func (c *Cache) ensure() {
	if c.state == StateClean {
		return
	}
	if c.assembly == nil {
		return
	}
	c.rebuild()
	c.state = StateClean
}

// rebuild repopulates transforms and handles from assembly state.
// Pure over the assembly: no side effects beyond the two maps.
func (c *Cache) rebuild() {
	a := c.assembly
	c.transforms = make(map[string]Transform, len(a.Nodes)+len(a.Panels))
	c.handles = make(map[string]Handle, len(a.Nodes)+len(a.Panels))

	for i := range a.Nodes {
		n := &a.Nodes[i]
		c.transforms[n.ID] = Transform{
			Position: Vec3{X: n.OffsetMM},
			Rotation: n.Rotation,
		}
		c.handles[n.ID] = Handle{Kind: KindNode, ChainIndex: i}
	}

	for i := range a.Panels {
		p := &a.Panels[i]
		from := a.NodeByID(p.FromNode)
		to := a.NodeByID(p.ToNode)
		if from == nil || to == nil {
			continue // dangling panel: out of the render set
		}
		// Panel sits centred in its gap, raised to the cill.
		c.transforms[p.ID] = Transform{
			Position: Vec3{
				X: from.RightEdgeMM() + p.LengthMM/2,
				Z: from.CillHeightMM,
			},
			Rotation: frame.IdentityRotation(),
		}
		c.handles[p.ID] = Handle{Kind: KindPanel, ChainIndex: a.NodeIndex(p.FromNode)}
	}
}
