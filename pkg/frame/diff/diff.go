// Package diff detects which entities of an assembly changed between
// edits.
//
// Each node and panel is reduced to a structural hash of its mutable
// fields. Diffing the current assembly against a cached Snapshot yields
// the minimal set of changed IDs, letting callers update only the
// affected geometry instead of rebuilding everything.
//
// The hash is xxhash64: fast and non-cryptographic. A collision can at
// worst suppress nothing — absent or differing hashes always mark an
// entity changed, so there are no false negatives; a colliding update
// would be a false negative only if two different field sets hashed
// identically, which is accepted for this use.
package diff

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/framewright/framewright/pkg/frame"
)

// Snapshot maps entity ID to the structural hash taken at a point in
// time. Snapshots are cheap value maps; take one after every sync and
// diff against it on the next.
type Snapshot map[string]uint64

// Take computes a snapshot of every node and panel in the assembly.
func Take(a *frame.Assembly) Snapshot {
	s := make(Snapshot, len(a.Nodes)+len(a.Panels))
	for i := range a.Nodes {
		s[a.Nodes[i].ID] = HashNode(&a.Nodes[i])
	}
	for i := range a.Panels {
		s[a.Panels[i].ID] = HashPanel(&a.Panels[i])
	}
	return s
}

// Changes is the minimal update set produced by a diff.
// All slices are sorted for deterministic output.
type Changes struct {
	// Changed holds IDs present in both states whose hash differs.
	Changed []string `json:"changed,omitempty"`
	// Added holds IDs absent from the snapshot.
	Added []string `json:"added,omitempty"`
	// Removed holds snapshot IDs no longer present in the assembly.
	Removed []string `json:"removed,omitempty"`
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Changed) == 0 && len(c.Added) == 0 && len(c.Removed) == 0
}

// Touched returns the IDs needing a geometry update: changed plus
// added, sorted.
func (c Changes) Touched() []string {
	out := make([]string, 0, len(c.Changed)+len(c.Added))
	out = append(out, c.Changed...)
	out = append(out, c.Added...)
	slices.Sort(out)
	return out
}

// Diff compares the assembly's current state against a previous
// snapshot. A nil snapshot marks everything added. The comparison is
// order-agnostic: reordering slices without changing fields yields no
// changes.
func Diff(a *frame.Assembly, prev Snapshot) Changes {
	cur := Take(a)

	var c Changes
	for id, h := range cur {
		old, ok := prev[id]
		switch {
		case !ok:
			c.Added = append(c.Added, id)
		case old != h:
			c.Changed = append(c.Changed, id)
		}
	}
	for id := range prev {
		if _, ok := cur[id]; !ok {
			c.Removed = append(c.Removed, id)
		}
	}

	slices.Sort(c.Changed)
	slices.Sort(c.Added)
	slices.Sort(c.Removed)
	return c
}

// =============================================================================
// Structural Hashing
// =============================================================================

// HashNode computes the structural hash of a node's mutable fields.
func HashNode(n *frame.Node) uint64 {
	d := xxhash.New()
	writeString(d, string(n.Type))
	writeFloat(d, n.OffsetMM)
	writeFloat(d, n.WidthMM)
	writeFloat(d, n.DepthMM)
	writeFloat(d, n.HeightMM)
	writeFloat(d, n.HeadHeightMM)
	writeFloat(d, n.CillHeightMM)
	writeFloat(d, n.Rotation.X)
	writeFloat(d, n.Rotation.Y)
	writeFloat(d, n.Rotation.Z)
	writeFloat(d, n.Rotation.W)
	return d.Sum64()
}

// HashPanel computes the structural hash of a panel's mutable fields.
// Endpoint references count as mutable: rewiring a panel is a change.
func HashPanel(p *frame.Panel) uint64 {
	d := xxhash.New()
	writeString(d, p.FromNode)
	writeString(d, p.ToNode)
	writeString(d, string(p.Type))
	writeFloat(d, p.LengthMM)
	writeInt(d, p.DivisionsX)
	writeInt(d, p.DivisionsY)
	return d.Sum64()
}

// writeString writes a length-prefixed string so adjacent fields
// cannot alias each other.
func writeString(d *xxhash.Digest, s string) {
	writeInt(d, len(s))
	_, _ = d.WriteString(s)
}

func writeFloat(d *xxhash.Digest, f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, _ = d.Write(buf[:])
}

func writeInt(d *xxhash.Digest, i int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	_, _ = d.Write(buf[:])
}
