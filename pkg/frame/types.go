package frame

import (
	"time"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DefaultMinPanelLengthMM is the minimum resolved panel length in mm.
// Gaps narrower than this are clamped, never rejected (see resolve).
const DefaultMinPanelLengthMM = 100.0

// Default node dimensions in mm for newly created columns.
const (
	DefaultNodeDepthMM  = 290.0
	DefaultNodeHeightMM = 2400.0
	DefaultHeadHeightMM = 2100.0
	DefaultCillHeightMM = 150.0
)

// MinGenericWidthMM is the smallest accepted width for a generic column.
const MinGenericWidthMM = 50.0

// =============================================================================
// NodeType - Column Profiles
// =============================================================================

// NodeType enumerates the supported column profiles.
// Width is fixed by profile for all types except NodeGenericColumn.
type NodeType string

const (
	NodeCorner190     NodeType = "corner-190"
	NodeCorner290     NodeType = "corner-290"
	NodeInline190     NodeType = "inline-190"
	NodeInline290     NodeType = "inline-290"
	NodeGenericColumn NodeType = "generic"
)

// profileWidths maps fixed-width profiles to their width in mm.
var profileWidths = map[NodeType]float64{
	NodeCorner190: 190,
	NodeCorner290: 290,
	NodeInline190: 190,
	NodeInline290: 290,
}

// FixedWidth returns the catalog width for t and true if the profile has
// a fixed width. Generic columns return 0, false.
func (t NodeType) FixedWidth() (float64, bool) {
	w, ok := profileWidths[t]
	return w, ok
}

// Valid reports whether t is a known profile.
func (t NodeType) Valid() bool {
	if t == NodeGenericColumn {
		return true
	}
	_, ok := profileWidths[t]
	return ok
}

// NodeTypes returns all known profiles in a stable order.
func NodeTypes() []NodeType {
	return []NodeType{NodeCorner190, NodeCorner290, NodeInline190, NodeInline290, NodeGenericColumn}
}

// =============================================================================
// PanelType - Infill Kinds
// =============================================================================

// PanelType enumerates the infill kinds that can span a gap.
type PanelType string

const (
	PanelWindow   PanelType = "window"
	PanelDoor     PanelType = "door"
	PanelBlanking PanelType = "blanking"
)

// Valid reports whether t is a known panel type.
func (t PanelType) Valid() bool {
	switch t {
	case PanelWindow, PanelDoor, PanelBlanking:
		return true
	}
	return false
}

// =============================================================================
// Quaternion - Rotation
// =============================================================================

// Quaternion is a rotation in XYZW component order.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IdentityRotation returns the no-rotation quaternion.
func IdentityRotation() Quaternion {
	return Quaternion{W: 1}
}

// IsIdentity reports whether q is the identity rotation.
func (q Quaternion) IsIdentity() bool {
	return q == Quaternion{W: 1}
}

// =============================================================================
// Node - Structural Column
// =============================================================================

// Node is a structural column in the framework chain.
// OffsetMM is the left edge along the run axis, derived by the resolver;
// the first node in an intact chain is always at offset 0.
type Node struct {
	ID           string     `json:"id"`
	Type         NodeType   `json:"type"`
	OffsetMM     float64    `json:"offset_mm"`
	WidthMM      float64    `json:"width_mm"`
	DepthMM      float64    `json:"depth_mm"`
	HeightMM     float64    `json:"height_mm"`
	HeadHeightMM float64    `json:"head_height_mm"`
	CillHeightMM float64    `json:"cill_height_mm"`
	Rotation     Quaternion `json:"rotation"`
}

// RightEdgeMM returns the node's right edge along the run axis.
func (n *Node) RightEdgeMM() float64 {
	return n.OffsetMM + n.WidthMM
}

// NewNode creates a column of the given profile with catalog dimensions.
// Generic columns default to the minimum generic width.
func NewNode(typ NodeType) Node {
	width := MinGenericWidthMM
	if w, ok := typ.FixedWidth(); ok {
		width = w
	}
	return Node{
		ID:           NewEntityID(),
		Type:         typ,
		WidthMM:      width,
		DepthMM:      DefaultNodeDepthMM,
		HeightMM:     DefaultNodeHeightMM,
		HeadHeightMM: DefaultHeadHeightMM,
		CillHeightMM: DefaultCillHeightMM,
		Rotation:     IdentityRotation(),
	}
}

// =============================================================================
// Panel - Infill Element
// =============================================================================

// Panel is an infill element spanning the gap between two adjacent
// nodes. LengthMM is derived from the bounding node positions and is
// never less than the configured minimum after a resolve pass.
type Panel struct {
	ID         string    `json:"id"`
	FromNode   string    `json:"from_node"`
	ToNode     string    `json:"to_node"`
	Type       PanelType `json:"type"`
	LengthMM   float64   `json:"length_mm"`
	DivisionsX int       `json:"divisions_x"`
	DivisionsY int       `json:"divisions_y"`
}

// NewPanel creates a panel of the given type spanning from → to.
func NewPanel(typ PanelType, from, to string, length float64) Panel {
	return Panel{
		ID:         NewEntityID(),
		FromNode:   from,
		ToNode:     to,
		Type:       typ,
		LengthMM:   length,
		DivisionsX: 1,
		DivisionsY: 1,
	}
}

// =============================================================================
// Assembly - One Complete Framework Configuration
// =============================================================================

// Assembly is one complete framework configuration: an ordered chain of
// nodes with panels between them, plus descriptive metadata.
//
// The assembly owns its nodes and panels by value. Derived indexes
// (transform caches, id→handle maps) are rebuildable from Nodes and
// Panels alone and are never stored here.
type Assembly struct {
	ID       string  `json:"id"` // form XXXNNN, e.g. "VFC042"
	Name     string  `json:"name"`
	Notes    string  `json:"notes,omitempty"`
	LengthMM float64 `json:"length_mm"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`

	Nodes  []Node  `json:"nodes"`
	Panels []Panel `json:"panels"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAssembly creates an empty named assembly with a generated ID.
func NewAssembly(name string) *Assembly {
	now := time.Now().UTC()
	return &Assembly{
		ID:        NewAssemblyID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NodeByID returns a pointer to the node with the given ID, or nil.
func (a *Assembly) NodeByID(id string) *Node {
	for i := range a.Nodes {
		if a.Nodes[i].ID == id {
			return &a.Nodes[i]
		}
	}
	return nil
}

// PanelByID returns a pointer to the panel with the given ID, or nil.
func (a *Assembly) PanelByID(id string) *Panel {
	for i := range a.Panels {
		if a.Panels[i].ID == id {
			return &a.Panels[i]
		}
	}
	return nil
}

// NodeIndex returns the chain position of the node with the given ID,
// or -1 if it is not part of the assembly.
func (a *Assembly) NodeIndex(id string) int {
	for i := range a.Nodes {
		if a.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// IntactPanels returns the panels whose endpoints both resolve to
// existing nodes, in chain order. Panels referencing deleted nodes are
// excluded; they remain in the assembly until explicitly removed but do
// not take part in resolve passes or rendering.
func (a *Assembly) IntactPanels() []Panel {
	out := make([]Panel, 0, len(a.Panels))
	for _, p := range a.Panels {
		if a.NodeByID(p.FromNode) != nil && a.NodeByID(p.ToNode) != nil {
			out = append(out, p)
		}
	}
	return out
}

// OverallLengthMM returns the run length from the first node's left
// edge to the last node's right edge. Zero for empty assemblies.
func (a *Assembly) OverallLengthMM() float64 {
	if len(a.Nodes) == 0 {
		return 0
	}
	last := a.Nodes[len(a.Nodes)-1]
	return last.RightEdgeMM() - a.Nodes[0].OffsetMM
}

// Touch updates the modification timestamp.
func (a *Assembly) Touch() {
	a.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy of the assembly.
func (a *Assembly) Clone() *Assembly {
	dup := *a
	dup.Nodes = make([]Node, len(a.Nodes))
	copy(dup.Nodes, a.Nodes)
	dup.Panels = make([]Panel, len(a.Panels))
	copy(dup.Panels, a.Panels)
	return &dup
}
