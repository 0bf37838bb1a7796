package frame

import (
	"github.com/framewright/framewright/pkg/errors"
)

// AppendNode adds a node to the right end of the chain. When the chain
// already has nodes, a panel of the given type is created spanning the
// new gap; its length is the requested gap (subject to a later resolve
// pass for clamping). The new node and panel IDs are returned.
func (a *Assembly) AppendNode(typ NodeType, panelType PanelType, gapMM float64) (nodeID, panelID string, err error) {
	if !typ.Valid() {
		return "", "", errors.New(errors.ErrCodeInvalidNodeType, "unknown node type %q", typ)
	}
	n := NewNode(typ)

	if len(a.Nodes) > 0 {
		if !panelType.Valid() {
			return "", "", errors.New(errors.ErrCodeInvalidPanelType, "unknown panel type %q", panelType)
		}
		prev := a.Nodes[len(a.Nodes)-1]
		p := NewPanel(panelType, prev.ID, n.ID, gapMM)
		n.OffsetMM = prev.RightEdgeMM() + gapMM
		a.Panels = append(a.Panels, p)
		panelID = p.ID
	}

	a.Nodes = append(a.Nodes, n)
	a.Touch()
	return n.ID, panelID, nil
}

// RemoveNode deletes the node with the given ID from the chain.
// Panels referencing it are left in place; they drop out of resolve and
// render passes until pruned (see PruneDanglingPanels).
func (a *Assembly) RemoveNode(id string) error {
	idx := a.NodeIndex(id)
	if idx < 0 {
		return errors.New(errors.ErrCodeNodeNotFound, "no node %s", id)
	}
	a.Nodes = append(a.Nodes[:idx], a.Nodes[idx+1:]...)
	a.Touch()
	return nil
}

// RemovePanel deletes the panel with the given ID.
func (a *Assembly) RemovePanel(id string) error {
	for i := range a.Panels {
		if a.Panels[i].ID == id {
			a.Panels = append(a.Panels[:i], a.Panels[i+1:]...)
			a.Touch()
			return nil
		}
	}
	return errors.New(errors.ErrCodePanelNotFound, "no panel %s", id)
}

// PruneDanglingPanels removes every panel whose endpoints no longer
// both resolve to existing nodes. Returns the removed panel IDs.
func (a *Assembly) PruneDanglingPanels() []string {
	var removed []string
	kept := a.Panels[:0]
	for _, p := range a.Panels {
		if a.NodeByID(p.FromNode) != nil && a.NodeByID(p.ToNode) != nil {
			kept = append(kept, p)
		} else {
			removed = append(removed, p.ID)
		}
	}
	a.Panels = kept
	if len(removed) > 0 {
		a.Touch()
	}
	return removed
}

// SetNodeType changes a node's profile. Fixed-width profiles also set
// the catalog width; switching to a generic column keeps the current
// width so the chain does not jump.
func (a *Assembly) SetNodeType(nodeID string, typ NodeType) error {
	if !typ.Valid() {
		return errors.New(errors.ErrCodeInvalidNodeType, "unknown node type %q", typ)
	}
	n := a.NodeByID(nodeID)
	if n == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "no node %s", nodeID)
	}
	n.Type = typ
	if w, ok := typ.FixedWidth(); ok {
		n.WidthMM = w
	}
	a.Touch()
	return nil
}

// SetNodeWidth sets a generic column's width. Fixed-width profiles
// reject the edit; their width is determined by the catalog.
func (a *Assembly) SetNodeWidth(nodeID string, widthMM float64) error {
	n := a.NodeByID(nodeID)
	if n == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "no node %s", nodeID)
	}
	if n.Type != NodeGenericColumn {
		return errors.New(errors.ErrCodeInvalidInput, "width of %s column is fixed by profile", n.Type)
	}
	if widthMM < MinGenericWidthMM {
		return errors.New(errors.ErrCodeInvalidDimension, "width %.0fmm below minimum %.0fmm", widthMM, MinGenericWidthMM)
	}
	n.WidthMM = widthMM
	a.Touch()
	return nil
}

// SetPanelType changes a panel's infill kind.
func (a *Assembly) SetPanelType(panelID string, typ PanelType) error {
	if !typ.Valid() {
		return errors.New(errors.ErrCodeInvalidPanelType, "unknown panel type %q", typ)
	}
	p := a.PanelByID(panelID)
	if p == nil {
		return errors.New(errors.ErrCodePanelNotFound, "no panel %s", panelID)
	}
	p.Type = typ
	a.Touch()
	return nil
}

// SetPanelDivisions sets a panel's glazing division counts.
func (a *Assembly) SetPanelDivisions(panelID string, x, y int) error {
	if x < 1 || y < 1 {
		return errors.New(errors.ErrCodeInvalidDimension, "divisions must be at least 1x1, got %dx%d", x, y)
	}
	p := a.PanelByID(panelID)
	if p == nil {
		return errors.New(errors.ErrCodePanelNotFound, "no panel %s", panelID)
	}
	p.DivisionsX, p.DivisionsY = x, y
	a.Touch()
	return nil
}
