package frame

import (
	"github.com/framewright/framewright/pkg/errors"
)

// Validate checks the assembly's structural invariants. It is the
// single validation point at the system boundary: data passing it can
// be assumed well-formed by the resolve, diff and transform packages.
//
// Checks, in order:
//   - assembly ID has the XXXNNN form
//   - node and panel IDs are unique and non-empty
//   - node types and panel types are known
//   - dimensions are positive (generic widths at least the minimum)
//   - panel endpoints reference existing, distinct nodes
//
// Dangling panel references are deliberately NOT an error here: an
// assembly with a deleted node stays usable and the affected panels
// drop out of resolve passes. Use IntactPanels to see the active set.
func (a *Assembly) Validate() error {
	if !ValidAssemblyID(a.ID) {
		return errors.New(errors.ErrCodeInvalidAssemblyID, "assembly id %q is not of the form XXXNNN", a.ID)
	}

	seen := make(map[string]bool, len(a.Nodes)+len(a.Panels))
	for i := range a.Nodes {
		n := &a.Nodes[i]
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node %d has empty id", i)
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeDuplicateID, "duplicate entity id %s", n.ID)
		}
		seen[n.ID] = true

		if !n.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidNodeType, "node %s: unknown type %q", n.ID, n.Type)
		}
		if w, ok := n.Type.FixedWidth(); ok {
			if n.WidthMM != w {
				return errors.New(errors.ErrCodeInvalidDimension, "node %s: width %.0fmm does not match %s profile (%.0fmm)", n.ID, n.WidthMM, n.Type, w)
			}
		} else if n.WidthMM < MinGenericWidthMM {
			return errors.New(errors.ErrCodeInvalidDimension, "node %s: generic width %.0fmm below minimum %.0fmm", n.ID, n.WidthMM, MinGenericWidthMM)
		}
		if n.DepthMM <= 0 || n.HeightMM <= 0 {
			return errors.New(errors.ErrCodeInvalidDimension, "node %s: non-positive depth or height", n.ID)
		}
		if n.HeadHeightMM < 0 || n.CillHeightMM < 0 || n.HeadHeightMM > n.HeightMM {
			return errors.New(errors.ErrCodeInvalidDimension, "node %s: head/cill heights out of range", n.ID)
		}
	}

	for i := range a.Panels {
		p := &a.Panels[i]
		if p.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "panel %d has empty id", i)
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeDuplicateID, "duplicate entity id %s", p.ID)
		}
		seen[p.ID] = true

		if !p.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidPanelType, "panel %s: unknown type %q", p.ID, p.Type)
		}
		if p.FromNode == p.ToNode {
			return errors.New(errors.ErrCodeInvalidInput, "panel %s: from and to reference the same node", p.ID)
		}
		if p.DivisionsX < 0 || p.DivisionsY < 0 {
			return errors.New(errors.ErrCodeInvalidDimension, "panel %s: negative divisions", p.ID)
		}
	}

	return nil
}

// ChainIntact reports whether the assembly forms a single unbroken
// chain: every adjacent node pair is spanned by exactly one intact
// panel, so panels = nodes - 1.
func (a *Assembly) ChainIntact() bool {
	if len(a.Nodes) < 2 {
		return len(a.Panels) == 0
	}
	intact := a.IntactPanels()
	if len(intact) != len(a.Panels) || len(intact) != len(a.Nodes)-1 {
		return false
	}
	for i, p := range intact {
		if p.FromNode != a.Nodes[i].ID || p.ToNode != a.Nodes[i+1].ID {
			return false
		}
	}
	return true
}
