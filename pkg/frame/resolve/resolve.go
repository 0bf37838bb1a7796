// Package resolve recomputes node positions and panel lengths for a
// framework chain.
//
// The resolver is a single left-to-right pass, not a relaxing solver:
// node[0] sits at offset 0 and every subsequent offset is
//
//	node[i].offset = node[i-1].offset + node[i-1].width + panel[i-1].length
//
// Moving a node rewrites the length of the panel feeding into it, and
// that length is immediately reused to reposition everything downstream,
// so one pass converges in O(n).
//
// Constraint handling is recoverable by design: sub-minimum or negative
// panel lengths clamp to the configured minimum and are reported as
// violations, and panels whose endpoints no longer exist simply drop out
// of the pass. The resolver never fails on an ill-shaped chain.
package resolve

import (
	"math"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
)

// eps is the rounding tolerance for offset comparisons in mm.
const eps = 1e-6

// Options configures a resolve pass.
type Options struct {
	// MinPanelLengthMM is the clamp floor for derived panel lengths.
	// Zero means frame.DefaultMinPanelLengthMM.
	MinPanelLengthMM float64
}

func (o Options) minLength() float64 {
	if o.MinPanelLengthMM > 0 {
		return o.MinPanelLengthMM
	}
	return frame.DefaultMinPanelLengthMM
}

// Violation records a recoverable constraint outcome from a pass.
type Violation struct {
	Code     errors.Code `json:"code"`
	EntityID string      `json:"entity_id"`
	Detail   string      `json:"detail"`
}

// Result reports what a resolve pass changed.
type Result struct {
	// MovedNodes are node IDs whose offset changed beyond tolerance.
	MovedNodes []string `json:"moved_nodes,omitempty"`
	// AdjustedPanels are panel IDs whose length was rewritten: by the
	// minimum-length clamp in Pass, or by MoveNode repositioning the
	// inbound panel.
	AdjustedPanels []string `json:"adjusted_panels,omitempty"`
	// Violations are the recoverable constraint outcomes, in pass order.
	Violations []Violation `json:"violations,omitempty"`
}

// Clamped reports whether any panel length was clamped during the pass.
func (r Result) Clamped() bool {
	for _, v := range r.Violations {
		if v.Code == errors.ErrCodeConstraintClamped {
			return true
		}
	}
	return false
}

// Pass recomputes all node offsets left-to-right in place.
//
// Intact panel lengths are authoritative inputs (clamped to the
// minimum); gaps with no surviving panel keep their current spacing.
// Dangling panels are reported with a MISSING_REFERENCE violation and
// take no part in the pass.
func Pass(a *frame.Assembly, opts Options) Result {
	var res Result
	if len(a.Nodes) == 0 {
		return res
	}

	minLen := opts.minLength()

	// Index intact panels by their from-node; report the rest.
	byFrom := make(map[string]*frame.Panel, len(a.Panels))
	for i := range a.Panels {
		p := &a.Panels[i]
		if a.NodeByID(p.FromNode) == nil || a.NodeByID(p.ToNode) == nil {
			res.Violations = append(res.Violations, Violation{
				Code:     errors.ErrCodeMissingReference,
				EntityID: p.ID,
				Detail:   "panel references a deleted node; excluded from pass",
			})
			continue
		}
		byFrom[p.FromNode] = p
	}

	setOffset := func(n *frame.Node, offset float64) {
		if math.Abs(n.OffsetMM-offset) > eps {
			res.MovedNodes = append(res.MovedNodes, n.ID)
		}
		n.OffsetMM = offset
	}

	setOffset(&a.Nodes[0], 0)
	for i := 1; i < len(a.Nodes); i++ {
		prev := &a.Nodes[i-1]
		cur := &a.Nodes[i]

		gap := cur.OffsetMM - prev.RightEdgeMM() // fallback: keep spacing
		if p, ok := byFrom[prev.ID]; ok && p.ToNode == cur.ID {
			length := p.LengthMM
			if length < minLen {
				res.Violations = append(res.Violations, Violation{
					Code:     errors.ErrCodeConstraintClamped,
					EntityID: p.ID,
					Detail:   "panel length below minimum; clamped",
				})
				length = minLen
			}
			if math.Abs(p.LengthMM-length) > eps {
				res.AdjustedPanels = append(res.AdjustedPanels, p.ID)
			}
			p.LengthMM = length
			gap = length
		} else if gap < 0 {
			gap = 0
		}

		setOffset(cur, prev.RightEdgeMM()+gap)
	}

	a.LengthMM = a.OverallLengthMM()
	return res
}

// MoveNode repositions one node to a target left-edge offset and reruns
// the pass. The panel feeding into the moved node absorbs the change:
//
//	length = max(min, target − (from.offset + from.width))
//
// Panels left of the moved node keep their lengths; everything
// downstream shifts by the same delta. Sub-minimum targets clamp and
// are reported, not rejected.
//
// The first node is anchored at offset 0; moving it records a clamp
// violation and changes nothing.
func MoveNode(a *frame.Assembly, nodeID string, targetOffsetMM float64, opts Options) (Result, error) {
	idx := a.NodeIndex(nodeID)
	if idx < 0 {
		return Result{}, errors.New(errors.ErrCodeNodeNotFound, "no node %s", nodeID)
	}

	if idx == 0 {
		res := Pass(a, opts)
		if math.Abs(targetOffsetMM) > eps {
			res.Violations = append(res.Violations, Violation{
				Code:     errors.ErrCodeConstraintClamped,
				EntityID: nodeID,
				Detail:   "first node is anchored at offset 0",
			})
		}
		return res, nil
	}

	prev := &a.Nodes[idx-1]
	var clamped *Violation
	var adjusted string

	// Rewrite the inbound panel length from the requested position.
	for i := range a.Panels {
		p := &a.Panels[i]
		if p.FromNode != prev.ID || p.ToNode != nodeID {
			continue
		}
		length := targetOffsetMM - prev.RightEdgeMM()
		if minLen := opts.minLength(); length < minLen {
			clamped = &Violation{
				Code:     errors.ErrCodeConstraintClamped,
				EntityID: p.ID,
				Detail:   "requested position would give sub-minimum panel; clamped",
			}
			length = minLen
		}
		if math.Abs(p.LengthMM-length) > eps {
			adjusted = p.ID
		}
		p.LengthMM = length
		break
	}

	res := Pass(a, opts)
	if adjusted != "" {
		res.AdjustedPanels = append(res.AdjustedPanels, adjusted)
	}
	if clamped != nil {
		res.Violations = append(res.Violations, *clamped)
	}
	return res, nil
}
