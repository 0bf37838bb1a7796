package engine

import (
	"context"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/resolve"
	"github.com/framewright/framewright/pkg/observability"
)

// Op names a mutation command. The HTTP API and TUI speak these.
type Op string

const (
	OpAddNode           Op = "add-node"
	OpDeleteNode        Op = "delete-node"
	OpMoveNode          Op = "move-node"
	OpSetNodeType       Op = "set-node-type"
	OpSetNodeWidth      Op = "set-node-width"
	OpSetNodeDimensions Op = "set-node-dimensions"
	OpSetPanelType      Op = "set-panel-type"
	OpSetPanelDivisions Op = "set-panel-divisions"
	OpPrunePanels       Op = "prune-panels"
	OpRename            Op = "rename"
)

// Command is the serializable mutation envelope consumed from UI event
// sources. Fields are interpreted per Op; unused fields are ignored.
type Command struct {
	Op Op `json:"op"`

	NodeID  string `json:"node_id,omitempty"`
	PanelID string `json:"panel_id,omitempty"`

	NodeType  frame.NodeType  `json:"node_type,omitempty"`
	PanelType frame.PanelType `json:"panel_type,omitempty"`

	OffsetMM float64 `json:"offset_mm,omitempty"`
	WidthMM  float64 `json:"width_mm,omitempty"`
	GapMM    float64 `json:"gap_mm,omitempty"`

	Dimensions *DimensionEdit `json:"dimensions,omitempty"`

	DivisionsX int `json:"divisions_x,omitempty"`
	DivisionsY int `json:"divisions_y,omitempty"`

	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// DimensionEdit carries an optional-field dimension update; nil fields
// are left unchanged.
type DimensionEdit struct {
	DepthMM      *float64 `json:"depth_mm,omitempty"`
	HeightMM     *float64 `json:"height_mm,omitempty"`
	HeadHeightMM *float64 `json:"head_height_mm,omitempty"`
	CillHeightMM *float64 `json:"cill_height_mm,omitempty"`
}

// Outcome reports what a command did. Commands that clamp rather than
// reject surface the clamps here; a non-nil error means the command was
// rejected and the model is unchanged.
type Outcome struct {
	Op         Op                  `json:"op"`
	NodeID     string              `json:"node_id,omitempty"`
	PanelID    string              `json:"panel_id,omitempty"`
	Violations []resolve.Violation `json:"violations,omitempty"`
	Removed    []string            `json:"removed,omitempty"`
}

// Apply dispatches a serialized command to the typed implementation.
func (s *Session) Apply(ctx context.Context, cmd Command) (Outcome, error) {
	switch cmd.Op {
	case OpAddNode:
		return s.AddNode(ctx, cmd.NodeType, cmd.PanelType, cmd.GapMM)
	case OpDeleteNode:
		return s.DeleteNode(ctx, cmd.NodeID)
	case OpMoveNode:
		return s.MoveNode(ctx, cmd.NodeID, cmd.OffsetMM)
	case OpSetNodeType:
		return s.SetNodeType(ctx, cmd.NodeID, cmd.NodeType)
	case OpSetNodeWidth:
		return s.SetNodeWidth(ctx, cmd.NodeID, cmd.WidthMM)
	case OpSetNodeDimensions:
		if cmd.Dimensions == nil {
			return Outcome{}, errors.New(errors.ErrCodeInvalidInput, "set-node-dimensions requires dimensions")
		}
		return s.SetNodeDimensions(ctx, cmd.NodeID, *cmd.Dimensions)
	case OpSetPanelType:
		return s.SetPanelType(ctx, cmd.PanelID, cmd.PanelType)
	case OpSetPanelDivisions:
		return s.SetPanelDivisions(ctx, cmd.PanelID, cmd.DivisionsX, cmd.DivisionsY)
	case OpPrunePanels:
		return s.PrunePanels(ctx)
	case OpRename:
		return s.Rename(ctx, cmd.Name, cmd.Notes)
	default:
		return Outcome{}, errors.New(errors.ErrCodeUnsupported, "unknown command %q", cmd.Op)
	}
}

// command wraps the shared per-command choreography: run the mutation
// under the lock, resolve synchronously, schedule the coalesced sync
// and emit the hook event.
func (s *Session) command(ctx context.Context, op Op, fn func(a *frame.Assembly, out *Outcome) error) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Outcome{Op: op}
	err := fn(s.assembly, &out)
	observability.Session().OnCommand(ctx, s.assembly.ID, string(op), err)
	if err != nil {
		return Outcome{Op: op}, err
	}

	s.markDirty()
	if err := s.finishCommand(ctx); err != nil {
		return out, err
	}
	return out, nil
}

// AddNode appends a column to the chain. With existing nodes, a panel
// of the given type spans the new gap.
func (s *Session) AddNode(ctx context.Context, typ frame.NodeType, panelType frame.PanelType, gapMM float64) (Outcome, error) {
	return s.command(ctx, OpAddNode, func(a *frame.Assembly, out *Outcome) error {
		nodeID, panelID, err := a.AppendNode(typ, panelType, gapMM)
		if err != nil {
			return err
		}
		out.NodeID, out.PanelID = nodeID, panelID
		res := resolve.Pass(a, s.resolveOpts)
		out.Violations = res.Violations
		return nil
	})
}

// DeleteNode removes a column. Panels referencing it drop out of the
// render set but stay in the model until pruned.
func (s *Session) DeleteNode(ctx context.Context, nodeID string) (Outcome, error) {
	return s.command(ctx, OpDeleteNode, func(a *frame.Assembly, out *Outcome) error {
		if err := a.RemoveNode(nodeID); err != nil {
			return err
		}
		out.NodeID = nodeID
		res := resolve.Pass(a, s.resolveOpts)
		out.Violations = res.Violations
		return nil
	})
}

// MoveNode drags a column to a target left-edge offset. Sub-minimum
// gaps clamp and are reported in the outcome, not rejected.
func (s *Session) MoveNode(ctx context.Context, nodeID string, targetOffsetMM float64) (Outcome, error) {
	return s.command(ctx, OpMoveNode, func(a *frame.Assembly, out *Outcome) error {
		res, err := resolve.MoveNode(a, nodeID, targetOffsetMM, s.resolveOpts)
		if err != nil {
			return err
		}
		out.NodeID = nodeID
		out.Violations = res.Violations
		return nil
	})
}

// SetNodeType changes a column's profile.
func (s *Session) SetNodeType(ctx context.Context, nodeID string, typ frame.NodeType) (Outcome, error) {
	return s.command(ctx, OpSetNodeType, func(a *frame.Assembly, out *Outcome) error {
		if err := a.SetNodeType(nodeID, typ); err != nil {
			return err
		}
		out.NodeID = nodeID
		res := resolve.Pass(a, s.resolveOpts)
		out.Violations = res.Violations
		return nil
	})
}

// SetNodeWidth sets a generic column's width.
func (s *Session) SetNodeWidth(ctx context.Context, nodeID string, widthMM float64) (Outcome, error) {
	return s.command(ctx, OpSetNodeWidth, func(a *frame.Assembly, out *Outcome) error {
		if err := a.SetNodeWidth(nodeID, widthMM); err != nil {
			return err
		}
		out.NodeID = nodeID
		res := resolve.Pass(a, s.resolveOpts)
		out.Violations = res.Violations
		return nil
	})
}

// SetNodeDimensions edits a column's depth/height/head/cill; nil fields
// are left unchanged.
func (s *Session) SetNodeDimensions(ctx context.Context, nodeID string, dims DimensionEdit) (Outcome, error) {
	return s.command(ctx, OpSetNodeDimensions, func(a *frame.Assembly, out *Outcome) error {
		n := a.NodeByID(nodeID)
		if n == nil {
			return errors.New(errors.ErrCodeNodeNotFound, "no node %s", nodeID)
		}

		edited := *n
		if dims.DepthMM != nil {
			edited.DepthMM = *dims.DepthMM
		}
		if dims.HeightMM != nil {
			edited.HeightMM = *dims.HeightMM
		}
		if dims.HeadHeightMM != nil {
			edited.HeadHeightMM = *dims.HeadHeightMM
		}
		if dims.CillHeightMM != nil {
			edited.CillHeightMM = *dims.CillHeightMM
		}
		if edited.DepthMM <= 0 || edited.HeightMM <= 0 {
			return errors.New(errors.ErrCodeInvalidDimension, "node %s: non-positive depth or height", nodeID)
		}
		if edited.HeadHeightMM < 0 || edited.CillHeightMM < 0 || edited.HeadHeightMM > edited.HeightMM {
			return errors.New(errors.ErrCodeInvalidDimension, "node %s: head/cill heights out of range", nodeID)
		}

		*n = edited
		a.Touch()
		out.NodeID = nodeID
		res := resolve.Pass(a, s.resolveOpts)
		out.Violations = res.Violations
		return nil
	})
}

// SetPanelType changes a panel's infill kind.
func (s *Session) SetPanelType(ctx context.Context, panelID string, typ frame.PanelType) (Outcome, error) {
	return s.command(ctx, OpSetPanelType, func(a *frame.Assembly, out *Outcome) error {
		if err := a.SetPanelType(panelID, typ); err != nil {
			return err
		}
		out.PanelID = panelID
		return nil
	})
}

// SetPanelDivisions sets a panel's glazing division counts.
func (s *Session) SetPanelDivisions(ctx context.Context, panelID string, x, y int) (Outcome, error) {
	return s.command(ctx, OpSetPanelDivisions, func(a *frame.Assembly, out *Outcome) error {
		if err := a.SetPanelDivisions(panelID, x, y); err != nil {
			return err
		}
		out.PanelID = panelID
		return nil
	})
}

// PrunePanels removes panels whose endpoints no longer exist.
func (s *Session) PrunePanels(ctx context.Context) (Outcome, error) {
	return s.command(ctx, OpPrunePanels, func(a *frame.Assembly, out *Outcome) error {
		out.Removed = a.PruneDanglingPanels()
		return nil
	})
}

// Rename updates the assembly's name and notes. Empty values are left
// unchanged so either can be edited alone.
func (s *Session) Rename(ctx context.Context, name, notes string) (Outcome, error) {
	return s.command(ctx, OpRename, func(a *frame.Assembly, out *Outcome) error {
		if name == "" && notes == "" {
			return errors.New(errors.ErrCodeInvalidInput, "rename requires a name or notes")
		}
		if name != "" {
			a.Name = name
		}
		if notes != "" {
			a.Notes = notes
		}
		a.Touch()
		return nil
	})
}
