package resolve

import (
	"math"
	"testing"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
)

func buildChain(t *testing.T, gaps ...float64) *frame.Assembly {
	t.Helper()
	a := frame.NewAssembly("resolve test")
	if _, _, err := a.AppendNode(frame.NodeCorner290, frame.PanelWindow, 0); err != nil {
		t.Fatal(err)
	}
	for _, gap := range gaps {
		if _, _, err := a.AppendNode(frame.NodeCorner290, frame.PanelWindow, gap); err != nil {
			t.Fatal(err)
		}
	}
	return a
}

func offsets(a *frame.Assembly) []float64 {
	out := make([]float64, len(a.Nodes))
	for i, n := range a.Nodes {
		out[i] = n.OffsetMM
	}
	return out
}

func approxEqual(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			return false
		}
	}
	return true
}

func TestPassRecomputesOffsets(t *testing.T) {
	a := buildChain(t, 1000)

	// Scramble offsets; the pass must restore them from widths+lengths.
	a.Nodes[0].OffsetMM = 123
	a.Nodes[1].OffsetMM = 9999

	res := Pass(a, Options{})

	if want := []float64{0, 1290}; !approxEqual(offsets(a), want) {
		t.Errorf("offsets = %v, want %v", offsets(a), want)
	}
	if len(res.MovedNodes) != 2 {
		t.Errorf("MovedNodes = %v, want both nodes", res.MovedNodes)
	}
	if len(res.Violations) != 0 {
		t.Errorf("Violations = %v, want none", res.Violations)
	}
	if a.LengthMM != 1580 {
		t.Errorf("overall length = %v, want 1580", a.LengthMM)
	}
}

func TestPassInvariantHolds(t *testing.T) {
	a := buildChain(t, 1000, 850, 2400)
	Pass(a, Options{})

	if a.Nodes[0].OffsetMM != 0 {
		t.Errorf("node[0].offset = %v, want 0", a.Nodes[0].OffsetMM)
	}
	intact := a.IntactPanels()
	for i := 1; i < len(a.Nodes); i++ {
		want := a.Nodes[i-1].OffsetMM + a.Nodes[i-1].WidthMM + intact[i-1].LengthMM
		if math.Abs(a.Nodes[i].OffsetMM-want) > 1e-6 {
			t.Errorf("node[%d].offset = %v, want %v", i, a.Nodes[i].OffsetMM, want)
		}
	}
}

func TestPassIsStable(t *testing.T) {
	a := buildChain(t, 1000, 850)
	Pass(a, Options{})

	res := Pass(a, Options{})
	if len(res.MovedNodes) != 0 || len(res.AdjustedPanels) != 0 {
		t.Errorf("second pass moved %v adjusted %v, want nothing", res.MovedNodes, res.AdjustedPanels)
	}
}

func TestPassClampsShortPanel(t *testing.T) {
	a := buildChain(t, 50)

	res := Pass(a, Options{MinPanelLengthMM: 100})

	if got := a.Panels[0].LengthMM; got != 100 {
		t.Errorf("panel length = %v, want clamped 100", got)
	}
	if !res.Clamped() {
		t.Fatal("expected a clamp violation")
	}
	v := res.Violations[0]
	if v.Code != errors.ErrCodeConstraintClamped || v.EntityID != a.Panels[0].ID {
		t.Errorf("violation = %+v", v)
	}
	if len(res.AdjustedPanels) != 1 || res.AdjustedPanels[0] != a.Panels[0].ID {
		t.Errorf("adjusted panels = %v, want clamped panel only", res.AdjustedPanels)
	}
	if want := []float64{0, 390}; !approxEqual(offsets(a), want) {
		t.Errorf("offsets = %v, want %v", offsets(a), want)
	}
}

func TestPassNegativeGapClamps(t *testing.T) {
	a := buildChain(t, 1000)
	a.Panels[0].LengthMM = -500 // overlapping request

	res := Pass(a, Options{})

	if got := a.Panels[0].LengthMM; got != frame.DefaultMinPanelLengthMM {
		t.Errorf("panel length = %v, want %v", got, frame.DefaultMinPanelLengthMM)
	}
	if !res.Clamped() {
		t.Error("expected clamp violation for negative length")
	}
}

func TestPassExcludesDanglingPanel(t *testing.T) {
	a := buildChain(t, 1000, 800)
	deleted := a.Nodes[1].ID
	if err := a.RemoveNode(deleted); err != nil {
		t.Fatal(err)
	}

	res := Pass(a, Options{}) // must not crash

	missing := 0
	for _, v := range res.Violations {
		if v.Code == errors.ErrCodeMissingReference {
			missing++
		}
	}
	if missing != 2 {
		t.Errorf("missing-reference violations = %d, want 2", missing)
	}
	// Remaining nodes keep their spacing rather than collapsing.
	if a.Nodes[1].OffsetMM <= a.Nodes[0].RightEdgeMM() {
		t.Errorf("surviving node collapsed onto predecessor: %v", offsets(a))
	}
}

func TestPassEmptyAssembly(t *testing.T) {
	a := frame.NewAssembly("empty")
	res := Pass(a, Options{})
	if len(res.MovedNodes) != 0 || len(res.Violations) != 0 {
		t.Errorf("empty pass produced %+v", res)
	}
}

func TestMoveNode(t *testing.T) {
	// A(0,290) B(290) panel 1000 puts B at 1290; moving B to 2000
	// rewrites the panel length to 1710.
	a := buildChain(t, 1000)
	b := a.Nodes[1].ID
	Pass(a, Options{})

	res, err := MoveNode(a, b, 2000, Options{})
	if err != nil {
		t.Fatalf("MoveNode: %v", err)
	}

	if got := a.Panels[0].LengthMM; got != 1710 {
		t.Errorf("panel length = %v, want 1710", got)
	}
	if got := a.Nodes[1].OffsetMM; got != 2000 {
		t.Errorf("node offset = %v, want 2000", got)
	}
	if len(res.Violations) != 0 {
		t.Errorf("violations = %v, want none", res.Violations)
	}
	foundPanel := false
	for _, id := range res.AdjustedPanels {
		if id == a.Panels[0].ID {
			foundPanel = true
		}
	}
	if !foundPanel {
		t.Error("adjusted panel not reported")
	}
}

func TestMoveNodeShiftsDownstream(t *testing.T) {
	a := buildChain(t, 1000, 1000)
	Pass(a, Options{})
	before := a.Nodes[2].OffsetMM

	if _, err := MoveNode(a, a.Nodes[1].ID, 2000, Options{}); err != nil {
		t.Fatal(err)
	}

	// Node 1 moved +710; node 2 shifts by the same delta, and its
	// panel keeps its length.
	if got := a.Nodes[2].OffsetMM; math.Abs(got-(before+710)) > 1e-6 {
		t.Errorf("downstream offset = %v, want %v", got, before+710)
	}
	if got := a.Panels[1].LengthMM; got != 1000 {
		t.Errorf("downstream panel length = %v, want 1000", got)
	}
}

func TestMoveNodeClampsOverlap(t *testing.T) {
	a := buildChain(t, 1000)
	Pass(a, Options{})

	// Dragging B left of A's right edge clamps the panel.
	res, err := MoveNode(a, a.Nodes[1].ID, 100, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if got := a.Panels[0].LengthMM; got != frame.DefaultMinPanelLengthMM {
		t.Errorf("panel length = %v, want minimum", got)
	}
	if !res.Clamped() {
		t.Error("expected clamp violation")
	}
	if got := a.Nodes[1].OffsetMM; got != 390 {
		t.Errorf("node offset = %v, want 390", got)
	}
}

func TestMoveFirstNodeAnchored(t *testing.T) {
	a := buildChain(t, 1000)
	Pass(a, Options{})

	res, err := MoveNode(a, a.Nodes[0].ID, 500, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Nodes[0].OffsetMM != 0 {
		t.Errorf("first node offset = %v, want anchored 0", a.Nodes[0].OffsetMM)
	}
	if !res.Clamped() {
		t.Error("expected anchor violation")
	}
}

func TestMoveUnknownNode(t *testing.T) {
	a := buildChain(t, 1000)
	if _, err := MoveNode(a, "ghost", 100, Options{}); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
}
