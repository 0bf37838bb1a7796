package elevation

import (
	"strings"
	"testing"

	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/resolve"
)

func buildChain(t *testing.T, n int) *frame.Assembly {
	t.Helper()
	a := frame.NewAssembly("elevation test")
	for i := 0; i < n; i++ {
		if _, _, err := a.AppendNode(frame.NodeCorner290, frame.PanelWindow, 1000); err != nil {
			t.Fatal(err)
		}
	}
	resolve.Pass(a, resolve.Options{})
	return a
}

func TestRenderBasicShape(t *testing.T) {
	a := buildChain(t, 3)

	svg, err := RenderString(a, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(svg, "<svg ") {
		t.Error("output is not an SVG document")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
	// 3 node rects + 2 panel rects
	if got := strings.Count(svg, "<rect "); got != 5 {
		t.Errorf("rect count = %d, want 5", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := buildChain(t, 3)

	first, err := RenderString(a, Options{ShowDimensions: true})
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderString(a, Options{ShowDimensions: true})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("identical input rendered differently")
	}
}

func TestRenderSkipsDanglingPanels(t *testing.T) {
	a := buildChain(t, 2)
	if err := a.RemoveNode(a.Nodes[0].ID); err != nil {
		t.Fatal(err)
	}

	svg, err := RenderString(a, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// One surviving node rect, no panel rect.
	if got := strings.Count(svg, "<rect "); got != 1 {
		t.Errorf("rect count = %d, want 1", got)
	}
}

func TestRenderDivisionGrid(t *testing.T) {
	a := buildChain(t, 2)
	if err := a.SetPanelDivisions(a.Panels[0].ID, 3, 2); err != nil {
		t.Fatal(err)
	}

	svg, err := RenderString(a, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// 2 vertical + 1 horizontal division lines
	if got := strings.Count(svg, "<line "); got != 3 {
		t.Errorf("division lines = %d, want 3", got)
	}
}

func TestRenderDimensionLabels(t *testing.T) {
	a := buildChain(t, 2)

	svg, err := RenderString(a, Options{ShowDimensions: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, ">1000</text>") {
		t.Error("missing panel dimension label")
	}
	if !strings.Contains(svg, ">290</text>") {
		t.Error("missing node dimension label")
	}
}

func TestRenderEscapesName(t *testing.T) {
	a := buildChain(t, 1)
	a.Name = "kitchen <extension> & more"

	svg, err := RenderString(a, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(svg, "<extension>") {
		t.Error("assembly name not escaped")
	}
}
