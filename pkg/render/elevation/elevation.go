// Package elevation renders a resolved assembly as a 2D SVG elevation:
// column rectangles, panel rectangles with glazing division lines and a
// dimension strip underneath.
//
// Output is deterministic: identical assemblies render to identical
// bytes, which makes elevations safe to cache and diff.
package elevation

import (
	"fmt"
	"io"
	"strings"

	"github.com/framewright/framewright/pkg/frame"
)

// Options controls rendering scale and chrome.
type Options struct {
	// PxPerMM scales millimetres to SVG user units. Zero means 0.1
	// (a 10m run renders 1000 units wide).
	PxPerMM float64

	// ShowDimensions adds a dimension strip under the elevation.
	ShowDimensions bool
}

func (o Options) scale() float64 {
	if o.PxPerMM > 0 {
		return o.PxPerMM
	}
	return 0.1
}

// Palette, fixed: elevations are engineering drawings, not themes.
const (
	colorNode     = "#5b5b5b"
	colorWindow   = "#cfe5f2"
	colorDoor     = "#e8d9c2"
	colorBlanking = "#b8b8b8"
	colorStroke   = "#2f2f2f"
	colorDim      = "#7a7a7a"
)

const margin = 20.0

// Render writes the SVG elevation for an assembly.
// Dangling panels are skipped, matching the active render set.
func Render(a *frame.Assembly, opts Options, w io.Writer) error {
	var b strings.Builder
	s := opts.scale()

	width := a.OverallLengthMM()*s + 2*margin
	height := maxHeightMM(a)*s + 2*margin
	if opts.ShowDimensions {
		height += 30
	}

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.1f" height="%.1f" viewBox="0 0 %.1f %.1f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<title>%s</title>`+"\n", escape(a.Name))

	baseY := maxHeightMM(a)*s + margin // ground line; SVG y grows downward

	for i := range a.Nodes {
		n := &a.Nodes[i]
		drawRect(&b,
			margin+n.OffsetMM*s,
			baseY-n.HeightMM*s,
			n.WidthMM*s,
			n.HeightMM*s,
			colorNode)
	}

	for _, p := range a.IntactPanels() {
		from := a.NodeByID(p.FromNode)
		x := margin + from.RightEdgeMM()*s
		top := from.HeadHeightMM
		bottom := from.CillHeightMM
		y := baseY - top*s
		w := p.LengthMM * s
		h := (top - bottom) * s

		drawRect(&b, x, y, w, h, panelFill(p.Type))
		drawDivisions(&b, p, x, y, w, h)
	}

	if opts.ShowDimensions {
		drawDimensions(&b, a, s, baseY)
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderString renders to a string.
func RenderString(a *frame.Assembly, opts Options) (string, error) {
	var sb strings.Builder
	if err := Render(a, opts, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func drawRect(b *strings.Builder, x, y, w, h float64, fill string) {
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, w, h, fill, colorStroke)
}

// drawDivisions draws the glazing grid inside a panel rectangle.
func drawDivisions(b *strings.Builder, p frame.Panel, x, y, w, h float64) {
	for i := 1; i < p.DivisionsX; i++ {
		lx := x + w*float64(i)/float64(p.DivisionsX)
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
			lx, y, lx, y+h, colorStroke)
	}
	for i := 1; i < p.DivisionsY; i++ {
		ly := y + h*float64(i)/float64(p.DivisionsY)
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
			x, ly, x+w, ly, colorStroke)
	}
}

// drawDimensions writes a length label under each node and panel.
func drawDimensions(b *strings.Builder, a *frame.Assembly, s, baseY float64) {
	y := baseY + 20
	for i := range a.Nodes {
		n := &a.Nodes[i]
		cx := margin + (n.OffsetMM+n.WidthMM/2)*s
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="9" text-anchor="middle" fill="%s">%.0f</text>`+"\n",
			cx, y, colorDim, n.WidthMM)
	}
	for _, p := range a.IntactPanels() {
		from := a.NodeByID(p.FromNode)
		cx := margin + (from.RightEdgeMM()+p.LengthMM/2)*s
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="9" text-anchor="middle" fill="%s">%.0f</text>`+"\n",
			cx, y, colorDim, p.LengthMM)
	}
}

func panelFill(t frame.PanelType) string {
	switch t {
	case frame.PanelDoor:
		return colorDoor
	case frame.PanelBlanking:
		return colorBlanking
	default:
		return colorWindow
	}
}

func maxHeightMM(a *frame.Assembly) float64 {
	h := 0.0
	for i := range a.Nodes {
		if a.Nodes[i].HeightMM > h {
			h = a.Nodes[i].HeightMM
		}
	}
	if h == 0 {
		h = frame.DefaultNodeHeightMM
	}
	return h
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}
