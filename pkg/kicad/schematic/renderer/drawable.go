// Package renderer keeps a render-ready copy of a schematic in step with
// the schema through bus notifications, and draws it onto a
// renderer.Target.
package renderer

import (
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
)

// Drawable is the world-space primitive list derived from one entity.
type Drawable struct {
	Bounds geometry.AABB
	Ops    []renderer.Op
}

func (d *Drawable) polyline(style renderer.Style, points ...geometry.Point2) {
	d.Ops = append(d.Ops, renderer.Op{Kind: renderer.OpPolyline, Points: points, Style: style})
}

func (d *Drawable) circle(center geometry.Point2, radius float64, style renderer.Style) {
	d.Ops = append(d.Ops, renderer.Op{Kind: renderer.OpCircle, Center: center, Radius: radius, Style: style})
}

func (d *Drawable) text(pos geometry.Point2, content string, style renderer.TextStyle) {
	d.Ops = append(d.Ops, renderer.Op{Kind: renderer.OpText, Center: pos, Content: content, TextStyle: style})
}

// Draw replays the primitives onto t.
func (d *Drawable) Draw(t renderer.Target) {
	for _, op := range d.Ops {
		switch op.Kind {
		case renderer.OpPolyline:
			t.Polyline(op.Points, op.Style)
		case renderer.OpCircle:
			t.Circle(op.Center, op.Radius, op.Style)
		case renderer.OpArc:
			t.Arc(op.Center, op.Radius, op.Start, op.End, op.Style)
		case renderer.OpText:
			t.Text(op.Center, op.Content, op.TextStyle)
		}
	}
}
