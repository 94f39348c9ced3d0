package renderer

import (
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic"
)

// Line widths in mils
const (
	wireWidth = 6.0
	busWidth  = 12.0 // thicker than wires

	junctionRadius = 20.0
	noConnectHalf  = 25.0
)

// buildWire derives the drawable of a wire, bus or graphic line.
func buildWire(w schematic.WireSegment, colors *SchematicColors) Drawable {
	d := Drawable{Bounds: w.BoundingBox()}

	var style renderer.Style
	switch w.Kind {
	case legacy.KindBus:
		style = renderer.Style{Color: colors.Bus, Width: busWidth}
	case legacy.KindDotted:
		style = renderer.Style{Color: colors.Dotted, Dashed: true}
	default:
		style = renderer.Style{Color: colors.Wire, Width: wireWidth}
	}
	d.polyline(style, w.Start, w.End)
	return d
}

// buildJunction draws a filled dot where wires connect.
func buildJunction(j legacy.Junction, colors *SchematicColors) Drawable {
	d := Drawable{Bounds: geometry.AABB{Min: j.Position, Max: j.Position}.Inflate(junctionRadius)}
	d.circle(j.Position, junctionRadius, renderer.Style{Color: colors.Junction, Filled: true})
	return d
}

// buildNoConnect draws an X marker.
func buildNoConnect(nc legacy.NoConnection, colors *SchematicColors) Drawable {
	p := nc.Position
	d := Drawable{Bounds: geometry.AABB{Min: p, Max: p}.Inflate(noConnectHalf)}
	style := renderer.Style{Color: colors.NoConnect, Width: wireWidth}
	d.polyline(style, geometry.Pt(p.X-noConnectHalf, p.Y-noConnectHalf), geometry.Pt(p.X+noConnectHalf, p.Y+noConnectHalf))
	d.polyline(style, geometry.Pt(p.X+noConnectHalf, p.Y-noConnectHalf), geometry.Pt(p.X-noConnectHalf, p.Y+noConnectHalf))
	return d
}
