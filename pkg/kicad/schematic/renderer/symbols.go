package renderer

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic"
)

const (
	// Default body line thickness in mils
	bodyWidth    = 6.0
	pinWidth     = 6.0
	pinEndRadius = 10.0
	arcSegments  = 32
)

// buildComponent derives the drawable of a placed symbol. Only elements
// of the instance's unit and body style are drawn.
func buildComponent(inst schematic.ComponentInstance, sym *legacy.Component, colors *SchematicColors) Drawable {
	d := Drawable{Bounds: inst.BoundingBox(sym)}
	swapped := swapsAxes(inst.Rotation)

	for _, e := range sym.Elements {
		if !e.Belongs(inst.Unit, inst.Convert) {
			continue
		}
		switch e := e.(type) {
		case legacy.Polygon:
			d.shape(transformAll(inst, e.Points), e.Part, e.Filled, false, colors)

		case legacy.Rectangle:
			corners := []geometry.Point2{
				e.Start,
				geometry.Pt(e.End.X, e.Start.Y),
				e.End,
				geometry.Pt(e.Start.X, e.End.Y),
			}
			d.shape(transformAll(inst, corners), e.Part, e.Filled, true, colors)

		case legacy.Circle:
			center := inst.Transform(e.Center)
			if e.Filled {
				d.circle(center, e.Radius, renderer.Style{Color: colors.SymbolFill, Filled: true})
			}
			d.circle(center, e.Radius, bodyStyle(e.Part, colors))

		case legacy.CircleArc:
			// Sampled in symbol space so mirrored instances stay correct
			start, end := arcSpan(e.StartAngle, e.EndAngle)
			pts := renderer.ArcPoints(e.Center, e.Radius, start, end, arcSegments)
			d.shape(transformAll(inst, pts), e.Part, e.Filled, false, colors)

		case legacy.TextField:
			if e.Hidden {
				continue
			}
			d.text(inst.Transform(e.Position), e.Content, renderer.TextStyle{
				Color:       colors.SymbolText,
				Size:        e.Size,
				Orientation: rotateText(e.Orientation, swapped),
				HJustify:    geometry.JustifyCenter,
				VJustify:    geometry.JustifyMiddle,
			})

		case legacy.Pin:
			d.pin(inst, sym, e, colors)
		}
	}

	for _, f := range inst.Fields {
		if !f.Visible || f.Text == "" || f.Text == "~" {
			continue
		}
		pos := inst.Transform(f.Position)
		d.text(pos, f.Text, renderer.TextStyle{
			Color:       colors.Field,
			Size:        f.Size,
			Orientation: rotateText(f.Orientation, swapped),
			HJustify:    f.HJustify,
			VJustify:    f.VJustify,
		})
		d.Bounds = d.Bounds.Expand(pos)
	}
	return d
}

// shape draws an outline, optionally filled first.
func (d *Drawable) shape(points []geometry.Point2, part legacy.Part, filled, closed bool, colors *SchematicColors) {
	if closed && len(points) > 0 {
		points = append(points, points[0])
	}
	if filled {
		d.polyline(renderer.Style{Color: colors.SymbolFill, Filled: true}, points...)
	}
	d.polyline(bodyStyle(part, colors), points...)
}

func (d *Drawable) pin(inst schematic.ComponentInstance, sym *legacy.Component, p legacy.Pin, colors *SchematicColors) {
	if p.Invisible {
		return
	}
	outer := inst.Transform(p.Position)
	inner := inst.Transform(p.End())
	dir := inst.Rotation.TransformVector(p.Direction())
	orient := pinOrientation(dir)

	d.polyline(renderer.Style{Color: colors.SymbolPin, Width: pinWidth}, outer, inner)
	d.circle(outer, pinEndRadius, renderer.Style{Color: colors.SymbolPin})

	if sym.DrawPinNumbers && p.Number != "" {
		d.text(outer.Mid(inner), p.Number, renderer.TextStyle{
			Color:       colors.PinNumber,
			Size:        p.NumberSize,
			Orientation: orient.TextOrientation(),
			HJustify:    orient.NumberJustify(),
			VJustify:    geometry.JustifyBottom,
		})
	}
	if sym.DrawPinNames && p.Name != "" {
		d.text(inner.Add(dir.Scale(sym.TextOffset)), p.Name, renderer.TextStyle{
			Color:       colors.PinName,
			Size:        p.NameSize,
			Orientation: orient.TextOrientation(),
			HJustify:    orient.NameJustify(),
			VJustify:    geometry.JustifyMiddle,
		})
	}
}

func bodyStyle(part legacy.Part, colors *SchematicColors) renderer.Style {
	w := part.Thickness
	if w <= 0 {
		w = bodyWidth
	}
	return renderer.Style{Color: colors.SymbolBody, Width: w}
}

func transformAll(inst schematic.ComponentInstance, pts []geometry.Point2) []geometry.Point2 {
	out := make([]geometry.Point2, len(pts))
	for i, p := range pts {
		out[i] = inst.Transform(p)
	}
	return out
}

// arcSpan converts tenths of a degree to radians, taking the short way
// round.
func arcSpan(start, end float64) (float64, float64) {
	delta := end - start
	switch {
	case delta > 1800:
		delta -= 3600
	case delta < -1800:
		delta += 3600
	}
	s := start * math.Pi / 1800
	return s, s + delta*math.Pi/1800
}

// swapsAxes reports whether m turns horizontal text vertical.
func swapsAxes(m geometry.Matrix4) bool {
	return math.Abs(m.At(0, 0)) < 0.5
}

func rotateText(o geometry.TextOrientation, swapped bool) geometry.TextOrientation {
	if !swapped {
		return o
	}
	if o == geometry.Vertical {
		return geometry.Horizontal
	}
	return geometry.Vertical
}

// pinOrientation classifies a world-space (Y-up) direction.
func pinOrientation(dir geometry.Vector2) geometry.PinOrientation {
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X >= 0 {
			return geometry.PinRight
		}
		return geometry.PinLeft
	}
	if dir.Y > 0 {
		return geometry.PinUp
	}
	return geometry.PinDown
}
