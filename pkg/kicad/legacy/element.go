package legacy

import (
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

// Library is the decoded content of a .lib file.
type Library struct {
	Version    string
	Components []*Component
}

// Component is a library symbol definition.
type Component struct {
	Name           string
	Reference      string
	TextOffset     float64
	DrawPinNumbers bool
	DrawPinNames   bool
	UnitCount      int
	Aliases        []string
	Fields         []Field
	Footprints     []string
	Elements       []GraphicElement
}

// BoundingBox is the union of every element's bounds, in library
// coordinates. A component without graphics has the zero box.
func (c *Component) BoundingBox() geometry.AABB {
	if len(c.Elements) == 0 {
		return geometry.AABB{}
	}
	bb := c.Elements[0].Bounds()
	for _, e := range c.Elements[1:] {
		bb = bb.Merge(e.Bounds())
	}
	return bb
}

// GraphicElement is one drawing record of a symbol.
type GraphicElement interface {
	// Belongs reports whether the element is drawn for the given unit
	// and body style.
	Belongs(unit, convert int) bool
	Bounds() geometry.AABB
}

// Part selects which unit and body style an element belongs to. Zero
// means shared by all.
type Part struct {
	Unit      int
	Convert   int
	Thickness float64
}

func (p Part) Belongs(unit, convert int) bool {
	return (p.Unit == 0 || p.Unit == unit) && (p.Convert == 0 || p.Convert == convert)
}

type Polygon struct {
	Part
	Points []geometry.Point2
	Filled bool
}

func (p Polygon) Bounds() geometry.AABB {
	return geometry.BoundsOf(p.Points...)
}

type Rectangle struct {
	Part
	Start  geometry.Point2
	End    geometry.Point2
	Filled bool
}

func (r Rectangle) Bounds() geometry.AABB {
	return geometry.NewAABB(r.Start, r.End)
}

type Circle struct {
	Part
	Center geometry.Point2
	Radius float64
	Filled bool
}

func (c Circle) Bounds() geometry.AABB {
	return geometry.AABB{Min: c.Center, Max: c.Center}.Inflate(c.Radius)
}

// CircleArc angles are in tenths of a degree, counter-clockwise from +X.
type CircleArc struct {
	Part
	Center     geometry.Point2
	Radius     float64
	StartCoord geometry.Point2
	EndCoord   geometry.Point2
	StartAngle float64
	EndAngle   float64
	Filled     bool
}

func (a CircleArc) Bounds() geometry.AABB {
	return geometry.AABB{Min: a.Center, Max: a.Center}.Inflate(a.Radius)
}

type TextField struct {
	Part
	Content     string
	Orientation geometry.TextOrientation
	Position    geometry.Point2
	Size        float64
	Hidden      bool
}

func (t TextField) Bounds() geometry.AABB {
	return geometry.AABB{Min: t.Position, Max: t.Position}
}

// Pin is a connection point. Position is the outer (wire) end; the pin
// extends Length units along Orientation toward the body.
type Pin struct {
	Part
	Orientation    geometry.PinOrientation
	Name           string // empty when the file has "~"
	Number         string
	Position       geometry.Point2
	Length         float64
	NumberSize     float64
	NameSize       float64
	ElectricalType string
	Shape          string
	Invisible      bool
}

// Direction is the unit vector of the pin in library (Y-up) space.
func (p Pin) Direction() geometry.Vector2 {
	return p.Orientation.Unit().FlipY()
}

// End is the inner end of the pin, where it meets the body.
func (p Pin) End() geometry.Point2 {
	return p.Position.Add(p.Direction().Scale(p.Length))
}

func (p Pin) Bounds() geometry.AABB {
	return geometry.NewAABB(p.Position, p.End())
}
