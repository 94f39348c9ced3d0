package legacy

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

// Schematic is the decoded content of a .sch file, in file order per kind.
type Schematic struct {
	Version       int
	Components    []ComponentInstance
	Wires         []WireSegment
	Labels        []Label
	Junctions     []Junction
	NoConnections []NoConnection
	Notes         []Note
}

// ComponentInstance is a placed library symbol as read from a file. It
// has no identity; the schema aggregate assigns one on insertion.
type ComponentInstance struct {
	Name      string // library symbol name, optionally "lib:name"
	Reference string
	Unit      int
	Convert   int
	Timestamp string
	Position  geometry.Point2
	Rotation  geometry.Matrix4
	Fields    []Field
}

// Clone returns a deep copy.
func (c ComponentInstance) Clone() ComponentInstance {
	if c.Fields != nil {
		c.Fields = append([]Field(nil), c.Fields...)
	}
	return c
}

// Field is a text attribute of a symbol: F0 reference, F1 value,
// F2 footprint, F3 datasheet, then user fields.
// Position is in symbol coordinates. On a placed instance it is relative
// to the anchor, before the instance orientation is applied.
type Field struct {
	Index       int
	Name        string
	Text        string
	Position    geometry.Point2
	Size        float64
	Orientation geometry.TextOrientation
	HJustify    geometry.Justify
	VJustify    geometry.VJustify
	Italic      bool
	Bold        bool
	Visible     bool
}

// WireKind distinguishes electrical wires, buses and graphic lines.
type WireKind int

const (
	KindWire WireKind = iota
	KindBus
	KindDotted
)

func (k WireKind) String() string {
	switch k {
	case KindWire:
		return "Wire"
	case KindBus:
		return "Bus"
	case KindDotted:
		return "Dotted"
	}
	return fmt.Sprintf("WireKind(%d)", int(k))
}

// WireSegment is an unidentified line segment.
type WireSegment struct {
	Kind  WireKind
	Start geometry.Point2
	End   geometry.Point2
}

// Label is a local net label.
type Label struct {
	Position    geometry.Point2
	Orientation int
	Size        float64
	Text        string
}

type Junction struct {
	Position geometry.Point2
}

type NoConnection struct {
	Position geometry.Point2
}

// Note is a free text annotation. Its text is not retained.
type Note struct {
	Position geometry.Point2
	Text     string
}
