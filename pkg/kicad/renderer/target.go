package renderer

import (
	"image/color"
	"sync"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

// Style describes how a primitive is stroked or filled. Width is in
// world units; zero draws a hairline.
type Style struct {
	Color  color.NRGBA
	Width  float64
	Dashed bool
	Filled bool
}

// TextStyle describes a text run. Size is the glyph height in world
// units.
type TextStyle struct {
	Color       color.NRGBA
	Size        float64
	Orientation geometry.TextOrientation
	HJustify    geometry.Justify
	VJustify    geometry.VJustify
}

// Target is a drawing surface that accepts world-space primitives.
type Target interface {
	Polyline(points []geometry.Point2, style Style)
	Circle(center geometry.Point2, radius float64, style Style)
	// Arc angles are in radians, counter-clockwise from +X.
	Arc(center geometry.Point2, radius, start, end float64, style Style)
	Text(pos geometry.Point2, content string, style TextStyle)
}

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpPolyline OpKind = iota
	OpCircle
	OpArc
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpPolyline:
		return "polyline"
	case OpCircle:
		return "circle"
	case OpArc:
		return "arc"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one primitive captured by a Recorder.
type Op struct {
	Kind       OpKind
	Points     []geometry.Point2
	Center     geometry.Point2
	Radius     float64
	Start, End float64
	Content    string
	Style      Style
	TextStyle  TextStyle
}

// Recorder is a Target that keeps every primitive it receives. It backs
// headless rendering and tests.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) Polyline(points []geometry.Point2, style Style) {
	r.add(Op{Kind: OpPolyline, Points: append([]geometry.Point2(nil), points...), Style: style})
}

func (r *Recorder) Circle(center geometry.Point2, radius float64, style Style) {
	r.add(Op{Kind: OpCircle, Center: center, Radius: radius, Style: style})
}

func (r *Recorder) Arc(center geometry.Point2, radius, start, end float64, style Style) {
	r.add(Op{Kind: OpArc, Center: center, Radius: radius, Start: start, End: end, Style: style})
}

func (r *Recorder) Text(pos geometry.Point2, content string, style TextStyle) {
	r.add(Op{Kind: OpText, Center: pos, Content: content, TextStyle: style})
}

// Ops returns a copy of the recorded primitives in call order.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Count returns how many primitives of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}
