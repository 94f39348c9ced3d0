package geometry

import "math"

// AABB is an axis-aligned bounding box. The zero value is the degenerate
// box at the origin.
type AABB struct {
	Min Point2
	Max Point2
}

// NewAABB returns the smallest box containing a and b.
func NewAABB(a, b Point2) AABB {
	return AABB{
		Min: Point2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// BoundsOf returns the smallest box containing every point. With no
// points it returns the zero box.
func BoundsOf(points ...Point2) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	bb := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bb = bb.Expand(p)
	}
	return bb
}

// Merge returns the union of two boxes: the component-wise min of the
// minimums and max of the maximums. It is commutative and associative.
func (bb AABB) Merge(other AABB) AABB {
	return AABB{
		Min: Point2{X: math.Min(bb.Min.X, other.Min.X), Y: math.Min(bb.Min.Y, other.Min.Y)},
		Max: Point2{X: math.Max(bb.Max.X, other.Max.X), Y: math.Max(bb.Max.Y, other.Max.Y)},
	}
}

// Translate moves both corners by v.
func (bb AABB) Translate(v Vector2) AABB {
	return AABB{Min: bb.Min.Add(v), Max: bb.Max.Add(v)}
}

// Expand returns bb grown to include p.
func (bb AABB) Expand(p Point2) AABB {
	return bb.Merge(AABB{Min: p, Max: p})
}

// Inflate grows the box by d on every side.
func (bb AABB) Inflate(d float64) AABB {
	return AABB{
		Min: Point2{X: bb.Min.X - d, Y: bb.Min.Y - d},
		Max: Point2{X: bb.Max.X + d, Y: bb.Max.Y + d},
	}
}

// Corners returns the four corners, counter-clockwise from Min.
func (bb AABB) Corners() [4]Point2 {
	return [4]Point2{
		bb.Min,
		{X: bb.Max.X, Y: bb.Min.Y},
		bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
	}
}

func (bb AABB) Width() float64 {
	return bb.Max.X - bb.Min.X
}

func (bb AABB) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the box.
func (bb AABB) Center() Point2 {
	return bb.Min.Mid(bb.Max)
}

// Intersects reports whether two boxes overlap. Touching edges count.
func (bb AABB) Intersects(other AABB) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y
}

// Contains reports whether p lies inside the box or on its edge.
func (bb AABB) Contains(p Point2) bool {
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y
}
