// Package geometry holds the value types shared by the legacy schematic
// reader, the schema aggregate and the renderers: points, vectors,
// axis-aligned boxes, homogeneous transforms and the orientation tables
// used to place pin text.
//
// World space is Y-up. Schematic files are Y-down, so the reader negates
// every Y coordinate before a value reaches this package.
package geometry

import "math"

// Point2 is a position in world units (mils).
type Point2 struct {
	X float64
	Y float64
}

// Vector2 is a displacement in world units.
type Vector2 struct {
	X float64
	Y float64
}

// Pt is shorthand for Point2{X: x, Y: y}.
func Pt(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

// Vec is shorthand for Vector2{X: x, Y: y}.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add translates p by v.
func (p Point2) Add(v Vector2) Point2 {
	return Point2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point2) Sub(q Point2) Vector2 {
	return Vector2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vector returns p as a displacement from the origin.
func (p Point2) Vector() Vector2 {
	return Vector2{X: p.X, Y: p.Y}
}

// Mid returns the point halfway between p and q.
func (p Point2) Mid(q Point2) Point2 {
	return Point2{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{X: v.X + w.X, Y: v.Y + w.Y}
}

func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// FlipY mirrors v across the X axis. Used to move screen-space
// directions into the Y-up world frame.
func (v Vector2) FlipY() Vector2 {
	return Vector2{X: v.X, Y: -v.Y}
}

// Len returns the Euclidean length of v.
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}
