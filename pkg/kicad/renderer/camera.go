// Package renderer maps world-space drawing primitives onto a screen.
// Camera holds the view state; Target is the drawing surface, with a
// Gio implementation and a recording one.
package renderer

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

const (
	minZoom = 0.001
	maxZoom = 100.0
)

// Camera represents a viewport onto a Y-up world measured in mils.
type Camera struct {
	// Center position in world coordinates
	CenterX float64
	CenterY float64

	// Zoom level (pixels per mil)
	// Higher values = more zoomed in
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int

	// true = world Y grows upward and is flipped for the screen
	InvertY bool

	// View rotation in degrees, about the rotation center
	Rotation        float64
	RotationCenterX float64
	RotationCenterY float64
}

// NewCamera creates a camera for a Y-up world.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         0.1, // 100 mil grid = 10 px
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		InvertY:      true,
	}
}

// WorldToScreen converts a world position to screen pixels.
func (c *Camera) WorldToScreen(pos geometry.Point2) (float64, float64) {
	pos = c.applyViewTransform(pos)

	// Translate so camera center is at origin, then zoom
	x := (pos.X - c.CenterX) * c.Zoom
	y := (pos.Y - c.CenterY) * c.Zoom

	if c.InvertY {
		y = -y
	}

	// Translate to screen center
	x += float64(c.ScreenWidth) / 2.0
	y += float64(c.ScreenHeight) / 2.0

	return x, y
}

// ScreenToWorld converts screen pixels to a world position.
func (c *Camera) ScreenToWorld(screenX, screenY float64) geometry.Point2 {
	x := screenX - float64(c.ScreenWidth)/2.0
	y := screenY - float64(c.ScreenHeight)/2.0

	if c.InvertY {
		y = -y
	}

	x = x/c.Zoom + c.CenterX
	y = y/c.Zoom + c.CenterY

	return c.applyInverseViewTransform(geometry.Pt(x, y))
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(length float64) float64 {
	return length * c.Zoom
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	if c.InvertY {
		c.CenterY += deltaY / c.Zoom
	} else {
		c.CenterY -= deltaY / c.Zoom
	}
}

// ZoomAt zooms in/out keeping the world point under (screenX, screenY)
// stationary. factor > 1 zooms in.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom = math.Max(minZoom, math.Min(maxZoom, c.Zoom*factor))

	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centers bbox and zooms so it fills 90% of the screen.
func (c *Camera) Fit(bbox geometry.AABB) {
	width := bbox.Width()
	height := bbox.Height()

	if width <= 0 || height <= 0 || c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return
	}

	center := bbox.Center()
	c.CenterX, c.CenterY = center.X, center.Y
	c.RotationCenterX, c.RotationCenterY = center.X, center.Y

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	c.Zoom = math.Min(zoomX, zoomY)
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// Rotate rotates the view by the given degrees
func (c *Camera) Rotate(degrees float64) {
	c.Rotation = math.Mod(c.Rotation+degrees, 360)
	if c.Rotation < 0 {
		c.Rotation += 360
	}
}

func (c *Camera) applyViewTransform(pos geometry.Point2) geometry.Point2 {
	if c.Rotation == 0 {
		return pos
	}
	return c.rotateAboutCenter(pos, c.Rotation)
}

func (c *Camera) applyInverseViewTransform(pos geometry.Point2) geometry.Point2 {
	if c.Rotation == 0 {
		return pos
	}
	return c.rotateAboutCenter(pos, -c.Rotation)
}

func (c *Camera) rotateAboutCenter(pos geometry.Point2, degrees float64) geometry.Point2 {
	center := geometry.Pt(c.RotationCenterX, c.RotationCenterY)
	m := geometry.RotationZ(degrees * math.Pi / 180.0)
	return m.TransformPoint(geometry.Point2(pos.Sub(center))).Add(center.Vector())
}

// VisibleBounds returns the world box covered by the screen. Useful for
// culling off-screen elements.
func (c *Camera) VisibleBounds() geometry.AABB {
	w, h := float64(c.ScreenWidth), float64(c.ScreenHeight)
	return geometry.BoundsOf(
		c.ScreenToWorld(0, 0),
		c.ScreenToWorld(w, 0),
		c.ScreenToWorld(0, h),
		c.ScreenToWorld(w, h),
	)
}
