package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

func TestWorldToScreenRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 1000, -500
	c.Zoom = 0.25

	for _, p := range []geometry.Point2{{X: 0, Y: 0}, {X: 1000, Y: -500}, {X: -300, Y: 4200}} {
		x, y := c.WorldToScreen(p)
		back := c.ScreenToWorld(x, y)
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}

	x, y := c.WorldToScreen(geometry.Pt(1000, -500))
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
}

func TestInvertYPutsPositiveYUp(t *testing.T) {
	c := NewCamera(100, 100)
	c.Zoom = 1
	_, yUp := c.WorldToScreen(geometry.Pt(0, 10))
	_, yDown := c.WorldToScreen(geometry.Pt(0, -10))
	assert.Less(t, yUp, yDown)
}

func TestFit(t *testing.T) {
	c := NewCamera(1000, 500)
	c.Fit(geometry.NewAABB(geometry.Pt(0, 0), geometry.Pt(2000, 500)))

	assert.Equal(t, 1000.0, c.CenterX)
	assert.Equal(t, 250.0, c.CenterY)
	assert.InDelta(t, 0.45, c.Zoom, 1e-12)

	zoom := c.Zoom
	c.Fit(geometry.AABB{})
	assert.Equal(t, zoom, c.Zoom, "degenerate box is ignored")
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	c := NewCamera(800, 600)
	before := c.ScreenToWorld(100, 100)
	c.ZoomAt(100, 100, 2)
	after := c.ScreenToWorld(100, 100)

	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
	assert.InDelta(t, 0.2, c.Zoom, 1e-12)
}

func TestVisibleBounds(t *testing.T) {
	c := NewCamera(200, 100)
	c.Zoom = 1
	bb := c.VisibleBounds()
	assert.Equal(t, geometry.NewAABB(geometry.Pt(-100, -50), geometry.Pt(100, 50)), bb)

	c.UpdateScreenSize(400, 100)
	assert.InDelta(t, 400, c.VisibleBounds().Width(), 1e-9)
}

func TestRotateView(t *testing.T) {
	c := NewCamera(100, 100)
	c.Zoom = 1
	c.Rotate(90)
	c.Rotate(-180)
	assert.Equal(t, 270.0, c.Rotation)

	x, y := c.WorldToScreen(geometry.Pt(10, 0))
	back := c.ScreenToWorld(x, y)
	assert.InDelta(t, 10, back.X, 1e-9)
	assert.InDelta(t, 0, back.Y, 1e-9)
}
