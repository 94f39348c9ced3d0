package renderer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

const (
	arcSegments = 32
	dashLength  = 6.0 // pixels
	dashGap     = 4.0
	minTextPx   = 3.0
	maxTextPx   = 1 << 20
)

// Shared theme for text rendering, built on first use.
var textTheme = sync.OnceValue(func() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	return th
})

// GioTarget draws world-space primitives into a Gio frame through a
// camera. Call Begin at the start of every frame.
type GioTarget struct {
	Camera *Camera
	gtx    layout.Context
}

func NewGioTarget(camera *Camera) *GioTarget {
	return &GioTarget{Camera: camera}
}

// Begin binds the target to the frame being laid out.
func (t *GioTarget) Begin(gtx layout.Context) {
	t.gtx = gtx
}

// Fill paints the whole frame with c.
func (t *GioTarget) Fill(c color.NRGBA) {
	paint.Fill(t.gtx.Ops, c)
}

func (t *GioTarget) screen(p geometry.Point2) f32.Point {
	x, y := t.Camera.WorldToScreen(p)
	return f32.Pt(float32(x), float32(y))
}

func (t *GioTarget) strokeWidth(style Style) float32 {
	w := t.Camera.Scale(style.Width)
	if w < 1 {
		w = 1
	}
	return float32(w)
}

func (t *GioTarget) Polyline(points []geometry.Point2, style Style) {
	if len(points) < 2 {
		return
	}
	screen := make([]f32.Point, len(points))
	for i, p := range points {
		screen[i] = t.screen(p)
	}

	if style.Filled && len(points) > 2 {
		var path clip.Path
		path.Begin(t.gtx.Ops)
		path.MoveTo(screen[0])
		for _, p := range screen[1:] {
			path.LineTo(p)
		}
		path.Close()
		paint.FillShape(t.gtx.Ops, style.Color, clip.Outline{Path: path.End()}.Op())
		return
	}

	var path clip.Path
	path.Begin(t.gtx.Ops)
	if style.Dashed {
		dashes(&path, screen)
	} else {
		path.MoveTo(screen[0])
		for _, p := range screen[1:] {
			path.LineTo(p)
		}
	}
	paint.FillShape(t.gtx.Ops, style.Color, clip.Stroke{
		Path:  path.End(),
		Width: t.strokeWidth(style),
	}.Op())
}

// dashes adds the visible pieces of a dashed polyline to path.
func dashes(path *clip.Path, pts []f32.Point) {
	on := true
	left := float32(dashLength)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		segLen := float32(math.Hypot(float64(d.X), float64(d.Y)))
		if segLen == 0 {
			continue
		}
		dir := d.Div(segLen)
		pos := float32(0)
		for pos < segLen {
			step := min(left, segLen-pos)
			if on {
				path.MoveTo(a.Add(dir.Mul(pos)))
				path.LineTo(a.Add(dir.Mul(pos + step)))
			}
			pos += step
			left -= step
			if left <= 0 {
				on = !on
				left = dashGap
				if on {
					left = dashLength
				}
			}
		}
	}
}

func (t *GioTarget) Circle(center geometry.Point2, radius float64, style Style) {
	if style.Filled {
		c := t.screen(center)
		r := float32(math.Max(t.Camera.Scale(radius), 1))
		rect := image.Rectangle{
			Min: image.Pt(int(c.X-r), int(c.Y-r)),
			Max: image.Pt(int(c.X+r), int(c.Y+r)),
		}
		paint.FillShape(t.gtx.Ops, style.Color, clip.Ellipse(rect).Op(t.gtx.Ops))
		return
	}
	t.Arc(center, radius, 0, 2*math.Pi, style)
}

func (t *GioTarget) Arc(center geometry.Point2, radius, start, end float64, style Style) {
	t.Polyline(ArcPoints(center, radius, start, end, arcSegments), style)
}

// ArcPoints samples an arc into n segments.
func ArcPoints(center geometry.Point2, radius, start, end float64, n int) []geometry.Point2 {
	pts := make([]geometry.Point2, n+1)
	for i := 0; i <= n; i++ {
		a := start + (end-start)*float64(i)/float64(n)
		pts[i] = geometry.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	return pts
}

func (t *GioTarget) Text(pos geometry.Point2, content string, style TextStyle) {
	px := t.Camera.Scale(style.Size)
	if content == "" || px < minTextPx {
		return
	}
	gtx := t.gtx
	pxPerSp := gtx.Metric.PxPerSp
	if pxPerSp == 0 {
		pxPerSp = 1
	}

	lbl := material.Label(textTheme(), unit.Sp(float32(px)/pxPerSp), content)
	lbl.Color = style.Color
	lbl.MaxLines = 1

	// Record the label so it can be measured before placing it
	gtx.Constraints = layout.Constraints{Max: image.Pt(maxTextPx, maxTextPx)}
	macro := op.Record(gtx.Ops)
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	w, h := float32(dims.Size.X), float32(dims.Size.Y)
	var dx, dy float32
	switch style.HJustify {
	case geometry.JustifyCenter:
		dx = -w / 2
	case geometry.JustifyRight:
		dx = -w
	}
	switch style.VJustify {
	case geometry.JustifyMiddle:
		dy = -h / 2
	case geometry.JustifyBottom:
		dy = -h
	}

	tr := f32.Affine2D{}.Offset(f32.Pt(dx, dy))
	if style.Orientation == geometry.Vertical {
		// Vertical text reads bottom to top
		tr = tr.Rotate(f32.Pt(0, 0), -math.Pi/2)
	}
	tr = tr.Offset(t.screen(pos))

	stack := op.Affine(tr).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}
