package renderer

import (
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
)

const defaultLabelSize = 50.0

// buildLabel draws a local label. Orientation follows the file: 0 reads
// left to right, 1 up, 2 right to left, 3 down.
func buildLabel(l legacy.Label, colors *SchematicColors) Drawable {
	size := l.Size
	if size <= 0 {
		size = defaultLabelSize
	}

	style := renderer.TextStyle{
		Color:    colors.Label,
		Size:     size,
		HJustify: geometry.JustifyLeft,
		VJustify: geometry.JustifyBottom,
	}
	switch l.Orientation {
	case 1:
		style.Orientation = geometry.Vertical
	case 2:
		style.HJustify = geometry.JustifyRight
	case 3:
		style.Orientation = geometry.Vertical
		style.HJustify = geometry.JustifyRight
	}

	// Rough extent for culling: glyphs are about as wide as they are tall
	extent := size * float64(len(l.Text))
	d := Drawable{Bounds: geometry.AABB{Min: l.Position, Max: l.Position}.Inflate(extent)}
	d.text(l.Position, l.Text, style)
	return d
}
