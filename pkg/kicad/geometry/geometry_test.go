package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAABBMerge(t *testing.T) {
	a := NewAABB(Pt(0, 0), Pt(10, 5))
	b := NewAABB(Pt(-3, 2), Pt(4, 20))
	c := NewAABB(Pt(7, -8), Pt(9, -1))

	assert.Equal(t, a.Merge(b), b.Merge(a), "merge must be commutative")
	assert.Equal(t, a.Merge(b).Merge(c), a.Merge(b.Merge(c)), "merge must be associative")
	assert.Equal(t, AABB{Min: Pt(-3, -8), Max: Pt(10, 20)}, a.Merge(b).Merge(c))
}

func TestAABBTranslate(t *testing.T) {
	bb := NewAABB(Pt(1, 2), Pt(3, 4)).Translate(Vec(10, -10))
	assert.Equal(t, AABB{Min: Pt(11, -8), Max: Pt(13, -6)}, bb)
	assert.Equal(t, 2.0, bb.Width())
	assert.Equal(t, 2.0, bb.Height())
	assert.Equal(t, Pt(12, -7), bb.Center())
}

func TestNewAABBNormalizesCorners(t *testing.T) {
	assert.Equal(t, NewAABB(Pt(0, 0), Pt(5, 5)), NewAABB(Pt(5, 0), Pt(0, 5)))
}

func TestBoundsOf(t *testing.T) {
	assert.Equal(t, AABB{}, BoundsOf())
	bb := BoundsOf(Pt(1, 1), Pt(-2, 4), Pt(0, -6))
	assert.Equal(t, AABB{Min: Pt(-2, -6), Max: Pt(1, 4)}, bb)
	assert.True(t, bb.Contains(Pt(0, 0)))
	assert.False(t, bb.Contains(Pt(2, 0)))
	assert.True(t, bb.Intersects(NewAABB(Pt(1, 4), Pt(5, 5))))
	assert.False(t, bb.Intersects(NewAABB(Pt(1.5, 0), Pt(5, 5))))
}

func TestOrientationDefaultIsIdentity(t *testing.T) {
	// "1 0 0 -1" is the unrotated orientation row in schematic files.
	m := Orientation(1, 0, 0, -1)
	assert.True(t, m.ApproxEqual(Identity(), 1e-12), "got %v", m)
}

func TestOrientationLayout(t *testing.T) {
	m := Orientation(2, 3, 5, 7)
	assert.Equal(t, Matrix4{
		2, 5, 0, 0,
		-3, -7, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}, m)
}

func TestRotationComposes(t *testing.T) {
	start := Orientation(-1, 0, 0, 1)
	quarter := RotationZ(math.Pi / 2)

	once := start.Mul(quarter)
	require.False(t, once.ApproxEqual(start, 1e-9))
	require.False(t, once.ApproxEqual(quarter, 1e-9), "rotation must compose, not replace")

	m := start
	for i := 0; i < 4; i++ {
		m = m.Mul(quarter)
	}
	assert.True(t, m.ApproxEqual(start, 1e-9))
}

func TestTransformPoint(t *testing.T) {
	m := RotationZ(math.Pi / 2)
	p := m.TransformPoint(Pt(1, 0))
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 1, p.Y, 1e-12)

	bb := m.TransformAABB(NewAABB(Pt(0, 0), Pt(2, 1)))
	assert.InDelta(t, -1, bb.Min.X, 1e-12)
	assert.InDelta(t, 0, bb.Max.X, 1e-12)
	assert.InDelta(t, 0, bb.Min.Y, 1e-12)
	assert.InDelta(t, 2, bb.Max.Y, 1e-12)
}

func TestPinOrientationTables(t *testing.T) {
	tests := []struct {
		letter string
		unit   Vector2
		text   TextOrientation
		number Justify
		name   Justify
	}{
		{"U", Vec(0, -1), Vertical, JustifyRight, JustifyLeft},
		{"D", Vec(0, 1), Vertical, JustifyLeft, JustifyRight},
		{"R", Vec(1, 0), Horizontal, JustifyRight, JustifyLeft},
		{"L", Vec(-1, 0), Horizontal, JustifyLeft, JustifyRight},
	}
	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			o, err := ParsePinOrientation(tt.letter)
			require.NoError(t, err)
			assert.Equal(t, tt.unit, o.Unit())
			assert.Equal(t, tt.text, o.TextOrientation())
			assert.Equal(t, tt.number, o.NumberJustify())
			assert.Equal(t, tt.name, o.NameJustify())
		})
	}

	_, err := ParsePinOrientation("X")
	assert.Error(t, err)
}

func TestParseJustify(t *testing.T) {
	j, err := ParseJustify("C")
	require.NoError(t, err)
	assert.Equal(t, JustifyCenter, j)
	assert.Equal(t, JustifyCenter, j.Opposite())

	v, err := ParseVJustify("T")
	require.NoError(t, err)
	assert.Equal(t, JustifyTop, v)

	_, err = ParseJustify("T")
	assert.Error(t, err)
}
