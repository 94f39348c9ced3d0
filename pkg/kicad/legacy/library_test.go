package legacy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
)

func loadFixtureLibrary(t *testing.T) map[string]*Component {
	t.Helper()
	lib, err := ParseLibraryFile("../../../testdata/kicad.lib")
	require.NoError(t, err)
	assert.Equal(t, "2.4", lib.Version)

	byName := make(map[string]*Component, len(lib.Components))
	for _, c := range lib.Components {
		byName[c.Name] = c
	}
	return byName
}

func TestParseFixtureLibrary(t *testing.T) {
	lib := loadFixtureLibrary(t)
	assert.Len(t, lib, 7)
	for _, name := range []string{"C", "D", "GND", "LM358", "R", "SW_PUSH", "VCC"} {
		assert.Contains(t, lib, name)
	}
}

func TestParseLibraryPowerSymbol(t *testing.T) {
	gnd := loadFixtureLibrary(t)["GND"]
	require.NotNil(t, gnd)

	assert.Equal(t, "#PWR", gnd.Reference)
	require.Len(t, gnd.Fields, 4)
	assert.Equal(t, "#PWR", gnd.Fields[0].Text)
	assert.Equal(t, geometry.Pt(0, -250), gnd.Fields[0].Position)
	assert.False(t, gnd.Fields[0].Visible)
	assert.True(t, gnd.Fields[1].Visible)

	require.Len(t, gnd.Elements, 2)
	poly, ok := gnd.Elements[0].(Polygon)
	require.True(t, ok)
	assert.Len(t, poly.Points, 6)
	assert.False(t, poly.Filled)

	pin, ok := gnd.Elements[1].(Pin)
	require.True(t, ok)
	assert.Equal(t, "GND", pin.Name)
	assert.Equal(t, "1", pin.Number)
	assert.Equal(t, geometry.PinDown, pin.Orientation)
	assert.Equal(t, "W", pin.ElectricalType)
	assert.True(t, pin.Invisible)
}

func TestParseLibraryResistor(t *testing.T) {
	r := loadFixtureLibrary(t)["R"]
	require.NotNil(t, r)

	assert.Equal(t, []string{"R_*", "R_*_SMD"}, r.Footprints)
	assert.False(t, r.DrawPinNumbers)
	assert.True(t, r.DrawPinNames)

	want := []GraphicElement{
		Rectangle{
			Part:  Part{Unit: 0, Convert: 1, Thickness: 10},
			Start: geometry.Pt(-40, -100),
			End:   geometry.Pt(40, 100),
		},
		Pin{
			Part:           Part{Unit: 1, Convert: 1},
			Orientation:    geometry.PinDown,
			Number:         "1",
			Position:       geometry.Pt(0, 150),
			Length:         50,
			NumberSize:     50,
			NameSize:       50,
			ElectricalType: "P",
		},
		Pin{
			Part:           Part{Unit: 1, Convert: 1},
			Orientation:    geometry.PinUp,
			Number:         "2",
			Position:       geometry.Pt(0, -150),
			Length:         50,
			NumberSize:     50,
			NameSize:       50,
			ElectricalType: "P",
		},
	}
	if diff := cmp.Diff(want, r.Elements); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}

	pin := r.Elements[1].(Pin)
	assert.Equal(t, geometry.Pt(0, 100), pin.End())
	assert.Equal(t, geometry.AABB{Min: geometry.Pt(-40, -150), Max: geometry.Pt(40, 150)}, r.BoundingBox())
}

func TestParseLibraryAliasesAndUnits(t *testing.T) {
	lib := loadFixtureLibrary(t)

	assert.Equal(t, []string{"LED"}, lib["D"].Aliases)

	opamp := lib["LM358"]
	require.NotNil(t, opamp)
	assert.Equal(t, 2, opamp.UnitCount)

	body, ok := opamp.Elements[0].(Polygon)
	require.True(t, ok)
	assert.True(t, body.Filled)

	var unit2 int
	for _, e := range opamp.Elements {
		if e.Belongs(2, 1) {
			unit2++
		}
	}
	// body, both supply pins and the three pins of unit 2
	assert.Equal(t, 6, unit2)
}

func TestParseLibraryArcAndText(t *testing.T) {
	sw := loadFixtureLibrary(t)["SW_PUSH"]
	require.NotNil(t, sw)

	var arc *CircleArc
	var text *TextField
	var circles int
	for _, e := range sw.Elements {
		switch v := e.(type) {
		case CircleArc:
			arc = &v
		case TextField:
			text = &v
		case Circle:
			circles++
		}
	}
	assert.Equal(t, 2, circles)

	require.NotNil(t, arc)
	assert.Equal(t, geometry.Pt(0, -20), arc.Center)
	assert.Equal(t, 50.0, arc.Radius)
	assert.Equal(t, 1800.0, arc.StartAngle)
	assert.Equal(t, 0.0, arc.EndAngle)
	assert.Equal(t, geometry.Pt(-50, -20), arc.StartCoord)
	assert.Equal(t, geometry.Pt(50, -20), arc.EndCoord)

	require.NotNil(t, text)
	assert.Equal(t, "Push Button", text.Content)
	assert.Equal(t, geometry.Horizontal, text.Orientation)
	assert.Equal(t, geometry.Pt(0, -130), text.Position)
}

const libHeader = "EESchema-LIBRARY Version 2.4\n#encoding utf-8\n#\n"

func TestParseLibraryInline(t *testing.T) {
	input := libHeader + `DEF TEST U 0 40 Y Y 1 F N
F0 "U" 0 0 50 H V C CNN
DRAW
T 900 10 20 50 1 1 2 "A B"
X ~ 1 0 0 100 R 50 50 1 1 P
ENDDRAW
ENDDEF
`
	lib, err := newParser(t).ParseLibraryString(input)
	require.NoError(t, err)
	require.Len(t, lib.Components, 1)

	c := lib.Components[0]
	require.Len(t, c.Elements, 2)
	text := c.Elements[0].(TextField)
	assert.Equal(t, geometry.Vertical, text.Orientation)
	assert.Equal(t, "A B", text.Content)
	assert.True(t, text.Hidden)
	assert.Equal(t, Part{Unit: 1, Convert: 2}, text.Part)

	pin := c.Elements[1].(Pin)
	assert.Empty(t, pin.Name)
	assert.Equal(t, geometry.Pt(100, 0), pin.End())
}

func TestParseLibraryWithoutDraw(t *testing.T) {
	lib, err := newParser(t).ParseLibraryString(libHeader + "DEF EMPTY U 0 40 Y Y 1 F N\nENDDEF\n#End Library")
	require.NoError(t, err)
	require.Len(t, lib.Components, 1)
	assert.Empty(t, lib.Components[0].Elements)
	assert.Equal(t, geometry.AABB{}, lib.Components[0].BoundingBox())
}

func TestParseLibraryFailures(t *testing.T) {
	def := "DEF TEST U 0 40 Y Y 1 F N\nDRAW\nX ~ 1 0 0 100 R 50 50 1 1 P\nENDDRAW\nENDDEF\n"
	tests := []struct {
		name  string
		input string
	}{
		{"missing ENDDEF", libHeader + strings.Replace(def, "ENDDEF\n", "", 1)},
		{"unknown record", libHeader + strings.Replace(def, "X ~", "B 4 0 1 0 0 0\nX ~", 1)},
		{"bad pin orientation", libHeader + strings.Replace(def, " R 50", " Q 50", 1)},
		{"short polygon", libHeader + strings.Replace(def, "X ~", "P 3 0 1 0 0 0 10 10\nX ~", 1)},
		{"bad text angle", libHeader + strings.Replace(def, "X ~", "T 450 0 0 50 0 0 0 x\nX ~", 1)},
		{"malformed coordinate", libHeader + strings.Replace(def, "0 0 100 R", "0 x 100 R", 1)},
		{"bad field", libHeader + strings.Replace(def, "DRAW\n", "F0 \"U\" 0 0\nDRAW\n", 1)},
		{"schematic header", header + def},
	}

	p := newParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := p.ParseLibraryString(tt.input)
			assert.ErrorIs(t, err, ErrParse)
			assert.Nil(t, lib)
		})
	}
}
