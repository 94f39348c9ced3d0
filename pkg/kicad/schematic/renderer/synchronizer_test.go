package renderer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/event"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/library"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic"
)

type symbols map[string]*legacy.Component

func (s symbols) Resolve(name string) (*legacy.Component, bool) {
	c, ok := s[name]
	return c, ok
}

var testSymbols = symbols{
	"R": {
		Name:      "R",
		Reference: "R",
		Elements: []legacy.GraphicElement{
			legacy.Rectangle{Start: geometry.Pt(-40, -100), End: geometry.Pt(40, 100)},
			legacy.Pin{Orientation: geometry.PinDown, Number: "1", Position: geometry.Pt(0, 150), Length: 50},
			legacy.Pin{Orientation: geometry.PinUp, Number: "2", Position: geometry.Pt(0, -150), Length: 50},
		},
	},
	"BUF": {
		Name:           "BUF",
		Reference:      "U",
		TextOffset:     20,
		DrawPinNumbers: true,
		DrawPinNames:   true,
		UnitCount:      2,
		Elements: []legacy.GraphicElement{
			legacy.Polygon{Part: legacy.Part{Unit: 1}, Points: []geometry.Point2{{X: -100, Y: 100}, {X: 100, Y: 0}, {X: -100, Y: -100}}, Filled: true},
			legacy.Circle{Part: legacy.Part{Unit: 2}, Center: geometry.Pt(0, 0), Radius: 100},
			legacy.Pin{Orientation: geometry.PinRight, Name: "IN", Number: "1", Position: geometry.Pt(-200, 0), Length: 100, NumberSize: 50, NameSize: 50},
			legacy.Pin{Orientation: geometry.PinLeft, Number: "2", Position: geometry.Pt(200, 0), Length: 100, Invisible: true},
		},
	},
}

type countingMetrics struct {
	entries  int
	rebuilds map[string]int
}

func (m *countingMetrics) EntriesChanged(n int) { m.entries = n }
func (m *countingMetrics) Rebuilt(kind string)  { m.rebuilds[kind]++ }

type fixture struct {
	schema *schematic.Schema
	sync   *Synchronizer
	target *renderer.Recorder
	camera *renderer.Camera
}

func newFixture(t *testing.T, libs library.Resolver, opts ...Option) *fixture {
	t.Helper()
	bus := event.NewBus()
	target := &renderer.Recorder{}
	camera := renderer.NewCamera(0, 0)
	s := NewSynchronizer(libs, target, camera, opts...)
	bus.Register(s)
	return &fixture{schema: schematic.New(bus, nil), sync: s, target: target, camera: camera}
}

// identifiedWire and identifiedComponent insert into a schema that nothing
// listens to, so builders can be tested with real identities.
func identifiedWire(t *testing.T, w legacy.WireSegment) schematic.WireSegment {
	t.Helper()
	s := schematic.New(event.NewBus(), nil)
	seg, err := s.Wire(s.AddWire(w))
	require.NoError(t, err)
	return seg
}

func identifiedComponent(t *testing.T, c legacy.ComponentInstance) schematic.ComponentInstance {
	t.Helper()
	s := schematic.New(event.NewBus(), nil)
	inst, err := s.Component(s.AddComponent(c))
	require.NoError(t, err)
	return inst
}

// resistorAt places R with its fields 50 mils either side of the anchor.
func resistorAt(ref string, x, y float64) legacy.ComponentInstance {
	return legacy.ComponentInstance{
		Name:      "R",
		Reference: ref,
		Unit:      1,
		Convert:   1,
		Position:  geometry.Pt(x, y),
		Rotation:  geometry.Identity(),
		Fields: []legacy.Field{
			{Index: 0, Text: ref, Position: geometry.Pt(50, 0), Size: 50, Visible: true},
			{Index: 1, Text: "10k", Position: geometry.Pt(-50, 0), Size: 50},
		},
	}
}

func TestAddThenUpdateKeepsOneEntry(t *testing.T) {
	f := newFixture(t, testSymbols)

	id := f.schema.AddComponent(resistorAt("R1", 1000, -2000))
	require.Equal(t, 1, f.sync.Len())

	require.NoError(t, f.schema.MoveComponent(id, geometry.Vec(3000, -1000)))
	require.NoError(t, f.schema.RotateComponent(id))

	assert.Equal(t, 1, f.sync.Len())
	d, ok := f.sync.Drawable(id)
	require.True(t, ok)

	inst, err := f.schema.Component(id)
	require.NoError(t, err)
	field := inst.Transform(geometry.Pt(50, 0))
	assert.InDelta(t, 3000, field.X, 1e-9)
	assert.InDelta(t, -950, field.Y, 1e-9)

	want := inst.BoundingBox(testSymbols["R"]).Expand(field)
	assert.Equal(t, want, d.Bounds)
	assert.False(t, d.Bounds.Contains(geometry.Pt(1050, -2000)), "bounds do not reach the old field position")

	text := d.Ops[len(d.Ops)-1]
	require.Equal(t, "R1", text.Content)
	assert.Equal(t, field, text.Center)
}

func TestFieldsFollowMove(t *testing.T) {
	f := newFixture(t, testSymbols)
	id := f.schema.AddComponent(resistorAt("R1", 0, 0))
	require.NoError(t, f.schema.MoveComponent(id, geometry.Vec(5000, 5000)))

	d, ok := f.sync.Drawable(id)
	require.True(t, ok)
	text := d.Ops[len(d.Ops)-1]
	require.Equal(t, "R1", text.Content)
	assert.Equal(t, geometry.Pt(5050, 5000), text.Center)
	assert.Equal(t, geometry.Pt(4960, 4850), d.Bounds.Min)
}

func TestAddIsUpsert(t *testing.T) {
	f := newFixture(t, testSymbols)
	w := identifiedWire(t, legacy.WireSegment{Kind: legacy.KindWire, End: geometry.Pt(100, 0)})

	f.sync.Receive(schematic.AddWire{Wire: w})
	w.End = geometry.Pt(500, 0)
	f.sync.Receive(schematic.AddWire{Wire: w})

	assert.Equal(t, 1, f.sync.Len())
	d, _ := f.sync.Drawable(w.ID())
	assert.Equal(t, geometry.Pt(500, 0), d.Ops[0].Points[1])
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	f := newFixture(t, testSymbols)
	id := f.schema.AddWire(legacy.WireSegment{End: geometry.Pt(100, 0)})
	before, _ := f.sync.Drawable(id)

	unknown := identifiedWire(t, legacy.WireSegment{End: geometry.Pt(100, 0)})
	assert.NotPanics(t, func() {
		f.sync.Receive(schematic.RemoveWire{Wire: unknown})
	})

	assert.Equal(t, 1, f.sync.Len())
	after, ok := f.sync.Drawable(id)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestUpdateKeepsDrawOrder(t *testing.T) {
	f := newFixture(t, testSymbols)
	a := f.schema.AddWire(legacy.WireSegment{End: geometry.Pt(100, 0)})
	b := f.schema.AddWire(legacy.WireSegment{End: geometry.Pt(0, 100)})
	c := f.schema.AddWire(legacy.WireSegment{End: geometry.Pt(100, 100)})

	w, err := f.schema.Wire(a)
	require.NoError(t, err)
	w.End = geometry.Pt(-100, 0)
	require.NoError(t, f.schema.UpdateWire(w))
	assert.Equal(t, []uuid.UUID{a, b, c}, f.sync.IDs())

	require.NoError(t, f.schema.RemoveWire(b))
	assert.Equal(t, []uuid.UUID{a, c}, f.sync.IDs())
	_, ok := f.sync.Drawable(c)
	assert.True(t, ok, "index follows removal")
}

func TestUnresolvedSymbolIsNotCached(t *testing.T) {
	f := newFixture(t, testSymbols)
	inst := resistorAt("X1", 0, 0)
	inst.Name = "missing"
	f.schema.AddComponent(inst)
	assert.Zero(t, f.sync.Len())
}

func TestComponentDrawable(t *testing.T) {
	colors := GetSchematicColors(ThemeLight)
	inst := identifiedComponent(t, resistorAt("R1", 0, 0))
	d := buildComponent(inst, testSymbols["R"], colors)

	// body, two pins with end circles, one visible field
	require.Len(t, d.Ops, 6)
	assert.Equal(t, renderer.OpPolyline, d.Ops[0].Kind)
	assert.Len(t, d.Ops[0].Points, 5, "rectangle is closed")
	assert.Equal(t, []geometry.Point2{{X: 0, Y: 150}, {X: 0, Y: 100}}, d.Ops[1].Points)
	assert.Equal(t, renderer.OpCircle, d.Ops[2].Kind)
	assert.Equal(t, "R1", d.Ops[5].Content)
	assert.Equal(t, colors.Field, d.Ops[5].TextStyle.Color)
}

func TestComponentDrawableUnitsAndPins(t *testing.T) {
	colors := GetSchematicColors(ThemeDark)
	inst := identifiedComponent(t, legacy.ComponentInstance{
		Name: "BUF", Unit: 1, Convert: 1, Rotation: geometry.Identity(),
	})
	d := buildComponent(inst, testSymbols["BUF"], colors)

	// filled polygon (fill + outline), pin line, end circle, number, name
	require.Len(t, d.Ops, 6)
	assert.True(t, d.Ops[0].Style.Filled)
	assert.Equal(t, colors.SymbolFill, d.Ops[0].Style.Color)
	assert.False(t, d.Ops[1].Style.Filled)

	number, name := d.Ops[4], d.Ops[5]
	assert.Equal(t, "1", number.Content)
	assert.Equal(t, geometry.Pt(-150, 0), number.Center)
	assert.Equal(t, geometry.JustifyRight, number.TextStyle.HJustify)
	assert.Equal(t, geometry.Horizontal, number.TextStyle.Orientation)
	assert.Equal(t, "IN", name.Content)
	assert.Equal(t, geometry.Pt(-80, 0), name.Center)
	assert.Equal(t, geometry.JustifyLeft, name.TextStyle.HJustify)

	inst.Unit = 2
	inst.Rotation = geometry.RotationZ(math.Pi / 2)
	d = buildComponent(inst, testSymbols["BUF"], colors)
	require.Len(t, d.Ops, 5)
	assert.Equal(t, renderer.OpCircle, d.Ops[0].Kind)
	assert.Equal(t, geometry.Vertical, d.Ops[3].TextStyle.Orientation)
	assert.Equal(t, geometry.JustifyRight, d.Ops[3].TextStyle.HJustify)
}

func TestWireStyles(t *testing.T) {
	colors := GetSchematicColors(ThemeLight)
	seg := func(kind legacy.WireKind) schematic.WireSegment {
		return identifiedWire(t, legacy.WireSegment{Kind: kind, End: geometry.Pt(100, 0)})
	}

	wire := buildWire(seg(legacy.KindWire), colors).Ops[0].Style
	bus := buildWire(seg(legacy.KindBus), colors).Ops[0].Style
	dotted := buildWire(seg(legacy.KindDotted), colors).Ops[0].Style

	assert.Greater(t, bus.Width, wire.Width)
	assert.Equal(t, colors.Bus, bus.Color)
	assert.True(t, dotted.Dashed)
	assert.False(t, wire.Dashed)
}

func TestDrawSchema(t *testing.T) {
	f := newFixture(t, testSymbols)
	f.schema.AddComponent(resistorAt("R1", 0, 0))
	f.schema.AddWire(legacy.WireSegment{Start: geometry.Pt(0, 150), End: geometry.Pt(0, 500)})
	f.schema.Load(&legacy.Schematic{
		Labels:        []legacy.Label{{Position: geometry.Pt(0, 500), Text: "VIN", Size: 60}},
		Junctions:     []legacy.Junction{{Position: geometry.Pt(0, 150)}},
		NoConnections: []legacy.NoConnection{{Position: geometry.Pt(0, -150)}},
	})

	f.sync.Receive(schematic.DrawSchema{})
	ops := f.target.Ops()
	require.Len(t, ops, 6+1+1+1+2)
	assert.Equal(t, "VIN", ops[7].Content)
	assert.Equal(t, renderer.OpCircle, ops[8].Kind)
	assert.True(t, ops[8].Style.Filled)
}

func TestDrawCullsOutsideView(t *testing.T) {
	f := newFixture(t, testSymbols)
	f.schema.AddComponent(resistorAt("R1", 0, 0))
	f.schema.AddComponent(resistorAt("R2", 100000, 0))

	f.sync.Receive(schematic.ResizeDrawArea{Width: 800, Height: 600})
	assert.Equal(t, 800, f.camera.ScreenWidth)

	f.sync.Receive(schematic.DrawSchema{})
	assert.Equal(t, 1, f.target.Count(renderer.OpText), "only R1 is in view")

	f.target.Reset()
	f.camera.CenterX = 100000
	f.sync.Receive(schematic.ViewStateChanged{})
	f.sync.Receive(schematic.DrawSchema{})
	ops := f.target.Ops()
	require.Len(t, ops, 6)
	assert.Equal(t, "R2", ops[5].Content)
}

func TestSynchronizerMetrics(t *testing.T) {
	m := &countingMetrics{rebuilds: map[string]int{}}
	f := newFixture(t, testSymbols, WithMetrics(m))

	id := f.schema.AddComponent(resistorAt("R1", 0, 0))
	require.NoError(t, f.schema.RotateComponent(id))
	w := f.schema.AddWire(legacy.WireSegment{End: geometry.Pt(1, 0)})
	require.NoError(t, f.schema.RemoveWire(w))

	assert.Equal(t, 1, m.entries)
	assert.Equal(t, map[string]int{"add_component": 1, "update_component": 1, "add_wire": 1}, m.rebuilds)
}

func TestIgnoredMessages(t *testing.T) {
	f := newFixture(t, testSymbols)
	f.sync.Receive(schematic.OpenComponent{Library: "device", Name: "R"})
	f.sync.Receive(schematic.DrawComponent{})
	assert.Zero(t, f.sync.Len())
	assert.Empty(t, f.target.Ops())
}

func TestFixtureRoundTrip(t *testing.T) {
	libs := library.New(nil)
	require.NoError(t, libs.LoadFiles(filepath.Join("..", "..", "..", "..", "testdata", "kicad.lib")))
	file, err := legacy.ParseSchematicFile(filepath.Join("..", "..", "..", "..", "testdata", "kicad.sch"))
	require.NoError(t, err)

	f := newFixture(t, libs)
	f.schema.Load(file)

	resolved := 0
	for _, c := range file.Components {
		if _, ok := libs.Resolve(c.Name); ok {
			resolved++
		}
	}
	assert.Equal(t, resolved+len(file.Wires), f.sync.Len())

	f.sync.Receive(schematic.DrawSchema{})
	assert.NotEmpty(t, f.target.Ops())
}
