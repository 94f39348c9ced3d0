package schematic

import (
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
)

// Notifications published on the event bus. Entity payloads are full
// post-mutation snapshots, never deltas.

type AddComponent struct {
	Component ComponentInstance
}

type UpdateComponent struct {
	Component ComponentInstance
}

type AddWire struct {
	Wire WireSegment
}

type UpdateWire struct {
	Wire WireSegment
}

type RemoveWire struct {
	Wire WireSegment
}

// AddAnnotations carries the read-only entities of a loaded schematic.
type AddAnnotations struct {
	Labels        []legacy.Label
	Junctions     []legacy.Junction
	NoConnections []legacy.NoConnection
}

// OpenComponent asks a component browser to show a library symbol.
type OpenComponent struct {
	Library string
	Name    string
}

// DrawComponent triggers a redraw of the open library symbol.
type DrawComponent struct{}

// DrawSchema triggers a redraw of the schematic.
type DrawSchema struct{}

// ResizeDrawArea reports a new drawable size in pixels.
type ResizeDrawArea struct {
	Width  int
	Height int
}

// ViewStateChanged reports a pan, zoom or resize of the view.
type ViewStateChanged struct{}

func (AddComponent) Kind() string     { return "add_component" }
func (UpdateComponent) Kind() string  { return "update_component" }
func (AddWire) Kind() string          { return "add_wire" }
func (UpdateWire) Kind() string       { return "update_wire" }
func (RemoveWire) Kind() string       { return "remove_wire" }
func (AddAnnotations) Kind() string   { return "add_annotations" }
func (OpenComponent) Kind() string    { return "open_component" }
func (DrawComponent) Kind() string    { return "draw_component" }
func (DrawSchema) Kind() string       { return "draw_schema" }
func (ResizeDrawArea) Kind() string   { return "resize_draw_area" }
func (ViewStateChanged) Kind() string { return "view_state_changed" }
