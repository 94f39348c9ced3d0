// Package schematic owns the authoritative schematic model: placed
// components and wire segments with stable identities, plus the
// read-only annotations of a loaded file.
//
// Every mutation follows release-before-notify: the write lock is held
// while the state changes and a value snapshot is taken, the lock is
// released, and only then is exactly one notification sent. Listeners
// may therefore read the Schema from inside Receive.
package schematic

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/event"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/library"
)

// ErrNotFound is returned for identities the Schema does not hold.
var ErrNotFound = errors.New("schematic: not found")

// Publisher is the sending half of an event bus.
type Publisher interface {
	Send(msg event.Message)
}

// quarterTurn is composed onto a component's orientation by
// RotateComponent.
var quarterTurn = geometry.RotationZ(math.Pi / 2)

// Schema is the single mutation entry point for a schematic.
type Schema struct {
	mu         sync.RWMutex
	components []ComponentInstance
	wires      []WireSegment
	labels     []legacy.Label
	junctions  []legacy.Junction
	noConns    []legacy.NoConnection
	notes      []legacy.Note

	bus    Publisher
	logger *slog.Logger
}

// New creates an empty Schema publishing to bus. A nil logger uses
// slog.Default.
func New(bus Publisher, logger *slog.Logger) *Schema {
	if logger == nil {
		logger = slog.Default()
	}
	return &Schema{bus: bus, logger: logger}
}

// Load inserts every component and wire of a parsed file, one
// notification each, then stores the annotations and announces them
// with a single AddAnnotations.
func (s *Schema) Load(file *legacy.Schematic) {
	for _, c := range file.Components {
		s.AddComponent(c)
	}
	for _, w := range file.Wires {
		s.AddWire(w)
	}

	s.mu.Lock()
	s.labels = append(s.labels, file.Labels...)
	s.junctions = append(s.junctions, file.Junctions...)
	s.noConns = append(s.noConns, file.NoConnections...)
	s.notes = append(s.notes, file.Notes...)
	msg := AddAnnotations{
		Labels:        append([]legacy.Label(nil), file.Labels...),
		Junctions:     append([]legacy.Junction(nil), file.Junctions...),
		NoConnections: append([]legacy.NoConnection(nil), file.NoConnections...),
	}
	s.mu.Unlock()

	s.logger.Info("schematic loaded",
		"components", len(file.Components),
		"wires", len(file.Wires),
		"labels", len(file.Labels))
	s.bus.Send(msg)
}

// AddComponent assigns a fresh identity, stores the instance and emits
// AddComponent.
func (s *Schema) AddComponent(c legacy.ComponentInstance) uuid.UUID {
	inst := ComponentInstance{id: uuid.New(), ComponentInstance: c.Clone()}

	s.mu.Lock()
	s.components = append(s.components, inst)
	snapshot := inst.Clone()
	s.mu.Unlock()

	s.logger.Debug("component added", "id", inst.id, "reference", inst.Reference)
	s.bus.Send(AddComponent{Component: snapshot})
	return inst.id
}

// AddWire assigns a fresh identity, stores the segment and emits AddWire.
func (s *Schema) AddWire(w legacy.WireSegment) uuid.UUID {
	seg := WireSegment{id: uuid.New(), WireSegment: w}

	s.mu.Lock()
	s.wires = append(s.wires, seg)
	s.mu.Unlock()

	s.logger.Debug("wire added", "id", seg.id, "kind", seg.Kind)
	s.bus.Send(AddWire{Wire: seg})
	return seg.id
}

// UpdateWire replaces the stored segment with the same ID and emits
// UpdateWire.
func (s *Schema) UpdateWire(w WireSegment) error {
	s.mu.Lock()
	i := s.wireIndex(w.id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: wire %s", ErrNotFound, w.id)
	}
	s.wires[i] = w
	s.mu.Unlock()

	s.logger.Debug("wire updated", "id", w.id)
	s.bus.Send(UpdateWire{Wire: w})
	return nil
}

// RemoveWire deletes a segment and emits RemoveWire with its last state.
func (s *Schema) RemoveWire(id uuid.UUID) error {
	s.mu.Lock()
	i := s.wireIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: wire %s", ErrNotFound, id)
	}
	removed := s.wires[i]
	s.wires = append(s.wires[:i], s.wires[i+1:]...)
	s.mu.Unlock()

	s.logger.Debug("wire removed", "id", id)
	s.bus.Send(RemoveWire{Wire: removed})
	return nil
}

// RotateComponent composes the orientation with a quarter turn
// counter-clockwise and emits UpdateComponent.
func (s *Schema) RotateComponent(id uuid.UUID) error {
	return s.updateComponent(id, func(c *ComponentInstance) {
		c.Rotation = c.Rotation.Mul(quarterTurn)
	})
}

// MoveComponent sets the absolute position to origin + v and emits
// UpdateComponent. It does not translate relative to the current
// position.
func (s *Schema) MoveComponent(id uuid.UUID, v geometry.Vector2) error {
	return s.updateComponent(id, func(c *ComponentInstance) {
		c.Position = geometry.Point2{}.Add(v)
	})
}

func (s *Schema) updateComponent(id uuid.UUID, mutate func(*ComponentInstance)) error {
	s.mu.Lock()
	i := s.componentIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: component %s", ErrNotFound, id)
	}
	mutate(&s.components[i])
	snapshot := s.components[i].Clone()
	s.mu.Unlock()

	s.logger.Debug("component updated", "id", id, "reference", snapshot.Reference)
	s.bus.Send(UpdateComponent{Component: snapshot})
	return nil
}

// BoundingBox folds Merge over the box of every instance whose symbol
// resolves. Unresolved instances are skipped. With nothing to fold the
// result is the degenerate box at the origin.
func (s *Schema) BoundingBox(libs library.Resolver) geometry.AABB {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		bb    geometry.AABB
		first = true
	)
	for _, c := range s.components {
		symbol, ok := libs.Resolve(c.Name)
		if !ok {
			continue
		}
		box := c.BoundingBox(symbol)
		if first {
			bb, first = box, false
			continue
		}
		bb = bb.Merge(box)
	}
	return bb
}

// Component returns a snapshot of the instance with the given ID.
func (s *Schema) Component(id uuid.UUID) (ComponentInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.componentIndex(id)
	if i < 0 {
		return ComponentInstance{}, fmt.Errorf("%w: component %s", ErrNotFound, id)
	}
	return s.components[i].Clone(), nil
}

// Wire returns the segment with the given ID.
func (s *Schema) Wire(id uuid.UUID) (WireSegment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.wireIndex(id)
	if i < 0 {
		return WireSegment{}, fmt.Errorf("%w: wire %s", ErrNotFound, id)
	}
	return s.wires[i], nil
}

// ComponentByReference finds an instance by reference designator.
func (s *Schema) ComponentByReference(ref string) (ComponentInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.components {
		if c.Reference == ref {
			return c.Clone(), nil
		}
	}
	return ComponentInstance{}, fmt.Errorf("%w: reference %q", ErrNotFound, ref)
}

// ComponentAt returns the last inserted instance whose box contains p.
func (s *Schema) ComponentAt(p geometry.Point2, libs library.Resolver) (ComponentInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.components) - 1; i >= 0; i-- {
		c := s.components[i]
		symbol, ok := libs.Resolve(c.Name)
		if ok && c.BoundingBox(symbol).Contains(p) {
			return c.Clone(), nil
		}
	}
	return ComponentInstance{}, fmt.Errorf("%w: component at (%g, %g)", ErrNotFound, p.X, p.Y)
}

// Components returns snapshots of all instances in insertion order.
func (s *Schema) Components() []ComponentInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ComponentInstance, len(s.components))
	for i, c := range s.components {
		out[i] = c.Clone()
	}
	return out
}

// Wires returns all segments in insertion order.
func (s *Schema) Wires() []WireSegment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]WireSegment(nil), s.wires...)
}

func (s *Schema) Labels() []legacy.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]legacy.Label(nil), s.labels...)
}

func (s *Schema) Junctions() []legacy.Junction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]legacy.Junction(nil), s.junctions...)
}

func (s *Schema) NoConnections() []legacy.NoConnection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]legacy.NoConnection(nil), s.noConns...)
}

func (s *Schema) Notes() []legacy.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]legacy.Note(nil), s.notes...)
}

// References returns every reference designator, sorted.
func (s *Schema) References() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := make([]string, 0, len(s.components))
	for _, c := range s.components {
		refs = append(refs, c.Reference)
	}
	sort.Strings(refs)
	return refs
}

// Unresolved returns the distinct symbol names that libs cannot resolve,
// sorted.
func (s *Schema) Unresolved(libs library.Resolver) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var names []string
	for _, c := range s.components {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		if _, ok := libs.Resolve(c.Name); !ok {
			names = append(names, c.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Schema) componentIndex(id uuid.UUID) int {
	for i := range s.components {
		if s.components[i].id == id {
			return i
		}
	}
	return -1
}

func (s *Schema) wireIndex(id uuid.UUID) int {
	for i := range s.wires {
		if s.wires[i].id == id {
			return i
		}
	}
	return -1
}
