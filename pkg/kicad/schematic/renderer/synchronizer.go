package renderer

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/event"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/library"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/renderer"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/schematic"
)

// CacheMetrics observes the render cache.
type CacheMetrics interface {
	// EntriesChanged reports the number of cached entities.
	EntriesChanged(n int)
	// Rebuilt counts a drawable built for a message kind.
	Rebuilt(kind string)
}

type nopCacheMetrics struct{}

func (nopCacheMetrics) EntriesChanged(int) {}
func (nopCacheMetrics) Rebuilt(string)     {}

// NopCacheMetrics discards all observations.
func NopCacheMetrics() CacheMetrics { return nopCacheMetrics{} }

// Option configures a Synchronizer.
type Option func(*Synchronizer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m CacheMetrics) Option {
	return func(s *Synchronizer) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithColors(colors *SchematicColors) Option {
	return func(s *Synchronizer) {
		if colors != nil {
			s.colors = colors
		}
	}
}

type entry struct {
	id       uuid.UUID
	drawable Drawable
}

// Synchronizer is a bus listener that keeps one drawable per schema
// entity, keyed by identity. It learns about the schema only through
// messages.
//
// Add inserts or overwrites, Update rebuilds and replaces in place,
// Remove of an unknown identity does nothing. Draw order is insertion
// order. Replacement happens under the cache lock, so Draw never sees an
// entity missing half-way through an update.
type Synchronizer struct {
	libs    library.Resolver
	target  renderer.Target
	camera  *renderer.Camera
	colors  *SchematicColors
	logger  *slog.Logger
	metrics CacheMetrics

	mu          sync.Mutex
	entries     []entry
	index       map[uuid.UUID]int
	annotations []Drawable
	visible     geometry.AABB
	cull        bool
}

// NewSynchronizer creates a synchronizer that resolves symbols through
// libs and draws to target with camera's view.
func NewSynchronizer(libs library.Resolver, target renderer.Target, camera *renderer.Camera, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		libs:    libs,
		target:  target,
		camera:  camera,
		colors:  GetSchematicColors(ThemeLight),
		logger:  slog.Default(),
		metrics: NopCacheMetrics(),
		index:   make(map[uuid.UUID]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Receive implements event.Listener.
func (s *Synchronizer) Receive(msg event.Message) {
	switch m := msg.(type) {
	case schematic.AddComponent:
		if d, ok := s.component(m.Component, msg.Kind()); ok {
			s.upsert(m.Component.ID(), d)
		}
	case schematic.UpdateComponent:
		if d, ok := s.component(m.Component, msg.Kind()); ok {
			s.upsert(m.Component.ID(), d)
		} else {
			s.remove(m.Component.ID())
		}
	case schematic.AddWire:
		s.upsert(m.Wire.ID(), s.wire(m.Wire, msg.Kind()))
	case schematic.UpdateWire:
		s.upsert(m.Wire.ID(), s.wire(m.Wire, msg.Kind()))
	case schematic.RemoveWire:
		s.remove(m.Wire.ID())
	case schematic.AddAnnotations:
		s.setAnnotations(m)
	case schematic.DrawSchema:
		s.Draw()
	case schematic.ResizeDrawArea:
		s.resize(m.Width, m.Height)
	case schematic.ViewStateChanged:
		s.refreshView()
	default:
		// OpenComponent and DrawComponent belong to the symbol browser
		s.logger.Debug("message ignored", "kind", msg.Kind())
	}
}

func (s *Synchronizer) component(c schematic.ComponentInstance, kind string) (Drawable, bool) {
	sym, ok := s.libs.Resolve(c.Name)
	if !ok {
		s.logger.Warn("symbol not found", "name", c.Name, "reference", c.Reference, "id", c.ID())
		return Drawable{}, false
	}
	s.metrics.Rebuilt(kind)
	return buildComponent(c, sym, s.colors), true
}

func (s *Synchronizer) wire(w schematic.WireSegment, kind string) Drawable {
	s.metrics.Rebuilt(kind)
	return buildWire(w, s.colors)
}

// upsert stores d under id, replacing an existing entry in place.
func (s *Synchronizer) upsert(id uuid.UUID, d Drawable) {
	s.mu.Lock()
	if i, ok := s.index[id]; ok {
		s.entries[i].drawable = d
	} else {
		s.index[id] = len(s.entries)
		s.entries = append(s.entries, entry{id: id, drawable: d})
	}
	n := len(s.entries)
	s.mu.Unlock()

	s.metrics.EntriesChanged(n)
}

func (s *Synchronizer) remove(id uuid.UUID) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].id] = j
	}
	n := len(s.entries)
	s.mu.Unlock()

	s.metrics.EntriesChanged(n)
}

func (s *Synchronizer) setAnnotations(m schematic.AddAnnotations) {
	var out []Drawable
	for _, l := range m.Labels {
		out = append(out, buildLabel(l, s.colors))
	}
	for _, j := range m.Junctions {
		out = append(out, buildJunction(j, s.colors))
	}
	for _, nc := range m.NoConnections {
		out = append(out, buildNoConnect(nc, s.colors))
	}
	s.metrics.Rebuilt(m.Kind())

	s.mu.Lock()
	s.annotations = append(s.annotations, out...)
	s.mu.Unlock()
}

func (s *Synchronizer) resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.UpdateScreenSize(width, height)
	s.updateVisible()
}

func (s *Synchronizer) refreshView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateVisible()
}

func (s *Synchronizer) updateVisible() {
	s.visible = s.camera.VisibleBounds()
	s.cull = s.camera.ScreenWidth > 0 && s.camera.ScreenHeight > 0
}

// Draw issues every cached drawable to the target: entities in
// insertion order, then annotations. Drawables outside the visible
// area are skipped once the view is known.
func (s *Synchronizer) Draw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	drawn := 0
	for _, e := range s.entries {
		if s.cull && !e.drawable.Bounds.Intersects(s.visible) {
			continue
		}
		e.drawable.Draw(s.target)
		drawn++
	}
	for _, d := range s.annotations {
		if s.cull && !d.Bounds.Intersects(s.visible) {
			continue
		}
		d.Draw(s.target)
	}
	s.logger.Debug("schema drawn", "entities", drawn, "cached", len(s.entries))
}

// Len returns the number of cached entities.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Drawable returns the cached drawable for id.
func (s *Synchronizer) Drawable(id uuid.UUID) (Drawable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return Drawable{}, false
	}
	return s.entries[i].drawable, true
}

// IDs returns the cached identities in draw order.
func (s *Synchronizer) IDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.id
	}
	return ids
}
