package schematic

import (
	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
)

// ComponentInstance is a placed symbol that has been inserted into a
// Schema. Only the Schema assigns identities.
type ComponentInstance struct {
	id uuid.UUID
	legacy.ComponentInstance
}

// ID is the identity assigned on insertion.
func (c ComponentInstance) ID() uuid.UUID { return c.id }

// Clone returns a deep copy.
func (c ComponentInstance) Clone() ComponentInstance {
	c.ComponentInstance = c.ComponentInstance.Clone()
	return c
}

// BoundingBox is the symbol's box rotated by the instance orientation and
// moved to the instance position. It is recomputed on every call.
func (c ComponentInstance) BoundingBox(symbol *legacy.Component) geometry.AABB {
	return c.Rotation.TransformAABB(symbol.BoundingBox()).Translate(c.Position.Vector())
}

// Transform maps symbol coordinates into world coordinates.
func (c ComponentInstance) Transform(p geometry.Point2) geometry.Point2 {
	return c.Rotation.TransformPoint(p).Add(c.Position.Vector())
}

// WireSegment is a wire, bus or graphic line inserted into a Schema.
type WireSegment struct {
	id uuid.UUID
	legacy.WireSegment
}

func (w WireSegment) ID() uuid.UUID { return w.id }

// BoundingBox is the box spanned by the two end points.
func (w WireSegment) BoundingBox() geometry.AABB {
	return geometry.NewAABB(w.Start, w.End)
}
