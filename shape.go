package collide

import (
	"fmt"
)

// PrimitiveKind orders primitives for the narrow phase dispatch table.
type PrimitiveKind int

const (
	KindCircle PrimitiveKind = iota
	KindPolygon

	primitiveKindNum
)

// Primitive is an immutable convex piece of geometry in local space.
type Primitive interface {
	Kind() PrimitiveKind
	// Bound returns the world bound of the primitive placed by transform.
	Bound(transform Transform) BB
}

// ShapePrimitive places a primitive inside its shape.
type ShapePrimitive struct {
	Primitive Primitive
	Offset    Transform
}

// CollisionShape is the collision geometry of one body: one or more
// primitives plus the settings the pipeline needs.
type CollisionShape struct {
	Primitives []ShapePrimitive
	// Enabled shapes are indexed; disabled ones are dropped from the index.
	Enabled  bool
	Strategy CollisionStrategy
	Mode     CollisionMode
	// Type classifies the body, e.g. for filtering.
	Type CollisionType
}

// NewCollisionShape returns an enabled shape made of primitives.
func NewCollisionShape(strategy CollisionStrategy, mode CollisionMode, primitives ...ShapePrimitive) *CollisionShape {
	return &CollisionShape{
		Primitives: primitives,
		Enabled:    true,
		Strategy:   strategy,
		Mode:       mode,
	}
}

// NewSimpleShape returns a discrete full-resolution shape with one primitive at the body origin.
func NewSimpleShape(p Primitive) *CollisionShape {
	return NewCollisionShape(FullResolution, Discrete, ShapePrimitive{p, NewTransformIdentity()})
}

func (s CollisionShape) String() string {
	return fmt.Sprintf("shape(%d primitives, type %d)", len(s.Primitives), s.Type)
}

// Bound returns the union of the primitive bounds at pose.
func (s *CollisionShape) Bound(pose Transform) BB {
	bb := BB{infinity, infinity, -infinity, -infinity}
	for _, p := range s.Primitives {
		bb = bb.Merge(p.Primitive.Bound(pose.Mult(p.Offset)))
	}
	return bb
}

// SweptBound computes the bound the index should hold for the shape.
// Discrete shapes use next when present, else current. Continuous shapes
// cover both poses.
func (s *CollisionShape) SweptBound(current Transform, next *Transform) BB {
	if next == nil {
		return s.Bound(current)
	}
	if s.Mode == Continuous {
		return s.Bound(current).Merge(s.Bound(*next))
	}
	return s.Bound(*next)
}
