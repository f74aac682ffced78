package collide

import (
	"github.com/setanarut/vec"
)

// Circle is a disc of Radius around C in local space.
type Circle struct {
	C      vec.Vec2
	Radius float64
}

func (circle *Circle) Kind() PrimitiveKind {
	return KindCircle
}

func (circle *Circle) Bound(transform Transform) BB {
	return NewBBForCircle(transform.Apply(circle.C), circle.Radius)
}

// transformC returns the world center under transform.
func (circle *Circle) transformC(transform Transform) vec.Vec2 {
	return transform.Apply(circle.C)
}
