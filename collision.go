package collide

import (
	"math"

	"github.com/setanarut/vec"
)

// NarrowPhase computes precise contacts between two placed shapes. It must
// return the same contacts in the same order for the same input.
type NarrowPhase interface {
	Collide(left *CollisionShape, leftPose Transform, right *CollisionShape, rightPose Transform) []Contact
}

// NarrowPhaseFunc adapts a function to NarrowPhase.
type NarrowPhaseFunc func(left *CollisionShape, leftPose Transform, right *CollisionShape, rightPose Transform) []Contact

func (f NarrowPhaseFunc) Collide(left *CollisionShape, leftPose Transform, right *CollisionShape, rightPose Transform) []Contact {
	return f(left, leftPose, right, rightPose)
}

// ShapeNarrowPhase collides every primitive of one shape with every
// primitive of the other and reports one contact per touching primitive
// pair, in primitive order.
type ShapeNarrowPhase struct{}

func (ShapeNarrowPhase) Collide(left *CollisionShape, leftPose Transform, right *CollisionShape, rightPose Transform) []Contact {
	var contacts []Contact
	strategy := combineStrategy(left.Strategy, right.Strategy)
	for _, lp := range left.Primitives {
		lt := leftPose.Mult(lp.Offset)
		lbb := lp.Primitive.Bound(lt)
		for _, rp := range right.Primitives {
			rt := rightPose.Mult(rp.Offset)
			if !lbb.Intersects(rp.Primitive.Bound(rt)) {
				continue
			}
			if contact, ok := Collide(lp.Primitive, lt, rp.Primitive, rt); ok {
				contact.Strategy = strategy
				contacts = append(contacts, contact)
			}
		}
	}
	return contacts
}

// FilteredNarrowPhase runs Narrow only for pairs whose collider types Accept allows.
type FilteredNarrowPhase struct {
	Narrow NarrowPhase
	Accept func(a, b CollisionType) bool
}

func (f FilteredNarrowPhase) Collide(left *CollisionShape, leftPose Transform, right *CollisionShape, rightPose Transform) []Contact {
	if f.Accept != nil && !f.Accept(left.Type, right.Type) {
		return nil
	}
	return f.Narrow.Collide(left, leftPose, right, rightPose)
}

type collisionInfo struct {
	a, b   Primitive
	ta, tb Transform

	contact Contact
	hit     bool
}

func (info *collisionInfo) pushContact(n vec.Vec2, depth float64, p1, p2 vec.Vec2) {
	info.contact = NewContact(n, depth, p1, p2)
	info.hit = true
}

type collisionFunc func(info *collisionInfo)

var builtinCollisionFuncs = [primitiveKindNum * primitiveKindNum]collisionFunc{
	circleToCircle,
	collisionError,
	circleToPolygon,
	polygonToPolygon,
}

// Collide tests two placed primitives. The contact normal points from a to b.
// Primitives of unknown kinds never collide here; they need their own NarrowPhase.
func Collide(a Primitive, ta Transform, b Primitive, tb Transform) (Contact, bool) {
	if !knownKind(a.Kind()) || !knownKind(b.Kind()) {
		return Contact{}, false
	}
	info := collisionInfo{a: a, b: b, ta: ta, tb: tb}

	// Make sure the primitive kinds are in order.
	swapped := a.Kind() > b.Kind()
	if swapped {
		info.a, info.b = b, a
		info.ta, info.tb = tb, ta
	}

	builtinCollisionFuncs[info.a.Kind()+info.b.Kind()*primitiveKindNum](&info)
	if !info.hit {
		return Contact{}, false
	}
	if swapped {
		return info.contact.flip(), true
	}
	return info.contact, true
}

func knownKind(k PrimitiveKind) bool {
	return k >= 0 && k < primitiveKindNum
}

func collisionError(_ *collisionInfo) {
	panic("primitive kinds are not sorted")
}

func circleToCircle(info *collisionInfo) {
	c1 := info.a.(*Circle)
	c2 := info.b.(*Circle)
	p1 := c1.transformC(info.ta)
	p2 := c2.transformC(info.tb)

	mindist := c1.Radius + c2.Radius
	delta := p2.Sub(p1)
	distsq := delta.Dot(delta)

	if distsq < mindist*mindist {
		dist := math.Sqrt(distsq)
		n := vec.Vec2{X: 1, Y: 0}
		if dist != 0 {
			n = delta.Scale(1.0 / dist)
		}
		info.pushContact(n, mindist-dist, p1.Add(n.Scale(c1.Radius)), p2.Add(n.Scale(-c2.Radius)))
	}
}

func circleToPolygon(info *collisionInfo) {
	circle := info.a.(*Circle)
	planes := info.b.(*Polygon).transformPlanes(info.tb)
	center := circle.transformC(info.ta)
	r := circle.Radius

	// Largest signed distance from an edge plane. It never exceeds the real
	// distance to a convex polygon.
	maxS := -infinity
	var face int
	for i, plane := range planes {
		s := plane.N.Dot(center.Sub(plane.V0))
		if s > maxS {
			maxS = s
			face = i
		}
	}
	if maxS > r {
		return
	}

	if maxS <= 0 {
		// Center is inside, push out through the nearest face.
		fn := planes[face].N
		n := fn.Neg()
		info.pushContact(n, r-maxS, center.Add(n.Scale(r)), center.Sub(fn.Scale(maxS)))
		return
	}

	closest := planes[0].V0
	minDistSq := infinity
	for i := range planes {
		q := closestPointOnSegment(center, planes[i].V0, planes[(i+1)%len(planes)].V0)
		delta := q.Sub(center)
		if d := delta.Dot(delta); d < minDistSq {
			minDistSq = d
			closest = q
		}
	}
	dist := math.Sqrt(minDistSq)
	if dist >= r {
		return
	}
	n := closest.Sub(center).Scale(1 / dist)
	info.pushContact(n, r-dist, center.Add(n.Scale(r)), closest)
}

func polygonToPolygon(info *collisionInfo) {
	planesA := info.a.(*Polygon).transformPlanes(info.ta)
	planesB := info.b.(*Polygon).transformPlanes(info.tb)

	sepA, faceA, deepestB := findMaxSeparation(planesA, planesB)
	if sepA >= 0 {
		return
	}
	sepB, faceB, deepestA := findMaxSeparation(planesB, planesA)
	if sepB >= 0 {
		return
	}

	// The face with the least penetration is the reference face.
	if sepA >= sepB {
		n := planesA[faceA].N
		info.pushContact(n, -sepA, deepestB.Sub(n.Scale(sepA)), deepestB)
		return
	}
	fn := planesB[faceB].N
	info.pushContact(fn.Neg(), -sepB, deepestA, deepestA.Sub(fn.Scale(sepB)))
}

// findMaxSeparation returns the face of ref along which inc is least deep,
// that separation, and the deepest vertex of inc along it.
func findMaxSeparation(ref, inc []SplittingPlane) (float64, int, vec.Vec2) {
	best := -infinity
	var face int
	var deepest vec.Vec2
	for i, plane := range ref {
		minD := infinity
		var v vec.Vec2
		for _, q := range inc {
			if d := plane.N.Dot(q.V0.Sub(plane.V0)); d < minD {
				minD = d
				v = q.V0
			}
		}
		if minD > best {
			best = minD
			face = i
			deepest = v
		}
	}
	return best, face, deepest
}
