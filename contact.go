package collide

import (
	"fmt"

	"github.com/setanarut/vec"
)

// Contact describes how two bodies touch.
type Contact struct {
	Strategy CollisionStrategy
	// Normal points from the first body towards the second.
	Normal vec.Vec2
	// PenetrationDepth is how far the bodies overlap along Normal.
	PenetrationDepth float64
	// PointA and PointB are witness points on the surface of each body.
	PointA, PointB vec.Vec2
}

// NewContact returns a full resolution contact.
func NewContact(normal vec.Vec2, depth float64, pointA, pointB vec.Vec2) Contact {
	return Contact{
		Strategy:         FullResolution,
		Normal:           normal,
		PenetrationDepth: depth,
		PointA:           pointA,
		PointB:           pointB,
	}
}

// flip swaps the roles of the two bodies.
func (c Contact) flip() Contact {
	c.Normal = c.Normal.Neg()
	c.PointA, c.PointB = c.PointB, c.PointA
	return c
}

// ContactEvent reports one contact between two bodies.
type ContactEvent[ID comparable] struct {
	Bodies  [2]ID
	Contact Contact
}

// NewContactEvent pairs a contact with the bodies it belongs to.
func NewContactEvent[ID comparable](a, b ID, contact Contact) ContactEvent[ID] {
	return ContactEvent[ID]{Bodies: [2]ID{a, b}, Contact: contact}
}

// newSimpleEvent is a bound level event with no contact geometry.
func newSimpleEvent[ID comparable](a, b ID) ContactEvent[ID] {
	return ContactEvent[ID]{Bodies: [2]ID{a, b}, Contact: Contact{Strategy: CollisionOnly}}
}

// Pair returns the bodies of the event as a pair.
func (e ContactEvent[ID]) Pair() Pair[ID] {
	return Pair[ID]{e.Bodies[0], e.Bodies[1]}
}

func (e ContactEvent[ID]) String() string {
	return fmt.Sprintf("%v <-> %v %s depth %v", e.Bodies[0], e.Bodies[1], e.Contact.Strategy, e.Contact.PenetrationDepth)
}
