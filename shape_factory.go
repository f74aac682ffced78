package collide

import (
	"fmt"
	"slices"

	"github.com/setanarut/vec"
)

// NewCircle returns a circle primitive centered on offset.
func NewCircle(radius float64, offset vec.Vec2) *Circle {
	return &Circle{C: offset, Radius: radius}
}

// NewPolygon returns a convex polygon primitive. Clockwise input is
// reversed. It fails on fewer than three vertices, zero area or a
// concave outline.
func NewPolygon(verts []vec.Vec2) (*Polygon, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalidShape, len(verts))
	}
	area := signedArea(verts)
	if area == 0 {
		return nil, fmt.Errorf("%w: polygon has zero area", ErrInvalidShape)
	}
	ccw := slices.Clone(verts)
	if area < 0 {
		slices.Reverse(ccw)
	}
	for i := range ccw {
		a, b, c := ccw[i], ccw[(i+1)%len(ccw)], ccw[(i+2)%len(ccw)]
		if b.Sub(a).Cross(c.Sub(b)) < 0 {
			return nil, fmt.Errorf("%w: polygon is not convex at vertex %d", ErrInvalidShape, (i+1)%len(ccw))
		}
	}
	poly := &Polygon{}
	poly.setVerts(ccw)
	return poly, nil
}

// NewBox returns an axis-aligned box polygon of width w and height h centered on the origin.
func NewBox(w, h float64) *Polygon {
	return NewBoxForBB(NewBB(-w/2, -h/2, w/2, h/2))
}

// NewBoxForBB returns a box polygon covering bb.
func NewBoxForBB(bb BB) *Polygon {
	poly := &Polygon{}
	poly.setVerts([]vec.Vec2{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	})
	return poly
}

// NewCircleShape is a single circle shape of radius r.
func NewCircleShape(r float64, offset vec.Vec2) *CollisionShape {
	return NewSimpleShape(NewCircle(r, offset))
}

// NewBoxShape is a single box shape of width w and height h.
func NewBoxShape(w, h float64) *CollisionShape {
	return NewSimpleShape(NewBox(w, h))
}
