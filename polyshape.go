package collide

import (
	"math"

	"github.com/setanarut/vec"
)

// SplittingPlane is a polygon edge: its start vertex and outward normal.
type SplittingPlane struct {
	V0, N vec.Vec2
}

// Polygon is a convex polygon in local space, wound counter-clockwise.
type Polygon struct {
	Planes []SplittingPlane
}

func (poly *Polygon) Kind() PrimitiveKind {
	return KindPolygon
}

func (poly *Polygon) Bound(transform Transform) BB {
	l := infinity
	r := -infinity
	b := infinity
	t := -infinity

	for _, plane := range poly.Planes {
		v := transform.Apply(plane.V0)
		l = math.Min(l, v.X)
		r = math.Max(r, v.X)
		b = math.Min(b, v.Y)
		t = math.Max(t, v.Y)
	}
	return BB{l, b, r, t}
}

// Count returns the number of vertices.
func (poly *Polygon) Count() int {
	return len(poly.Planes)
}

// transformPlanes places the planes in the world.
func (poly *Polygon) transformPlanes(transform Transform) []SplittingPlane {
	dst := make([]SplittingPlane, len(poly.Planes))
	for i, src := range poly.Planes {
		dst[i].V0 = transform.Apply(src.V0)
		dst[i].N = transform.ApplyVector(src.N)
	}
	return dst
}

// setVerts builds the planes from counter-clockwise vertices. Plane i runs
// from vertex i to vertex i+1.
func (poly *Polygon) setVerts(verts []vec.Vec2) {
	count := len(verts)
	poly.Planes = make([]SplittingPlane, count)
	for i := range count {
		a := verts[i]
		b := verts[(i+1)%count]
		poly.Planes[i] = SplittingPlane{V0: a, N: b.Sub(a).Unit().ReversePerp()}
	}
}

// signedArea is positive for counter-clockwise vertices.
func signedArea(verts []vec.Vec2) float64 {
	var area float64
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area * 0.5
}
