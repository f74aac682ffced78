package collide

import "github.com/setanarut/vec"

// SpatialIndex maps body identifiers to bounds and answers overlap queries.
// It is implemented by DynamicTree.
type SpatialIndex[ID comparable] interface {
	// Count returns the number of entries currently stored in the index.
	Count() int

	// Each calls f for every entry with its stored bound.
	Each(f func(id ID, bb BB))

	// Contains reports whether id has an entry.
	Contains(id ID) bool

	// Bound returns the stored (possibly fattened) bound of id.
	Bound(id ID) (BB, bool)

	// Upsert inserts id with bb, or updates its entry in place.
	// It reports whether the stored bound changed.
	Upsert(id ID, bb BB) bool

	// Remove deletes the entry of id, if it exists.
	Remove(id ID) bool

	// Query calls f for every entry whose bound intersects bb.
	Query(bb BB, f func(id ID))

	// SegmentQuery walks entries whose bounds are hit by the segment a-b,
	// nearest first. f returns the hit fraction for its entry, which
	// shortens the remaining query.
	SegmentQuery(a, b vec.Vec2, tExit float64, f func(id ID) float64) float64

	// OverlappingPairs enumerates each pair of entries with intersecting bounds once.
	OverlappingPairs() []Pair[ID]
}

// Pair is an unordered pair of body identifiers.
type Pair[ID comparable] struct {
	A, B ID
}

// Reverse returns the pair with its sides swapped.
func (p Pair[ID]) Reverse() Pair[ID] {
	return Pair[ID]{p.B, p.A}
}

// Same reports whether p and o name the same two bodies in any order.
func (p Pair[ID]) Same(o Pair[ID]) bool {
	return p == o || p == o.Reverse()
}

// pairSet deduplicates unordered pairs and keeps first-seen order.
type pairSet[ID comparable] struct {
	seen  map[Pair[ID]]struct{}
	pairs []Pair[ID]
}

func newPairSet[ID comparable]() *pairSet[ID] {
	return &pairSet[ID]{seen: make(map[Pair[ID]]struct{})}
}

func (s *pairSet[ID]) add(a, b ID) {
	if a == b {
		return
	}
	p := Pair[ID]{a, b}
	if _, ok := s.seen[p]; ok {
		return
	}
	if _, ok := s.seen[p.Reverse()]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.pairs = append(s.pairs, p)
}
