package collide

import (
	"slices"
)

// BroadPhase produces candidate pairs from the spatial index. dirty holds
// the bodies whose entries were refreshed this evaluation; implementations
// may use it to narrow their search or ignore it and scan everything. Pairs
// must not repeat and must not pair a body with itself. Not missing a true
// overlap is the implementation's responsibility.
type BroadPhase[ID comparable] interface {
	FindPotentials(index SpatialIndex[ID], dirty []ID) []Pair[ID]
}

// BroadPhaseFunc adapts a function to BroadPhase.
type BroadPhaseFunc[ID comparable] func(index SpatialIndex[ID], dirty []ID) []Pair[ID]

func (f BroadPhaseFunc[ID]) FindPotentials(index SpatialIndex[ID], dirty []ID) []Pair[ID] {
	return f(index, dirty)
}

// DbvtBroadPhase queries the index around every dirty entry, so its cost
// scales with the number of moving bodies. Overlaps between two bodies that
// did not change are not reported again.
type DbvtBroadPhase[ID comparable] struct{}

func (DbvtBroadPhase[ID]) FindPotentials(index SpatialIndex[ID], dirty []ID) []Pair[ID] {
	set := newPairSet[ID]()
	for _, id := range dirty {
		bb, ok := index.Bound(id)
		if !ok {
			continue
		}
		index.Query(bb, func(other ID) {
			set.add(id, other)
		})
	}
	return set.pairs
}

// IndexBroadPhase reports every overlapping pair the index holds, dirty or not.
type IndexBroadPhase[ID comparable] struct{}

func (IndexBroadPhase[ID]) FindPotentials(index SpatialIndex[ID], _ []ID) []Pair[ID] {
	return index.OverlappingPairs()
}

type indexEntry[ID comparable] struct {
	id ID
	bb BB
}

func collectEntries[ID comparable](index SpatialIndex[ID]) []indexEntry[ID] {
	entries := make([]indexEntry[ID], 0, index.Count())
	index.Each(func(id ID, bb BB) {
		entries = append(entries, indexEntry[ID]{id, bb})
	})
	return entries
}

// BruteForce tests every pair of entries. It ignores the dirty set.
type BruteForce[ID comparable] struct{}

func (BruteForce[ID]) FindPotentials(index SpatialIndex[ID], _ []ID) []Pair[ID] {
	entries := collectEntries(index)
	var pairs []Pair[ID]
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].bb.Intersects(entries[j].bb) {
				pairs = append(pairs, Pair[ID]{entries[i].id, entries[j].id})
			}
		}
	}
	return pairs
}

// SweepAxis selects the axis SweepAndPrune sorts on.
type SweepAxis uint8

const (
	SweepX SweepAxis = iota
	SweepY
)

// SweepAndPrune sorts entries along one axis and only tests entries whose
// intervals overlap on it. It ignores the dirty set.
type SweepAndPrune[ID comparable] struct {
	Axis SweepAxis
}

func (s SweepAndPrune[ID]) FindPotentials(index SpatialIndex[ID], _ []ID) []Pair[ID] {
	entries := collectEntries(index)
	lo, hi := s.interval()
	slices.SortFunc(entries, func(a, b indexEntry[ID]) int {
		switch {
		case lo(a.bb) < lo(b.bb):
			return -1
		case lo(a.bb) > lo(b.bb):
			return 1
		}
		return 0
	})

	var pairs []Pair[ID]
	active := make([]indexEntry[ID], 0, len(entries))
	for _, e := range entries {
		// Drop intervals that ended before this one starts.
		n := 0
		for _, a := range active {
			if hi(a.bb) >= lo(e.bb) {
				active[n] = a
				n++
			}
		}
		active = active[:n]

		for _, a := range active {
			if a.bb.Intersects(e.bb) {
				pairs = append(pairs, Pair[ID]{a.id, e.id})
			}
		}
		active = append(active, e)
	}
	return pairs
}

func (s SweepAndPrune[ID]) interval() (lo, hi func(BB) float64) {
	if s.Axis == SweepY {
		return func(bb BB) float64 { return bb.B }, func(bb BB) float64 { return bb.T }
	}
	return func(bb BB) float64 { return bb.L }, func(bb BB) float64 { return bb.R }
}
