package collide_test

import (
	"math/rand/v2"
	"testing"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/require"
)

func randomBB(r *rand.Rand) collide.BB {
	x, y := r.Float64()*100, r.Float64()*100
	w, h := 1+r.Float64()*8, 1+r.Float64()*8
	return collide.NewBB(x, y, x+w, y+h)
}

// pairKeys converts pairs to a set of ordered keys and fails on self pairs
// or duplicates.
func pairKeys(t *testing.T, pairs []collide.Pair[int]) map[[2]int]bool {
	t.Helper()
	keys := make(map[[2]int]bool, len(pairs))
	for _, p := range pairs {
		require.NotEqual(t, p.A, p.B, "self pair")
		k := [2]int{min(p.A, p.B), max(p.A, p.B)}
		require.False(t, keys[k], "duplicate pair %v", k)
		keys[k] = true
	}
	return keys
}

func bruteForcePairs(tree *collide.DynamicTree[int]) map[[2]int]bool {
	bounds := map[int]collide.BB{}
	tree.Each(func(id int, bb collide.BB) { bounds[id] = bb })
	keys := map[[2]int]bool{}
	for a, abb := range bounds {
		for b, bbb := range bounds {
			if a < b && abb.Intersects(bbb) {
				keys[[2]int{a, b}] = true
			}
		}
	}
	return keys
}

func TestDynamicTree(t *testing.T) {
	t.Run("Insert fattens leaves", func(t *testing.T) {
		tree := collide.NewDynamicTree[int](0.1)
		require.Equal(t, 0, tree.Height())

		require.True(t, tree.Upsert(1, collide.NewBB(0, 0, 2, 2)))
		require.Equal(t, 1, tree.Count())
		require.Equal(t, 1, tree.Height())
		require.True(t, tree.Contains(1))

		bb, ok := tree.Bound(1)
		require.True(t, ok)
		require.InDelta(t, -0.2, bb.L, 1e-12)
		require.InDelta(t, 2.2, bb.T, 1e-12)
	})

	t.Run("Upsert is idempotent", func(t *testing.T) {
		tree := collide.NewDynamicTree[int](0.1)
		tree.Upsert(1, collide.NewBB(0, 0, 2, 2))
		tree.Upsert(2, collide.NewBB(5, 5, 6, 6))
		before, _ := tree.Bound(1)

		require.False(t, tree.Upsert(1, collide.NewBB(0, 0, 2, 2)))
		require.False(t, tree.Upsert(1, collide.NewBB(0.1, 0.1, 2.1, 2.1)), "small motion stays in the fat bound")
		after, _ := tree.Bound(1)
		require.Equal(t, before, after)
		require.Equal(t, 2, tree.Count())

		require.True(t, tree.Upsert(1, collide.NewBB(10, 10, 12, 12)))
		moved, _ := tree.Bound(1)
		require.True(t, moved.Contains(collide.NewBB(10, 10, 12, 12)))
		require.Equal(t, 2, tree.Count())
	})

	t.Run("Remove", func(t *testing.T) {
		tree := collide.NewDynamicTree[int](0)
		tree.Upsert(1, collide.NewBB(0, 0, 2, 2))
		tree.Upsert(2, collide.NewBB(1, 1, 3, 3))
		tree.Upsert(3, collide.NewBB(2, 2, 4, 4))

		require.True(t, tree.Remove(2))
		require.False(t, tree.Remove(2))
		require.False(t, tree.Contains(2))
		require.Equal(t, 2, tree.Count())

		var found []int
		tree.Query(collide.NewBB(1.5, 1.5, 1.6, 1.6), func(id int) { found = append(found, id) })
		require.Equal(t, []int{1}, found)

		require.True(t, tree.Remove(1))
		require.True(t, tree.Remove(3))
		require.Equal(t, 0, tree.Count())
		require.Equal(t, 0, tree.Height())
		require.Empty(t, tree.OverlappingPairs())
	})

	t.Run("OverlappingPairs matches brute force", func(t *testing.T) {
		r := rand.New(rand.NewPCG(7, 11))
		tree := collide.NewDynamicTree[int](0)
		for id := range 300 {
			tree.Upsert(id, randomBB(r))
		}
		require.Equal(t, bruteForcePairs(tree), pairKeys(t, tree.OverlappingPairs()))

		// Move some, remove some, and check again.
		for id := range 300 {
			switch id % 3 {
			case 0:
				tree.Upsert(id, randomBB(r))
			case 1:
				tree.Remove(id)
			}
		}
		require.Equal(t, 200, tree.Count())
		require.Equal(t, bruteForcePairs(tree), pairKeys(t, tree.OverlappingPairs()))
		require.LessOrEqual(t, tree.Height(), tree.Count())
	})

	t.Run("Query", func(t *testing.T) {
		r := rand.New(rand.NewPCG(3, 5))
		tree := collide.NewDynamicTree[int](0.05)
		for id := range 100 {
			tree.Upsert(id, randomBB(r))
		}
		area := collide.NewBB(20, 20, 40, 40)

		got := map[int]bool{}
		tree.Query(area, func(id int) { got[id] = true })

		want := map[int]bool{}
		tree.Each(func(id int, bb collide.BB) {
			if bb.Intersects(area) {
				want[id] = true
			}
		})
		require.Equal(t, want, got)
	})

	t.Run("SegmentQuery", func(t *testing.T) {
		tree := collide.NewDynamicTree[int](0)
		tree.Upsert(1, collide.NewBB(2, -1, 3, 1))
		tree.Upsert(2, collide.NewBB(6, -1, 7, 1))
		tree.Upsert(3, collide.NewBB(4, 5, 5, 6))

		hits := map[int]bool{}
		tExit := tree.SegmentQuery(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, 1, func(id int) float64 {
			hits[id] = true
			return 1
		})
		require.Equal(t, 1.0, tExit)
		require.Equal(t, map[int]bool{1: true, 2: true}, hits)

		// Reporting a hit on the first box cuts the far one off.
		hits = map[int]bool{}
		tExit = tree.SegmentQuery(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, 1, func(id int) float64 {
			hits[id] = true
			if id == 1 {
				return 0.2
			}
			return 1
		})
		require.InDelta(t, 0.2, tExit, 1e-12)
		require.Equal(t, map[int]bool{1: true}, hits)
	})
}
