package collide_test

import (
	"math/rand/v2"
	"testing"

	"github.com/setanarut/collide"
	"github.com/stretchr/testify/require"
)

func TestBroadPhases(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 1))
	tree := collide.NewDynamicTree[int](0)
	all := make([]int, 0, 200)
	for id := range 200 {
		tree.Upsert(id, randomBB(r))
		all = append(all, id)
	}
	want := bruteForcePairs(tree)
	require.NotEmpty(t, want)

	phases := map[string]collide.BroadPhase[int]{
		"index":       collide.IndexBroadPhase[int]{},
		"brute force": collide.BruteForce[int]{},
		"sweep x":     collide.SweepAndPrune[int]{Axis: collide.SweepX},
		"sweep y":     collide.SweepAndPrune[int]{Axis: collide.SweepY},
		"dbvt":        collide.DbvtBroadPhase[int]{},
	}
	for name, phase := range phases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, want, pairKeys(t, phase.FindPotentials(tree, all)))
		})
	}
}

func TestDbvtBroadPhaseOnlyDirty(t *testing.T) {
	tree := collide.NewDynamicTree[int](0)
	tree.Upsert(1, collide.NewBB(0, 0, 2, 2))
	tree.Upsert(2, collide.NewBB(1, 1, 3, 3))
	tree.Upsert(3, collide.NewBB(10, 10, 12, 12))
	tree.Upsert(4, collide.NewBB(11, 11, 13, 13))

	broad := collide.DbvtBroadPhase[int]{}
	require.Empty(t, broad.FindPotentials(tree, nil))

	pairs := broad.FindPotentials(tree, []int{3})
	require.Len(t, pairs, 1)
	require.True(t, pairs[0].Same(collide.Pair[int]{A: 3, B: 4}))

	// Two dirty bodies touching each other yield one pair.
	pairs = broad.FindPotentials(tree, []int{1, 2})
	require.Len(t, pairs, 1)
	require.True(t, pairs[0].Same(collide.Pair[int]{A: 1, B: 2}))

	// Ids missing from the index are skipped.
	require.Empty(t, broad.FindPotentials(tree, []int{99}))

	// The index phase reports static overlaps regardless.
	require.Len(t, collide.IndexBroadPhase[int]{}.FindPotentials(tree, nil), 2)
}

func TestBroadPhaseFunc(t *testing.T) {
	tree := collide.NewDynamicTree[int](0)
	var seen []int
	broad := collide.BroadPhaseFunc[int](func(index collide.SpatialIndex[int], dirty []int) []collide.Pair[int] {
		seen = dirty
		return []collide.Pair[int]{{A: 1, B: 2}}
	})
	pairs := broad.FindPotentials(tree, []int{5})
	require.Equal(t, []int{5}, seen)
	require.Equal(t, []collide.Pair[int]{{A: 1, B: 2}}, pairs)
}
