package collide

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkNode walks the subtree and verifies parent links and that every
// branch bound holds both children.
func checkNode[ID comparable](t *testing.T, node *Node[ID], leaves *int) {
	t.Helper()
	if node.isLeaf {
		*leaves++
		require.Nil(t, node.a)
		require.Nil(t, node.b)
		return
	}
	require.NotNil(t, node.a)
	require.NotNil(t, node.b)
	require.Same(t, node, node.a.parent)
	require.Same(t, node, node.b.parent)
	require.True(t, node.bb.Contains(node.a.bb))
	require.True(t, node.bb.Contains(node.b.bb))
	checkNode(t, node.a, leaves)
	checkNode(t, node.b, leaves)
}

func checkTree[ID comparable](t *testing.T, tree *DynamicTree[ID]) {
	t.Helper()
	if tree.root == nil {
		require.Empty(t, tree.leaves)
		return
	}
	require.Nil(t, tree.root.parent)
	leaves := 0
	checkNode(t, tree.root, &leaves)
	require.Equal(t, len(tree.leaves), leaves)
	for id, leaf := range tree.leaves {
		require.Equal(t, id, leaf.id)
		require.True(t, leaf.isLeaf)
	}
}

func TestDynamicTreeStructure(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	box := func() BB {
		x, y := r.Float64()*50, r.Float64()*50
		return NewBB(x, y, x+1+r.Float64()*3, y+1+r.Float64()*3)
	}

	tree := NewDynamicTree[int](0.1)
	for id := range 500 {
		tree.Insert(id, box())
	}
	checkTree(t, tree)

	for round := range 5 {
		for id := range 500 {
			switch (id + round) % 4 {
			case 0:
				tree.Remove(id)
			case 1:
				tree.Upsert(id, box())
			}
		}
		checkTree(t, tree)
	}

	for id := range 500 {
		tree.Remove(id)
	}
	checkTree(t, tree)
	require.Nil(t, tree.root)
	require.NotNil(t, tree.pooledNodes, "removed nodes go back to the pool")
}

func TestPairSet(t *testing.T) {
	s := newPairSet[int]()
	s.add(1, 2)
	s.add(2, 1)
	s.add(3, 3)
	s.add(1, 3)
	require.Equal(t, []Pair[int]{{1, 2}, {1, 3}}, s.pairs)
}
