package collide

import (
	"math"

	"github.com/setanarut/vec"
)

var _ SpatialIndex[int] = (*DynamicTree[int])(nil)

// DynamicTree is a dynamic bounding volume tree keyed by body identifier.
// Leaves store fattened bounds, so small motions update an entry in place
// without touching the tree.
type DynamicTree[ID comparable] struct {
	// leaves maps every indexed body to its leaf node.
	leaves map[ID]*Node[ID]
	root   *Node[ID]
	// pooledNodes is a free list threaded through Node.parent.
	pooledNodes *Node[ID]
	// margin is the fraction of a bound's extents added on every side of a leaf.
	margin float64
}

// NewDynamicTree returns an empty tree. margin fattens leaves by that
// fraction of their width and height; 0 stores exact bounds.
func NewDynamicTree[ID comparable](margin float64) *DynamicTree[ID] {
	return &DynamicTree[ID]{
		leaves: make(map[ID]*Node[ID]),
		margin: math.Max(margin, 0),
	}
}

// Node is a tree node. Leaves hold an identifier, branches hold two children.
type Node[ID comparable] struct {
	id     ID
	isLeaf bool
	bb     BB
	parent *Node[ID]
	a, b   *Node[ID]
}

func (tree *DynamicTree[ID]) Count() int {
	return len(tree.leaves)
}

func (tree *DynamicTree[ID]) Each(f func(id ID, bb BB)) {
	for id, leaf := range tree.leaves {
		f(id, leaf.bb)
	}
}

func (tree *DynamicTree[ID]) Contains(id ID) bool {
	_, ok := tree.leaves[id]
	return ok
}

func (tree *DynamicTree[ID]) Bound(id ID) (BB, bool) {
	leaf, ok := tree.leaves[id]
	if !ok {
		return BB{}, false
	}
	return leaf.bb, true
}

// Insert adds id with bound bb. An existing entry is updated instead.
func (tree *DynamicTree[ID]) Insert(id ID, bb BB) {
	if _, ok := tree.leaves[id]; ok {
		tree.Update(id, bb)
		return
	}
	leaf := tree.newLeaf(id, tree.fatten(bb))
	tree.leaves[id] = leaf
	tree.insertLeaf(leaf)
}

// Update refreshes the entry of id. Nothing happens while the stored fat
// bound still contains bb. It reports whether the leaf was reinserted.
func (tree *DynamicTree[ID]) Update(id ID, bb BB) bool {
	leaf, ok := tree.leaves[id]
	if !ok || leaf.bb.Contains(bb) {
		return false
	}
	tree.root = tree.subtreeRemove(tree.root, leaf)
	leaf.bb = tree.fatten(bb)
	tree.insertLeaf(leaf)
	return true
}

func (tree *DynamicTree[ID]) Upsert(id ID, bb BB) bool {
	if _, ok := tree.leaves[id]; !ok {
		tree.Insert(id, bb)
		return true
	}
	return tree.Update(id, bb)
}

func (tree *DynamicTree[ID]) Remove(id ID) bool {
	leaf, ok := tree.leaves[id]
	if !ok {
		return false
	}
	delete(tree.leaves, id)
	tree.root = tree.subtreeRemove(tree.root, leaf)
	tree.recycleNode(leaf)
	return true
}

func (tree *DynamicTree[ID]) Query(bb BB, f func(id ID)) {
	if tree.root != nil {
		tree.root.subtreeQuery(bb, f)
	}
}

func (tree *DynamicTree[ID]) SegmentQuery(a, b vec.Vec2, tExit float64, f func(id ID) float64) float64 {
	root := tree.root
	if root == nil || root.bb.SegmentQuery(a, b) >= tExit {
		return tExit
	}
	return root.subtreeSegmentQuery(a, b, tExit, f)
}

// OverlappingPairs walks up from every leaf and tests it against the right
// hand sibling of each ancestor, so every overlapping pair is found exactly
// once and never paired with itself.
func (tree *DynamicTree[ID]) OverlappingPairs() []Pair[ID] {
	var pairs []Pair[ID]
	for _, leaf := range tree.leaves {
		for node := leaf; node.parent != nil; node = node.parent {
			if node == node.parent.a {
				node.parent.b.markLeafQuery(leaf, &pairs)
			}
		}
	}
	return pairs
}

// Height returns the number of levels, 0 for an empty tree.
func (tree *DynamicTree[ID]) Height() int {
	return tree.root.height()
}

func (tree *DynamicTree[ID]) fatten(bb BB) BB {
	return bb.Grow(tree.margin)
}

func (tree *DynamicTree[ID]) insertLeaf(leaf *Node[ID]) {
	tree.root = tree.subtreeInsert(tree.root, leaf)
	tree.root.parent = nil
}

func (tree *DynamicTree[ID]) subtreeInsert(subtree, leaf *Node[ID]) *Node[ID] {
	if subtree == nil {
		return leaf
	}
	if subtree.isLeaf {
		return tree.newNode(leaf, subtree)
	}

	costA := subtree.b.bb.Area() + subtree.a.bb.MergedArea(leaf.bb)
	costB := subtree.a.bb.Area() + subtree.b.bb.MergedArea(leaf.bb)

	if costA == costB {
		costA = subtree.a.bb.Proximity(leaf.bb)
		costB = subtree.b.bb.Proximity(leaf.bb)
	}

	if costB < costA {
		nodeSetB(subtree, tree.subtreeInsert(subtree.b, leaf))
	} else {
		nodeSetA(subtree, tree.subtreeInsert(subtree.a, leaf))
	}

	subtree.bb = subtree.bb.Merge(leaf.bb)
	return subtree
}

func (tree *DynamicTree[ID]) subtreeRemove(subtree, leaf *Node[ID]) *Node[ID] {
	if leaf == subtree {
		leaf.parent = nil
		return nil
	}

	parent := leaf.parent
	leaf.parent = nil
	if parent == subtree {
		other := subtree.other(leaf)
		other.parent = subtree.parent
		tree.recycleNode(subtree)
		return other
	}

	tree.replaceChild(parent.parent, parent, parent.other(leaf))
	return subtree
}

// replaceChild swaps child for value under parent, recycles child and
// refits every ancestor.
func (tree *DynamicTree[ID]) replaceChild(parent, child, value *Node[ID]) {
	if parent.a == child {
		tree.recycleNode(parent.a)
		nodeSetA(parent, value)
	} else {
		tree.recycleNode(parent.b)
		nodeSetB(parent, value)
	}

	for node := parent; node != nil; node = node.parent {
		node.bb = node.a.bb.Merge(node.b.bb)
	}
}

func (tree *DynamicTree[ID]) newNode(a, b *Node[ID]) *Node[ID] {
	node := tree.nodeFromPool()
	node.isLeaf = false
	node.bb = a.bb.Merge(b.bb)
	node.parent = nil

	nodeSetA(node, a)
	nodeSetB(node, b)
	return node
}

func (tree *DynamicTree[ID]) newLeaf(id ID, bb BB) *Node[ID] {
	node := tree.nodeFromPool()
	node.id = id
	node.isLeaf = true
	node.bb = bb
	node.parent = nil
	return node
}

func (tree *DynamicTree[ID]) nodeFromPool() *Node[ID] {
	node := tree.pooledNodes

	if node != nil {
		tree.pooledNodes = node.parent
		return node
	}

	// Pool is exhausted make more
	for range pooledBufferSize {
		tree.recycleNode(&Node[ID]{})
	}

	return &Node[ID]{}
}

func (tree *DynamicTree[ID]) recycleNode(node *Node[ID]) {
	var zero ID
	node.id = zero
	node.isLeaf = false
	node.a, node.b = nil, nil
	node.parent = tree.pooledNodes
	tree.pooledNodes = node
}

func nodeSetA[ID comparable](node, value *Node[ID]) {
	node.a = value
	value.parent = node
}

func nodeSetB[ID comparable](node, value *Node[ID]) {
	node.b = value
	value.parent = node
}

func (node *Node[ID]) other(child *Node[ID]) *Node[ID] {
	if node.a == child {
		return node.b
	}
	return node.a
}

func (node *Node[ID]) height() int {
	if node == nil {
		return 0
	}
	if node.isLeaf {
		return 1
	}
	return 1 + max(node.a.height(), node.b.height())
}

func (subtree *Node[ID]) markLeafQuery(leaf *Node[ID], pairs *[]Pair[ID]) {
	if !leaf.bb.Intersects(subtree.bb) {
		return
	}
	if subtree.isLeaf {
		*pairs = append(*pairs, Pair[ID]{leaf.id, subtree.id})
		return
	}
	subtree.a.markLeafQuery(leaf, pairs)
	subtree.b.markLeafQuery(leaf, pairs)
}

func (subtree *Node[ID]) subtreeQuery(bb BB, f func(id ID)) {
	if subtree.bb.Intersects(bb) {
		if subtree.isLeaf {
			f(subtree.id)
		} else {
			subtree.a.subtreeQuery(bb, f)
			subtree.b.subtreeQuery(bb, f)
		}
	}
}

func (subtree *Node[ID]) subtreeSegmentQuery(a, b vec.Vec2, tExit float64, f func(id ID) float64) float64 {
	if subtree.isLeaf {
		return math.Min(tExit, f(subtree.id))
	}

	tA := subtree.a.bb.SegmentQuery(a, b)
	tB := subtree.b.bb.SegmentQuery(a, b)

	if tA < tB {
		if tA < tExit {
			tExit = math.Min(tExit, subtree.a.subtreeSegmentQuery(a, b, tExit, f))
		}
		if tB < tExit {
			tExit = math.Min(tExit, subtree.b.subtreeSegmentQuery(a, b, tExit, f))
		}
	} else {
		if tB < tExit {
			tExit = math.Min(tExit, subtree.b.subtreeSegmentQuery(a, b, tExit, f))
		}
		if tA < tExit {
			tExit = math.Min(tExit, subtree.a.subtreeSegmentQuery(a, b, tExit, f))
		}
	}

	return tExit
}
