package collide_test

import (
	"math"
	"testing"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBB(t *testing.T) {
	t.Run("Intersects", func(t *testing.T) {
		a := collide.NewBB(0, 0, 2, 2)
		assert.True(t, a.Intersects(collide.NewBB(1, 1, 3, 3)))
		assert.True(t, a.Intersects(collide.NewBB(2, 0, 3, 2)), "touching edges count")
		assert.False(t, a.Intersects(collide.NewBB(2.1, 0, 3, 2)))
	})

	t.Run("Contains", func(t *testing.T) {
		a := collide.NewBB(0, 0, 2, 2)
		assert.True(t, a.Contains(collide.NewBB(0.5, 0.5, 1, 1)))
		assert.True(t, a.Contains(a))
		assert.False(t, a.Contains(collide.NewBB(1, 1, 3, 3)))
		assert.True(t, a.ContainsVect(vec.Vec2{X: 1, Y: 1}))
		assert.False(t, a.ContainsVect(vec.Vec2{X: -1, Y: 1}))
	})

	t.Run("Merge and Grow", func(t *testing.T) {
		m := collide.NewBB(0, 0, 1, 1).Merge(collide.NewBB(2, -1, 3, 0))
		require.Equal(t, collide.NewBB(0, -1, 3, 1), m)

		g := collide.NewBB(0, 0, 10, 20).Grow(0.1)
		require.InDelta(t, -1, g.L, 1e-12)
		require.InDelta(t, -2, g.B, 1e-12)
		require.InDelta(t, 11, g.R, 1e-12)
		require.InDelta(t, 22, g.T, 1e-12)

		same := collide.NewBB(0, 0, 1, 1)
		require.Equal(t, same, same.Grow(0))
	})

	t.Run("SegmentQuery", func(t *testing.T) {
		bb := collide.NewBB(1, -1, 2, 1)
		hit := bb.SegmentQuery(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0})
		require.InDelta(t, 0.25, hit, 1e-12)
		require.True(t, bb.IntersectsSegment(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0}))
		require.False(t, bb.IntersectsSegment(vec.Vec2{X: 0, Y: 2}, vec.Vec2{X: 4, Y: 2}))
		require.Equal(t, math.MaxFloat64, bb.SegmentQuery(vec.Vec2{X: 0, Y: 2}, vec.Vec2{X: 4, Y: 2}))
	})

	t.Run("Area and Proximity", func(t *testing.T) {
		a := collide.NewBB(0, 0, 2, 3)
		require.Equal(t, 6.0, a.Area())
		require.Equal(t, 6.0, a.MergedArea(collide.NewBB(0.5, 0.5, 1, 1)))
		require.Equal(t, 0.0, a.Proximity(a))
		require.Equal(t, 4.0, a.Proximity(a.Offset(vec.Vec2{X: 1, Y: 1})))
	})
}

func TestTransformBB(t *testing.T) {
	tr := collide.NewTransformRigid(vec.Vec2{X: 5, Y: 0}, math.Pi/2)
	p := tr.Apply(vec.Vec2{X: 1, Y: 0})
	require.InDelta(t, 5, p.X, 1e-12)
	require.InDelta(t, 1, p.Y, 1e-12)

	back := tr.Inverse().Apply(p)
	require.InDelta(t, 1, back.X, 1e-12)
	require.InDelta(t, 0, back.Y, 1e-12)

	bb := tr.BB(collide.NewBB(0, 0, 2, 1))
	require.InDelta(t, 4, bb.L, 1e-12)
	require.InDelta(t, 5, bb.R, 1e-12)
	require.InDelta(t, 0, bb.B, 1e-12)
	require.InDelta(t, 2, bb.T, 1e-12)
}
