package collide_test

import (
	"strings"
	"testing"

	"github.com/setanarut/collide"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Empty input yields defaults", func(t *testing.T) {
		c, err := collide.LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, collide.DefaultConfig(), c)
	})

	t.Run("Fields override defaults", func(t *testing.T) {
		c, err := collide.LoadConfig(strings.NewReader(`
tree_margin: 0.25
broad_phase: sweep_and_prune
sweep_axis: y
log_level: debug
`))
		require.NoError(t, err)
		require.Equal(t, 0.25, c.TreeMargin)
		require.Equal(t, collide.BroadPhaseSweepAndPrune, c.BroadPhase)
		require.Equal(t, collide.NarrowPhaseShapes, c.NarrowPhase)

		broad, err := c.BuildBroadPhase()
		require.NoError(t, err)
		require.Equal(t, collide.SweepAndPrune[collide.Entity]{Axis: collide.SweepY}, broad)
	})

	errs := map[string]struct {
		yaml string
		err  error
	}{
		"Unknown broad phase":  {"broad_phase: octree", collide.ErrUnknownBroadPhase},
		"Unknown narrow phase": {"narrow_phase: gjk", collide.ErrUnknownNarrowPhase},
		"Negative margin":      {"tree_margin: -1", collide.ErrInvalidConfig},
		"Bad axis":             {"broad_phase: sweep_and_prune\nsweep_axis: z", collide.ErrInvalidConfig},
		"Bad log level":        {"log_level: loud", collide.ErrInvalidConfig},
		"Malformed":            {"tree_margin: [1, 2", collide.ErrInvalidConfig},
	}
	for name, tc := range errs {
		t.Run(name, func(t *testing.T) {
			_, err := collide.LoadConfig(strings.NewReader(tc.yaml))
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestConfigBuild(t *testing.T) {
	for _, name := range []string{
		collide.BroadPhaseIndex,
		collide.BroadPhaseDbvt,
		collide.BroadPhaseBruteForce,
		collide.BroadPhaseSweepAndPrune,
	} {
		c := collide.DefaultConfig()
		c.BroadPhase = name
		broad, err := c.BuildBroadPhase()
		require.NoError(t, err, name)
		require.NotNil(t, broad, name)
	}

	c := collide.DefaultConfig()
	c.BroadPhase = collide.BroadPhaseNone
	c.NarrowPhase = collide.NarrowPhaseNone
	broad, err := c.BuildBroadPhase()
	require.NoError(t, err)
	require.Nil(t, broad)
	narrow, err := c.BuildNarrowPhase()
	require.NoError(t, err)
	require.Nil(t, narrow)

	logger, err := collide.DefaultConfig().BuildLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewSpatialCollisionFromConfig(t *testing.T) {
	c := collide.DefaultConfig()
	c.NarrowPhase = collide.NarrowPhaseNone
	system, err := collide.NewSpatialCollisionFromConfig(c, nil)
	require.NoError(t, err)

	w := c.NewWorld()
	reader := w.Contacts.Register()
	w.CreateBody(collide.NewBoxShape(2, 2), collide.NewPose(0, 0, 0))
	w.CreateBody(collide.NewBoxShape(2, 2), collide.NewPose(1, 0, 0))
	require.NoError(t, system.Run(w))

	events := w.Contacts.Read(reader)
	require.Len(t, events, 1)
	require.Equal(t, collide.CollisionOnly, events[0].Contact.Strategy)

	c.BroadPhase = "quadtree"
	_, err = collide.NewSpatialCollisionFromConfig(c, nil)
	require.ErrorIs(t, err, collide.ErrUnknownBroadPhase)
}
