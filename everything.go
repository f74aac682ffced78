package collide

import (
	"math"

	"github.com/setanarut/vec"
)

const (
	pooledBufferSize int     = 256
	infinity         float64 = math.MaxFloat64
	magicEpsilon     float64 = 1e-9
)

// CollisionStrategy tells downstream consumers how much of a contact they may rely on.
type CollisionStrategy uint8

const (
	// FullResolution contacts carry normal, depth and witness points.
	FullResolution CollisionStrategy = iota
	// CollisionOnly contacts only report that two bodies touch.
	CollisionOnly
)

func (s CollisionStrategy) String() string {
	switch s {
	case FullResolution:
		return "full_resolution"
	case CollisionOnly:
		return "collision_only"
	default:
		return "unknown"
	}
}

// CollisionMode selects how a shape's bound is derived from its poses.
type CollisionMode uint8

const (
	// Discrete uses the pending pose if there is one, else the current pose.
	Discrete CollisionMode = iota
	// Continuous sweeps the bound from the current pose to the pending pose.
	Continuous
)

// CollisionType is an application defined collider tag.
type CollisionType uintptr

// combineStrategy picks the weaker of two strategies.
func combineStrategy(a, b CollisionStrategy) CollisionStrategy {
	if a > b {
		return a
	}
	return b
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

func closestPointOnSegment(p, a, b vec.Vec2) vec.Vec2 {
	delta := a.Sub(b)
	lenSq := delta.Dot(delta)
	if lenSq < magicEpsilon {
		return b
	}
	t := clamp01(delta.Dot(p.Sub(b)) / lenSq)
	return b.Add(delta.Scale(t))
}
