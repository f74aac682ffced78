package collide

import (
	"fmt"
)

// CollisionData is the pipeline's view of the host store for one evaluation.
type CollisionData[ID comparable] interface {
	// Shape returns the collision shape of id.
	Shape(id ID) (*CollisionShape, bool)
	// Pose returns the current pose of id.
	Pose(id ID) (Pose, bool)
	// NextPose returns the pending pose of id, if one is set.
	NextPose(id ID) (Pose, bool)
	// DirtyPoses returns the dirty bodies that carry a shape.
	DirtyPoses() []ID
	// RemovedShapes returns bodies whose index entry must go: their shape
	// or the body itself was removed since the last evaluation.
	RemovedShapes() []ID
}

// TreeCollide runs one collision evaluation.
//
// It removes stale index entries, refreshes the bound of every dirty body,
// asks broad for candidate pairs and refines them with narrow. Narrow only
// runs when broad is set too. With broad alone every candidate becomes a
// CollisionOnly event. Without broad nothing is reported.
//
// A dirty body without a pose, or a candidate without shape or pose, aborts
// the evaluation with an error wrapping ErrContractViolation. Index changes
// made before the failure are kept; nothing is rolled back.
func TreeCollide[ID comparable](data CollisionData[ID], index SpatialIndex[ID], broad BroadPhase[ID], narrow NarrowPhase) ([]ContactEvent[ID], error) {
	for _, id := range data.RemovedShapes() {
		index.Remove(id)
	}

	dirty := data.DirtyPoses()
	refreshed := make([]ID, 0, len(dirty))
	for _, id := range dirty {
		shape, ok := data.Shape(id)
		if !ok {
			return nil, fmt.Errorf("%w: dirty body %v has no shape", ErrContractViolation, id)
		}
		if !shape.Enabled {
			index.Remove(id)
			continue
		}
		bb, err := refreshBound(data, id, shape)
		if err != nil {
			return nil, err
		}
		index.Upsert(id, bb)
		refreshed = append(refreshed, id)
	}

	if broad == nil {
		return nil, nil
	}
	potentials := broad.FindPotentials(index, refreshed)

	if narrow == nil {
		events := make([]ContactEvent[ID], 0, len(potentials))
		for _, p := range potentials {
			events = append(events, newSimpleEvent(p.A, p.B))
		}
		return events, nil
	}

	var events []ContactEvent[ID]
	for _, p := range potentials {
		left, leftPose, err := lookupBody(data, p.A)
		if err != nil {
			return nil, err
		}
		right, rightPose, err := lookupBody(data, p.B)
		if err != nil {
			return nil, err
		}
		for _, contact := range narrow.Collide(left, leftPose, right, rightPose) {
			events = append(events, NewContactEvent(p.A, p.B, contact))
		}
	}
	return events, nil
}

// refreshBound computes the bound of id from its pending pose if present,
// else its current pose.
func refreshBound[ID comparable](data CollisionData[ID], id ID, shape *CollisionShape) (BB, error) {
	pose, hasPose := data.Pose(id)
	next, hasNext := data.NextPose(id)
	switch {
	case hasPose && hasNext:
		nt := next.Transform()
		return shape.SweptBound(pose.Transform(), &nt), nil
	case hasNext:
		return shape.Bound(next.Transform()), nil
	case hasPose:
		return shape.Bound(pose.Transform()), nil
	}
	return BB{}, fmt.Errorf("%w: dirty body %v has no pose", ErrContractViolation, id)
}

// lookupBody fetches the shape of id and its effective pose, pending first.
func lookupBody[ID comparable](data CollisionData[ID], id ID) (*CollisionShape, Transform, error) {
	shape, ok := data.Shape(id)
	if !ok {
		return nil, Transform{}, fmt.Errorf("%w: candidate %v has no shape", ErrContractViolation, id)
	}
	if next, ok := data.NextPose(id); ok {
		return shape, next.Transform(), nil
	}
	if pose, ok := data.Pose(id); ok {
		return shape, pose.Transform(), nil
	}
	return nil, Transform{}, fmt.Errorf("%w: candidate %v has no pose", ErrContractViolation, id)
}
