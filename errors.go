package collide

import "errors"

var (
	// ErrContractViolation means the host store handed the pipeline a body
	// it cannot look up: a dirty shaped body without a pose, or a candidate
	// pair member without a shape or pose.
	ErrContractViolation = errors.New("collision data contract violation")

	ErrInvalidShape = errors.New("invalid shape")

	// Configuration errors

	ErrInvalidConfig      = errors.New("invalid config")
	ErrUnknownBroadPhase  = errors.New("unknown broad phase")
	ErrUnknownNarrowPhase = errors.New("unknown narrow phase")
)
