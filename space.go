package collide

import (
	"go.uber.org/zap"
)

// SpatialCollision is the collision detection system for a World.
//
// Each Run drains the world's change tracker, refreshes the spatial index
// for dirty bodies, runs the broad and narrow phases and writes the
// resulting events to World.Contacts. Narrow phase only runs if a broad
// phase is active as well. Without WithBroadPhase the system falls back to
// the index's own overlap enumeration (IndexBroadPhase).
type SpatialCollision struct {
	broad   BroadPhase[Entity]
	narrow  NarrowPhase
	tracker *ChangeTracker[Entity]
	logger  *zap.Logger
	stamp   uint64
}

// Option configures a SpatialCollision.
type Option func(*SpatialCollision)

// WithBroadPhase selects the broad phase. nil disables candidate generation.
func WithBroadPhase(broad BroadPhase[Entity]) Option {
	return func(s *SpatialCollision) {
		s.broad = broad
	}
}

// WithNarrowPhase selects the narrow phase. nil reports bound level contacts only.
func WithNarrowPhase(narrow NarrowPhase) Option {
	return func(s *SpatialCollision) {
		s.narrow = narrow
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *SpatialCollision) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSpatialCollision returns a system with the given phases.
func NewSpatialCollision(opts ...Option) *SpatialCollision {
	s := &SpatialCollision{
		broad:  IndexBroadPhase[Entity]{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Setup registers the change cursors on w. Bodies that already have a shape
// are marked dirty so the first Run indexes them.
func (s *SpatialCollision) Setup(w *World) {
	s.tracker = NewChangeTracker[Entity](w.Poses, w.NextPoses, w.Shapes)
	s.tracker.Seed(w.Shapes.IDs()...)
	s.logger.Debug("spatial collision set up",
		zap.Int("bodies", w.Shapes.Len()),
		zap.Bool("broad_phase", s.broad != nil),
		zap.Bool("narrow_phase", s.narrow != nil),
	)
}

// Run performs one evaluation. On error nothing is written to w.Contacts;
// the error wraps ErrContractViolation and means the world's bookkeeping is
// broken. The changes drained for a failed run are consumed and the index
// keeps any entries refreshed before the failure; neither is rolled back.
func (s *SpatialCollision) Run(w *World) error {
	if s.tracker == nil {
		s.Setup(w)
	}
	s.stamp++

	dirty := s.tracker.Drain()
	data := &worldCollisionData{
		world:   w,
		dirty:   dirty,
		removed: s.tracker.Removed(),
	}

	events, err := TreeCollide[Entity](data, w.Tree, s.broad, s.narrow)
	if err != nil {
		s.logger.Error("collision evaluation aborted",
			zap.Uint64("stamp", s.stamp),
			zap.Error(err),
		)
		return err
	}
	w.Contacts.WriteAll(events)

	s.logger.Debug("collision evaluation",
		zap.Uint64("stamp", s.stamp),
		zap.Int("dirty", dirty.Len()),
		zap.Int("indexed", w.Tree.Count()),
		zap.Int("events", len(events)),
	)
	return nil
}

// Dirty returns the bodies the last Run treated as changed. It is nil before
// the first Run and must not be modified.
func (s *SpatialCollision) Dirty() DirtySet[Entity] {
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Dirty()
}

// Stamp returns the number of evaluations run so far.
func (s *SpatialCollision) Stamp() uint64 {
	return s.stamp
}
