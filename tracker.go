package collide

// DirtySet is a set of body identifiers.
type DirtySet[ID comparable] map[ID]struct{}

// NewDirtySet returns a set holding ids.
func NewDirtySet[ID comparable](ids ...ID) DirtySet[ID] {
	s := make(DirtySet[ID], len(ids))
	s.AddAll(ids)
	return s
}

func (s DirtySet[ID]) Add(id ID) { s[id] = struct{}{} }

func (s DirtySet[ID]) AddAll(ids []ID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s DirtySet[ID]) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}

func (s DirtySet[ID]) Len() int { return len(s) }

// Slice returns the members in no particular order.
func (s DirtySet[ID]) Slice() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

func (s DirtySet[ID]) Clear() { clear(s) }

type trackedSource[ID comparable] struct {
	source                      ChangeSource[ID]
	inserted, modified, removed *ReaderID
}

// ChangeTracker merges the change streams of several sources into one dirty
// set per evaluation. Each source contributes inserted, modified and removed
// streams, read through private cursors, so every change is reported in
// exactly one Drain unless it happens again. A removal is a change of
// presence: the id is dirty and also listed in Removed.
type ChangeTracker[ID comparable] struct {
	sources []trackedSource[ID]
	dirty   DirtySet[ID]
	removed DirtySet[ID]
	seeded  DirtySet[ID]
}

// NewChangeTracker registers cursors on every source. Changes made before
// this call are not seen; use Seed for bodies that already exist.
func NewChangeTracker[ID comparable](sources ...ChangeSource[ID]) *ChangeTracker[ID] {
	t := &ChangeTracker[ID]{
		dirty:   make(DirtySet[ID]),
		removed: make(DirtySet[ID]),
		seeded:  make(DirtySet[ID]),
	}
	for _, s := range sources {
		t.sources = append(t.sources, trackedSource[ID]{
			source:   s,
			inserted: s.TrackInserted(),
			modified: s.TrackModified(),
			removed:  s.TrackRemoved(),
		})
	}
	return t
}

// Seed marks ids dirty in the next Drain.
func (t *ChangeTracker[ID]) Seed(ids ...ID) {
	t.seeded.AddAll(ids)
}

// Drain rebuilds the dirty set from everything that changed since the last
// Drain and returns it. The returned set is owned by the tracker and is
// only valid until the next Drain.
func (t *ChangeTracker[ID]) Drain() DirtySet[ID] {
	t.dirty.Clear()
	t.removed.Clear()

	for id := range t.seeded {
		t.dirty.Add(id)
	}
	t.seeded.Clear()

	for _, s := range t.sources {
		s.source.PopulateInserted(s.inserted, t.dirty)
		s.source.PopulateModified(s.modified, t.dirty)
		s.source.PopulateRemoved(s.removed, t.removed)
	}
	for id := range t.removed {
		t.dirty.Add(id)
	}
	return t.dirty
}

// Dirty returns the set built by the last Drain.
func (t *ChangeTracker[ID]) Dirty() DirtySet[ID] {
	return t.dirty
}

// Removed returns the ids any source reported removed during the last Drain.
func (t *ChangeTracker[ID]) Removed() DirtySet[ID] {
	return t.removed
}
