package collide

// ChangeSource publishes which ids were inserted, modified or removed since
// a reader last looked.
type ChangeSource[ID comparable] interface {
	TrackInserted() *ReaderID
	TrackModified() *ReaderID
	TrackRemoved() *ReaderID
	PopulateInserted(r *ReaderID, set DirtySet[ID])
	PopulateModified(r *ReaderID, set DirtySet[ID])
	PopulateRemoved(r *ReaderID, set DirtySet[ID])
}

var _ ChangeSource[int] = (*FlaggedStorage[int, Pose])(nil)

// FlaggedStorage is a component store that records every insertion,
// modification and removal on event channels.
type FlaggedStorage[ID comparable, T any] struct {
	components map[ID]T
	ids        []ID

	inserted *EventChannel[ID]
	modified *EventChannel[ID]
	removed  *EventChannel[ID]
}

// NewFlaggedStorage returns an empty store.
func NewFlaggedStorage[ID comparable, T any]() *FlaggedStorage[ID, T] {
	return &FlaggedStorage[ID, T]{
		components: make(map[ID]T),
		ids:        make([]ID, 0, 64),
		inserted:   NewEventChannel[ID](),
		modified:   NewEventChannel[ID](),
		removed:    NewEventChannel[ID](),
	}
}

// Insert stores val for id. A new id is flagged inserted, a replaced value modified.
func (s *FlaggedStorage[ID, T]) Insert(id ID, val T) {
	if _, exists := s.components[id]; exists {
		s.components[id] = val
		s.modified.Write(id)
		return
	}
	s.components[id] = val
	s.ids = append(s.ids, id)
	s.inserted.Write(id)
}

// Modify applies fn to the stored value of id and flags it modified.
// It reports false when id has no value.
func (s *FlaggedStorage[ID, T]) Modify(id ID, fn func(*T)) bool {
	val, ok := s.components[id]
	if !ok {
		return false
	}
	fn(&val)
	s.components[id] = val
	s.modified.Write(id)
	return true
}

// Remove deletes the value of id and flags it removed.
func (s *FlaggedStorage[ID, T]) Remove(id ID) bool {
	if _, exists := s.components[id]; !exists {
		return false
	}
	delete(s.components, id)
	for i, e := range s.ids {
		if e == id {
			s.ids[i] = s.ids[len(s.ids)-1]
			s.ids = s.ids[:len(s.ids)-1]
			break
		}
	}
	s.removed.Write(id)
	return true
}

// Get returns the value stored for id.
func (s *FlaggedStorage[ID, T]) Get(id ID) (T, bool) {
	val, ok := s.components[id]
	return val, ok
}

// Has reports whether id has a value.
func (s *FlaggedStorage[ID, T]) Has(id ID) bool {
	_, ok := s.components[id]
	return ok
}

// IDs returns a copy of every id with a value.
func (s *FlaggedStorage[ID, T]) IDs() []ID {
	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of stored values.
func (s *FlaggedStorage[ID, T]) Len() int {
	return len(s.ids)
}

func (s *FlaggedStorage[ID, T]) TrackInserted() *ReaderID { return s.inserted.Register() }
func (s *FlaggedStorage[ID, T]) TrackModified() *ReaderID { return s.modified.Register() }
func (s *FlaggedStorage[ID, T]) TrackRemoved() *ReaderID  { return s.removed.Register() }

func (s *FlaggedStorage[ID, T]) PopulateInserted(r *ReaderID, set DirtySet[ID]) {
	set.AddAll(s.inserted.Read(r))
}

func (s *FlaggedStorage[ID, T]) PopulateModified(r *ReaderID, set DirtySet[ID]) {
	set.AddAll(s.modified.Read(r))
}

func (s *FlaggedStorage[ID, T]) PopulateRemoved(r *ReaderID, set DirtySet[ID]) {
	set.AddAll(s.removed.Read(r))
}
