package collide

// World is an in-memory host store: entities, their double-buffered poses
// and velocities, their shapes, plus the resources the collision system
// writes to.
type World struct {
	Poses          *FlaggedStorage[Entity, Pose]
	NextPoses      *FlaggedStorage[Entity, Pose]
	Velocities     *FlaggedStorage[Entity, Velocity]
	NextVelocities *FlaggedStorage[Entity, Velocity]
	Shapes         *FlaggedStorage[Entity, *CollisionShape]

	// Tree is the spatial index maintained by SpatialCollision.
	Tree *DynamicTree[Entity]
	// Contacts receives every contact event. Register a reader to consume it.
	Contacts *EventChannel[ContactEvent[Entity]]

	active   map[Entity]bool
	entities []Entity
}

// NewWorld returns an empty world whose tree fattens leaves by treeMargin.
func NewWorld(treeMargin float64) *World {
	return &World{
		Poses:          NewFlaggedStorage[Entity, Pose](),
		NextPoses:      NewFlaggedStorage[Entity, Pose](),
		Velocities:     NewFlaggedStorage[Entity, Velocity](),
		NextVelocities: NewFlaggedStorage[Entity, Velocity](),
		Shapes:         NewFlaggedStorage[Entity, *CollisionShape](),
		Tree:           NewDynamicTree[Entity](treeMargin),
		Contacts:       NewEventChannel[ContactEvent[Entity]](),
		active:         make(map[Entity]bool),
	}
}

// Create returns a new active entity with no components.
func (w *World) Create() Entity {
	e := NewEntity()
	w.active[e] = true
	w.entities = append(w.entities, e)
	return e
}

// CreateBody creates an entity with a shape and a current pose.
func (w *World) CreateBody(shape *CollisionShape, pose Pose) Entity {
	e := w.Create()
	w.Shapes.Insert(e, shape)
	w.Poses.Insert(e, pose)
	return e
}

// Destroy removes e and all of its components.
func (w *World) Destroy(e Entity) {
	if _, ok := w.active[e]; !ok {
		return
	}
	delete(w.active, e)
	for i, other := range w.entities {
		if other == e {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	w.Shapes.Remove(e)
	w.Poses.Remove(e)
	w.NextPoses.Remove(e)
	w.Velocities.Remove(e)
	w.NextVelocities.Remove(e)
}

// Alive reports whether e exists.
func (w *World) Alive(e Entity) bool {
	_, ok := w.active[e]
	return ok
}

// SetActive marks e active or inactive. Inactive entities are skipped by CurrentFrameUpdate.
func (w *World) SetActive(e Entity, active bool) {
	if w.Alive(e) {
		w.active[e] = active
	}
}

// IsActive reports whether e exists and is active.
func (w *World) IsActive(e Entity) bool {
	return w.active[e]
}

// Entities returns every live entity in creation order.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// worldCollisionData is the pipeline's view of a world for one evaluation.
type worldCollisionData struct {
	world   *World
	dirty   DirtySet[Entity]
	removed DirtySet[Entity]
}

var _ CollisionData[Entity] = (*worldCollisionData)(nil)

func (d *worldCollisionData) Shape(id Entity) (*CollisionShape, bool) {
	return d.world.Shapes.Get(id)
}

func (d *worldCollisionData) Pose(id Entity) (Pose, bool) {
	return d.world.Poses.Get(id)
}

func (d *worldCollisionData) NextPose(id Entity) (Pose, bool) {
	return d.world.NextPoses.Get(id)
}

func (d *worldCollisionData) DirtyPoses() []Entity {
	out := make([]Entity, 0, len(d.dirty))
	for id := range d.dirty {
		if d.world.Alive(id) && d.world.Shapes.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (d *worldCollisionData) RemovedShapes() []Entity {
	out := make([]Entity, 0, len(d.removed))
	for id := range d.removed {
		if !d.world.Shapes.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
