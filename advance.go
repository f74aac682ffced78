package collide

// CurrentFrameUpdate promotes pending values to current ones. For every
// active entity with both a pending and a current pose the current pose is
// overwritten with the pending one, and likewise for velocity. Entities
// without a current value are left alone. Nothing else in this package
// writes current poses or velocities.
type CurrentFrameUpdate struct{}

// Run advances w by one frame.
func (CurrentFrameUpdate) Run(w *World) {
	for _, e := range w.NextPoses.IDs() {
		if !w.IsActive(e) || !w.Poses.Has(e) {
			continue
		}
		next, _ := w.NextPoses.Get(e)
		w.Poses.Insert(e, next)
	}

	for _, e := range w.NextVelocities.IDs() {
		if !w.IsActive(e) || !w.Velocities.Has(e) {
			continue
		}
		next, _ := w.NextVelocities.Get(e)
		w.Velocities.Insert(e, next)
	}
}
