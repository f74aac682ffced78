package collide

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/setanarut/vec"
)

// Entity is an opaque, stable handle to one body.
type Entity uuid.UUID

// NewEntity returns a fresh random handle.
func NewEntity() Entity {
	return Entity(uuid.New())
}

func (e Entity) String() string {
	return uuid.UUID(e).String()
}

// Hash returns a 64-bit digest of the handle.
func (e Entity) Hash() uint64 {
	return xxhash.Sum64(e[:])
}

// PairKey returns an order independent key for the pair (a, b).
// Consumers use it to keep per-pair state across steps.
func PairKey(a, b Entity) uint64 {
	ha, hb := a.Hash(), b.Hash()
	if ha > hb {
		ha, hb = hb, ha
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], ha)
	binary.LittleEndian.PutUint64(buf[8:], hb)
	return xxhash.Sum64(buf[:])
}

// Pose is the placement of a body: position and orientation in radians.
type Pose struct {
	Position vec.Vec2
	Angle    float64
}

// NewPose is a convenience constructor.
func NewPose(x, y, angle float64) Pose {
	return Pose{Position: vec.Vec2{X: x, Y: y}, Angle: angle}
}

// Transform returns the rigid transform placing local shape space into the world.
func (p Pose) Transform() Transform {
	return NewTransformRigid(p.Position, p.Angle)
}

func (p Pose) String() string {
	return fmt.Sprintf("(%v, %v) %v rad", p.Position.X, p.Position.Y, p.Angle)
}

// Velocity is the linear and angular rate of a body.
type Velocity struct {
	Linear  vec.Vec2
	Angular float64
}

// Integrate returns where p ends up after moving with v for dt seconds.
func (v Velocity) Integrate(p Pose, dt float64) Pose {
	return Pose{
		Position: p.Position.Add(v.Linear.Scale(dt)),
		Angle:    p.Angle + v.Angular*dt,
	}
}
