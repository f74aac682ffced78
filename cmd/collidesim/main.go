// Command collidesim steps a small scene of moving boxes and circles and
// logs when pairs of bodies start and stop touching.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	steps := flag.Int("steps", 120, "number of steps to simulate")
	dt := flag.Float64("dt", 1.0/60.0, "step duration in seconds")
	flag.Parse()

	if err := run(*configPath, *steps, *dt); err != nil {
		fmt.Fprintln(os.Stderr, "collidesim:", err)
		os.Exit(1)
	}
}

func run(configPath string, steps int, dt float64) error {
	config := collide.DefaultConfig()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return err
		}
		config, err = collide.LoadConfig(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	logger, err := config.BuildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	system, err := collide.NewSpatialCollisionFromConfig(config, logger)
	if err != nil {
		return err
	}

	world := config.NewWorld()
	populate(world)
	contacts := world.Contacts.Register()
	advance := collide.CurrentFrameUpdate{}

	touching := make(map[uint64]collide.Pair[collide.Entity])
	for step := range steps {
		integrate(world, dt)
		if err := system.Run(world); err != nil {
			return err
		}

		current := make(map[uint64]collide.Pair[collide.Entity])
		for _, ev := range world.Contacts.Read(contacts) {
			key := collide.PairKey(ev.Bodies[0], ev.Bodies[1])
			if _, seen := current[key]; seen {
				continue
			}
			current[key] = ev.Pair()
			if _, ok := touching[key]; !ok {
				logger.Info("contact begin",
					zap.Int("step", step),
					zap.Stringer("a", ev.Bodies[0]),
					zap.Stringer("b", ev.Bodies[1]),
					zap.Float64("depth", ev.Contact.PenetrationDepth),
				)
			}
		}
		for key, pair := range touching {
			if _, ok := current[key]; !ok {
				logger.Info("contact end",
					zap.Int("step", step),
					zap.Stringer("a", pair.A),
					zap.Stringer("b", pair.B),
				)
			}
		}
		touching = current

		advance.Run(world)
	}

	logger.Info("simulation finished",
		zap.Int("steps", steps),
		zap.Int("bodies", len(world.Entities())),
		zap.Int("tree_height", world.Tree.Height()),
	)
	return nil
}

// populate builds a static floor and a handful of falling bodies.
func populate(w *collide.World) {
	floor := w.CreateBody(collide.NewBoxShape(40, 1), collide.NewPose(0, -0.5, 0))
	w.SetActive(floor, false)

	for i := range 6 {
		x := float64(i)*3 - 7.5
		var shape *collide.CollisionShape
		if i%2 == 0 {
			shape = collide.NewBoxShape(1, 1)
		} else {
			shape = collide.NewCircleShape(0.5, vec.Vec2{})
		}
		e := w.CreateBody(shape, collide.NewPose(x, 4+float64(i), 0))
		w.Velocities.Insert(e, collide.Velocity{Linear: vec.Vec2{X: 0.5, Y: -6}, Angular: 0.3})
	}
}

// integrate writes the pending pose and velocity of every moving body.
func integrate(w *collide.World, dt float64) {
	for _, e := range w.Velocities.IDs() {
		if !w.IsActive(e) {
			continue
		}
		pose, ok := w.Poses.Get(e)
		if !ok {
			continue
		}
		vel, _ := w.Velocities.Get(e)
		next := vel.Integrate(pose, dt)
		// Bodies come to rest slightly sunk into the floor.
		if next.Position.Y < 0.45 {
			next.Position.Y = 0.45
			vel = collide.Velocity{}
		}
		w.NextPoses.Insert(e, next)
		w.NextVelocities.Insert(e, vel)
	}
}
