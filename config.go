package collide

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Broad phase names accepted by Config.
const (
	BroadPhaseIndex         = "index"
	BroadPhaseDbvt          = "dbvt"
	BroadPhaseBruteForce    = "brute_force"
	BroadPhaseSweepAndPrune = "sweep_and_prune"
	BroadPhaseNone          = "none"
)

// Narrow phase names accepted by Config.
const (
	NarrowPhaseShapes = "shapes"
	NarrowPhaseNone   = "none"
)

// Config describes how to assemble a World and its SpatialCollision system.
type Config struct {
	TreeMargin  float64 `json:"tree_margin" yaml:"tree_margin"`
	BroadPhase  string  `json:"broad_phase" yaml:"broad_phase"`
	NarrowPhase string  `json:"narrow_phase" yaml:"narrow_phase"`
	SweepAxis   string  `json:"sweep_axis,omitempty" yaml:"sweep_axis,omitempty"`
	LogLevel    string  `json:"log_level" yaml:"log_level"`
}

// DefaultConfig indexes with a 10% margin, falls back to the index's
// overlap enumeration and refines pairs with ShapeNarrowPhase.
func DefaultConfig() Config {
	return Config{
		TreeMargin:  0.1,
		BroadPhase:  BroadPhaseIndex,
		NarrowPhase: NarrowPhaseShapes,
		SweepAxis:   "x",
		LogLevel:    "info",
	}
}

// LoadConfig reads YAML from r on top of DefaultConfig and validates it.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.TreeMargin < 0 {
		return fmt.Errorf("%w: tree_margin must not be negative, got %v", ErrInvalidConfig, c.TreeMargin)
	}
	if _, err := c.BuildBroadPhase(); err != nil {
		return err
	}
	if _, err := c.BuildNarrowPhase(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

// BuildBroadPhase returns the configured broad phase; nil for "none".
func (c Config) BuildBroadPhase() (BroadPhase[Entity], error) {
	switch c.BroadPhase {
	case BroadPhaseIndex, "":
		return IndexBroadPhase[Entity]{}, nil
	case BroadPhaseDbvt:
		return DbvtBroadPhase[Entity]{}, nil
	case BroadPhaseBruteForce:
		return BruteForce[Entity]{}, nil
	case BroadPhaseSweepAndPrune:
		switch c.SweepAxis {
		case "x", "":
			return SweepAndPrune[Entity]{Axis: SweepX}, nil
		case "y":
			return SweepAndPrune[Entity]{Axis: SweepY}, nil
		}
		return nil, fmt.Errorf("%w: sweep_axis %q", ErrInvalidConfig, c.SweepAxis)
	case BroadPhaseNone:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBroadPhase, c.BroadPhase)
}

// BuildNarrowPhase returns the configured narrow phase; nil for "none".
func (c Config) BuildNarrowPhase() (NarrowPhase, error) {
	switch c.NarrowPhase {
	case NarrowPhaseShapes, "":
		return ShapeNarrowPhase{}, nil
	case NarrowPhaseNone:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNarrowPhase, c.NarrowPhase)
}

func (c Config) level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zap.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return level, fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// BuildLogger returns a JSON logger writing to stderr at the configured level.
func (c Config) BuildLogger() (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

// NewWorld returns an empty world using the configured tree margin.
func (c Config) NewWorld() *World {
	return NewWorld(c.TreeMargin)
}

// NewSpatialCollisionFromConfig assembles a system from c. logger may be nil.
func NewSpatialCollisionFromConfig(c Config, logger *zap.Logger) (*SpatialCollision, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	broad, err := c.BuildBroadPhase()
	if err != nil {
		return nil, err
	}
	narrow, err := c.BuildNarrowPhase()
	if err != nil {
		return nil, err
	}
	return NewSpatialCollision(
		WithBroadPhase(broad),
		WithNarrowPhase(narrow),
		WithLogger(logger),
	), nil
}
