package basis

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/perentie/stride/controller"
)

// FreeFallBehavior selects when ExtraGravity applies during free fall.
type FreeFallBehavior int

const (
	// FreeFallExtraGravity applies ExtraGravity for the whole fall.
	FreeFallExtraGravity FreeFallBehavior = iota
	// FreeFallLikeJumpShorten applies ExtraGravity only while the
	// character is still moving upward, mirroring a shortened jump.
	FreeFallLikeJumpShorten
	// FreeFallLikeJumpFall applies ExtraGravity only once the character
	// is moving downward, mirroring a jump's descent.
	FreeFallLikeJumpFall
)

func (b FreeFallBehavior) String() string {
	switch b {
	case FreeFallExtraGravity:
		return "extra_gravity"
	case FreeFallLikeJumpShorten:
		return "like_jump_shorten"
	case FreeFallLikeJumpFall:
		return "like_jump_fall"
	}
	return "unknown"
}

// UnmarshalYAML decodes the behavior from its string form.
func (b *FreeFallBehavior) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "", FreeFallExtraGravity.String():
		*b = FreeFallExtraGravity
	case FreeFallLikeJumpShorten.String():
		*b = FreeFallLikeJumpShorten
	case FreeFallLikeJumpFall.String():
		*b = FreeFallLikeJumpFall
	default:
		return fmt.Errorf("basis: unknown free fall behavior %q", s)
	}
	return nil
}

// MarshalYAML encodes the behavior as its string form.
func (b FreeFallBehavior) MarshalYAML() (any, error) {
	return b.String(), nil
}

// FreeFallConfig shapes unsupported falling: extra downward acceleration
// on top of world gravity, plus limited horizontal air control.
type FreeFallConfig struct {
	// DesiredVelocity is horizontal air control. Runtime input.
	DesiredVelocity float64 `yaml:"-"`

	Behavior     FreeFallBehavior `yaml:"behavior"`
	ExtraGravity float64          `yaml:"extra_gravity"`

	AirAcceleration float64 `yaml:"air_acceleration"`
}

// NewBasis implements controller.Config.
func (cfg FreeFallConfig) NewBasis() controller.Basis {
	return &FreeFall{config: cfg}
}

// Reconfigure implements controller.Config.
func (cfg FreeFallConfig) Reconfigure(dst controller.Basis) bool {
	f, ok := dst.(*FreeFall)
	if !ok {
		return false
	}
	f.config = cfg
	return true
}

// FreeFall is the running fall built from a FreeFallConfig.
type FreeFall struct {
	config  FreeFallConfig
	falling float64
}

// Config returns the currently installed configuration.
func (f *FreeFall) Config() FreeFallConfig {
	return f.config
}

// FallingTime is how long this fall has been active.
func (f *FreeFall) FallingTime() float64 {
	return f.falling
}

// Apply implements controller.Basis.
func (f *FreeFall) Apply(ctx controller.Context) {
	cfg := &f.config
	sensors := ctx.Sensors
	motor := ctx.Motor

	f.falling += ctx.DT

	motor.TargetVelocityX = cfg.DesiredVelocity
	motor.AccelerationX = cfg.AirAcceleration

	active := false
	switch cfg.Behavior {
	case FreeFallExtraGravity:
		active = true
	case FreeFallLikeJumpShorten:
		active = sensors.Velocity.Y < 0
	case FreeFallLikeJumpFall:
		active = sensors.Velocity.Y >= 0
	}
	if active {
		motor.BoostY = cfg.ExtraGravity * ctx.DT
	} else {
		motor.BoostY = 0
	}
}
