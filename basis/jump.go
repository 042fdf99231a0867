package basis

import (
	"math"

	"github.com/perentie/stride/controller"
)

// JumpPhase is where a jump currently is in its arc.
type JumpPhase int

const (
	// JumpBuffered means the takeoff is waiting for the ground to be
	// within reach.
	JumpBuffered JumpPhase = iota
	JumpRising
	JumpFalling
	// JumpSpent means the buffer window closed without a takeoff.
	JumpSpent
)

func (p JumpPhase) String() string {
	switch p {
	case JumpBuffered:
		return "buffered"
	case JumpRising:
		return "rising"
	case JumpFalling:
		return "falling"
	case JumpSpent:
		return "spent"
	}
	return "unknown"
}

// JumpConfig launches the character and shapes the rise and fall of the
// arc. Issue it every frame for as long as the jump is the active intent,
// flipping Held to false once the button is released to cut the jump
// short.
type JumpConfig struct {
	// Held is whether the jump input is still down this frame. Runtime
	// input, not a tuning value.
	Held bool `yaml:"-"`
	// DesiredVelocity is horizontal air control while jumping. Runtime
	// input as well.
	DesiredVelocity float64 `yaml:"-"`

	// Height is the apex height above the takeoff point. Takeoff speed is
	// derived from it and Gravity.
	Height float64 `yaml:"height"`
	// Gravity must match the world gravity the body is simulated under.
	Gravity float64 `yaml:"gravity"`

	// InputBufferTime is how long a takeoff request waits for the ground
	// before going stale.
	InputBufferTime float64 `yaml:"input_buffer_time"`

	// ShortenExtraGravity pulls the character down while it is still
	// rising after Held went false.
	ShortenExtraGravity float64 `yaml:"shorten_extra_gravity"`
	// FallExtraGravity steepens the arc past the apex.
	FallExtraGravity float64 `yaml:"fall_extra_gravity"`

	AirAcceleration float64 `yaml:"air_acceleration"`
}

// NewBasis implements controller.Config.
func (cfg JumpConfig) NewBasis() controller.Basis {
	return &Jump{config: cfg}
}

// Reconfigure implements controller.Config.
func (cfg JumpConfig) Reconfigure(dst controller.Basis) bool {
	j, ok := dst.(*Jump)
	if !ok {
		return false
	}
	j.config = cfg
	return true
}

// Jump is the running jump built from a JumpConfig.
type Jump struct {
	config   JumpConfig
	phase    JumpPhase
	buffered float64 // time spent waiting for the ground
	elapsed  float64 // time since takeoff
}

// Config returns the currently installed configuration.
func (j *Jump) Config() JumpConfig {
	return j.config
}

// Phase reports where the jump is in its arc.
func (j *Jump) Phase() JumpPhase {
	return j.phase
}

// Elapsed is the time since takeoff, zero before it.
func (j *Jump) Elapsed() float64 {
	return j.elapsed
}

// takeoffSpeed is the upward speed that peaks at cfg.Height under
// cfg.Gravity.
func (cfg *JumpConfig) takeoffSpeed() float64 {
	if cfg.Height <= 0 || cfg.Gravity <= 0 {
		return 0
	}
	return math.Sqrt(2 * cfg.Gravity * cfg.Height)
}

// Apply implements controller.Basis.
func (j *Jump) Apply(ctx controller.Context) {
	cfg := &j.config
	sensors := ctx.Sensors
	motor := ctx.Motor

	motor.TargetVelocityX = cfg.DesiredVelocity
	motor.AccelerationX = cfg.AirAcceleration
	motor.BoostY = 0

	switch j.phase {
	case JumpBuffered:
		if sensors.Grounded {
			// Takeoff: replace whatever vertical velocity the body has
			// with the launch speed.
			motor.BoostY = -cfg.takeoffSpeed() - sensors.Velocity.Y
			j.phase = JumpRising
			return
		}
		j.buffered += ctx.DT
		if j.buffered > cfg.InputBufferTime {
			j.phase = JumpSpent
		}
	case JumpRising:
		j.elapsed += ctx.DT
		if sensors.Velocity.Y >= 0 {
			j.phase = JumpFalling
			return
		}
		if !cfg.Held {
			motor.BoostY = cfg.ShortenExtraGravity * ctx.DT
		}
	case JumpFalling:
		j.elapsed += ctx.DT
		motor.BoostY = cfg.FallExtraGravity * ctx.DT
	case JumpSpent:
		// Stale request: hold air control only, let gravity run. The
		// caller is expected to switch to free fall or walk.
	}
}
