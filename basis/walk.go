// Package basis provides the stock motion modes: a float-at-height spring
// walker, a buffered jump, and configurable free fall. Each mode is a
// Config/basis pair; gameplay code hands the config to
// Controller.SetBasis every frame with refreshed parameters.
package basis

import (
	"math"

	"github.com/perentie/stride/controller"
)

// WalkConfig drives a character along the ground toward a desired
// horizontal velocity while a spring keeps its body floating FloatHeight
// above the surface. Re-issue it every frame with the latest desired
// velocity; the walker's internal timers survive those updates.
type WalkConfig struct {
	// DesiredVelocity is the horizontal velocity to reach, signed, in
	// units/s. Runtime input, not a tuning value.
	DesiredVelocity float64 `yaml:"-"`

	// FloatHeight is the distance the body center hovers above the
	// ground.
	FloatHeight float64 `yaml:"float_height"`
	// ClingDistance extends the spring's reach below FloatHeight so small
	// dips and steps do not read as leaving the ground.
	ClingDistance float64 `yaml:"cling_distance"`

	SpringStrength  float64 `yaml:"spring_strength"`
	SpringDampening float64 `yaml:"spring_dampening"`

	Acceleration    float64 `yaml:"acceleration"`
	AirAcceleration float64 `yaml:"air_acceleration"`

	// CoyoteTime is how long after losing the ground the walker still
	// reports standing, so a late jump request is honored.
	CoyoteTime float64 `yaml:"coyote_time"`
}

// NewBasis implements controller.Config.
func (cfg WalkConfig) NewBasis() controller.Basis {
	return &Walk{config: cfg}
}

// Reconfigure implements controller.Config: update a held *Walk in place,
// keeping its running state.
func (cfg WalkConfig) Reconfigure(dst controller.Basis) bool {
	w, ok := dst.(*Walk)
	if !ok {
		return false
	}
	w.config = cfg
	return true
}

// Walk is the running walker built from a WalkConfig.
type Walk struct {
	config   WalkConfig
	airborne float64 // seconds since the spring last reached ground
}

// Config returns the currently installed configuration.
func (w *Walk) Config() WalkConfig {
	return w.config
}

// AirborneTime is how long the walker has been out of spring range.
func (w *Walk) AirborneTime() float64 {
	return w.airborne
}

// StandingOnGround reports whether the walker counts as supported,
// including the coyote-time window after it left the ground.
func (w *Walk) StandingOnGround() bool {
	return w.airborne <= w.config.CoyoteTime
}

// Apply implements controller.Basis.
func (w *Walk) Apply(ctx controller.Context) {
	cfg := &w.config
	sensors := ctx.Sensors
	motor := ctx.Motor

	reach := cfg.FloatHeight + cfg.ClingDistance
	inRange := sensors.GroundDistance <= reach
	if inRange {
		w.airborne = 0
	} else {
		w.airborne += ctx.DT
	}

	if inRange && !math.IsInf(sensors.GroundDistance, 1) {
		// Damped spring toward the float height. +Y is down, so an
		// upward correction is a negative boost.
		offset := cfg.FloatHeight - sensors.GroundDistance
		upSpeed := -sensors.Velocity.Y
		motor.BoostY = -(offset*cfg.SpringStrength - upSpeed*cfg.SpringDampening) * ctx.DT
	} else {
		motor.BoostY = 0
	}

	motor.TargetVelocityX = cfg.DesiredVelocity
	if inRange {
		motor.AccelerationX = cfg.Acceleration
	} else {
		motor.AccelerationX = cfg.AirAcceleration
	}
}
