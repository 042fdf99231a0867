package controller

import "github.com/jakecoffman/cp"

// Basis is one pluggable motion mode occupying a controller's basis slot:
// walking, jumping, free-falling. A basis owns its configuration and
// whatever running state it accumulates across frames (coyote countdowns,
// buffered inputs, smoothing history). The slot and the driver never look
// inside it.
type Basis interface {
	// Apply advances the basis by one frame.
	Apply(ctx Context)
}

// Config builds and re-parameterizes one concrete Basis type. It is
// implemented by the configuration structs gameplay code hands to
// SetBasis, typically once per frame with refreshed parameters.
type Config interface {
	// NewBasis returns a fresh basis holding this configuration and
	// zeroed running state.
	NewBasis() Basis

	// Reconfigure writes this configuration into dst when dst has the
	// matching concrete basis type and reports whether it matched.
	// Running state inside dst is left untouched either way.
	Reconfigure(dst Basis) bool
}

// Sensors is the per-character probe data the sensors stage refreshes
// before the logic stage runs. Coordinates follow the physics backend:
// screen space, +Y down.
type Sensors struct {
	Position cp.Vector
	Velocity cp.Vector

	// GroundDistance is the distance from the body center to the nearest
	// surface below it, or +Inf when nothing is within probe range.
	GroundDistance float64
	GroundNormal   cp.Vector
	Grounded       bool
}

// Motor is the velocity correction a basis writes each frame for the
// motors stage to hand to the physics backend.
type Motor struct {
	// TargetVelocityX is the horizontal velocity to approach, at up to
	// AccelerationX units/s². A non-positive acceleration snaps.
	TargetVelocityX float64
	AccelerationX   float64

	// BoostY is an instantaneous vertical velocity change, consumed and
	// cleared by the motors stage. Negative is up.
	BoostY float64
}

// Context is everything a basis sees for one frame.
type Context struct {
	// DT is the elapsed frame duration in seconds, never zero.
	DT      float64
	Sensors *Sensors
	Motor   *Motor
}
