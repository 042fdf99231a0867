package controller

import "github.com/perentie/stride/ecs"

// Component is the world handle for attaching controllers to entities.
var Component = ecs.NewHandle[Controller]()

// Controller is the per-character record. It holds at most one active
// basis behind the Basis interface, plus the sensor readings and motor
// output that flow through that basis each frame.
//
// Gameplay code re-asserts a basis every frame via SetBasis; the logic
// stage (LogicSystem) advances the held basis exactly once per simulated
// frame. The zero value is a controller with an empty slot.
type Controller struct {
	name  string
	basis Basis

	// Sensors is refreshed by the sensors stage before logic runs.
	Sensors Sensors
	// Motor is written by the active basis and consumed by the motors
	// stage afterwards.
	Motor Motor
}

// SetBasis installs or re-parameterizes the active basis. When the slot
// already holds a basis of cfg's concrete type, only the display name and
// the configuration are overwritten; the held instance and all the
// running state it accumulated over previous frames survive. Otherwise the
// slot's contents are replaced with a fresh instance.
//
// The name is diagnostic metadata for UIs and logs; dispatch never uses
// it. SetBasis always succeeds, and within one tick the last call wins.
func (c *Controller) SetBasis(name string, cfg Config) {
	c.name = name
	if c.basis != nil && cfg.Reconfigure(c.basis) {
		return
	}
	c.basis = cfg.NewBasis()
}

// BasisName returns the display name of the active basis, or "" when the
// slot is empty.
func (c *Controller) BasisName() string {
	return c.name
}

// ActiveBasis exposes the held basis for inspection. Callers may downcast
// it to read mode-specific state; mutating it outside the logic stage is
// the caller's own risk.
func (c *Controller) ActiveBasis() Basis {
	return c.basis
}
