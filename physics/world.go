// Package physics binds the controller pipeline to a Chipmunk space: the
// sensors stage probes the space for ground contact, and the motors stage
// applies each character's motor output to its body and steps the
// simulation.
package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/perentie/stride/ecs"
)

// Gravity is a reasonable default downward acceleration for screen-space
// worlds (+Y down), in units/s².
const Gravity = 1500.0

// Body binds an entity to its Chipmunk body and shape.
type Body struct {
	Body  *cp.Body
	Shape *cp.Shape

	// Filter is the shape's collision filter; the ground probe reuses it
	// so a character never senses itself.
	Filter cp.ShapeFilter

	// ProbeLength is how far below the body center the ground sensor
	// looks.
	ProbeLength float64
	// GroundedAt is the ground distance at or below which the character
	// reads as grounded.
	GroundedAt float64
}

// Component is the world handle for physics bodies.
var Component = ecs.NewHandle[Body]()

// World wraps the Chipmunk space and the static level geometry.
type World struct {
	space *cp.Space
}

// NewWorld creates a physics world with the given downward gravity.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &World{space: space}
}

// Space returns the underlying Chipmunk space.
func (pw *World) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddCharacter creates a fixed-rotation dynamic body for an entity and
// registers it as that entity's Body component. The shape is frictionless;
// the motors stage owns horizontal motion and friction would fight it.
// Each character gets its own collision group so its ground probe ignores
// its own shape while still colliding with everything else.
func (pw *World) AddCharacter(w *ecs.World, e ecs.Entity, pos cp.Vector, width, height float64) (*Body, error) {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(pos)

	filter := cp.NewShapeFilter(uint(e), cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetFilter(filter)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	b := Body{
		Body:        body,
		Shape:       shape,
		Filter:      filter,
		ProbeLength: height * 2,
		GroundedAt:  height/2 + 10,
	}
	if err := ecs.Add(w, e, Component, b); err != nil {
		pw.space.RemoveShape(shape)
		pw.space.RemoveBody(body)
		return nil, err
	}
	stored, _ := ecs.Get(w, e, Component)
	log.Printf("physics: entity %v body at %v (%gx%g)", e, pos, width, height)
	return stored, nil
}

// RemoveCharacter detaches an entity's body from the space and the world.
func (pw *World) RemoveCharacter(w *ecs.World, e ecs.Entity) {
	b, ok := ecs.Get(w, e, Component)
	if !ok {
		return
	}
	pw.space.RemoveShape(b.Shape)
	pw.space.RemoveBody(b.Body)
	ecs.Remove(w, e, Component)
}

// AddPlatform adds a static segment the characters can stand on.
func (pw *World) AddPlatform(a, b cp.Vector) {
	shape := cp.NewSegment(pw.space.StaticBody, a, b, 1)
	shape.SetFriction(0.8)
	pw.space.AddShape(shape)
}

// Step advances the physics simulation.
func (pw *World) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}
