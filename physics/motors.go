package physics

import (
	"github.com/perentie/stride/common"
	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/ecs"
)

// MotorSystem applies each character's motor output to its Chipmunk body,
// then steps the space. Register it in ecs.StageMotors, after the logic
// stage has written the outputs.
type MotorSystem struct {
	world *World
}

// NewMotorSystem creates a MotorSystem driving pw.
func NewMotorSystem(pw *World) *MotorSystem {
	return &MotorSystem{world: pw}
}

// Update converts motor records into body velocities and advances the
// simulation by the frame duration. Boosts are consumed: applied once and
// cleared, so a basis that writes nothing next frame adds nothing.
func (s *MotorSystem) Update(w *ecs.World) {
	dt := w.DT()
	if dt == 0 {
		return
	}
	controllers := ecs.StoreOf(w, controller.Component)
	ecs.StoreOf(w, Component).Each(func(e ecs.Entity, b *Body) {
		c, ok := controllers.Get(e)
		if !ok {
			return
		}
		m := &c.Motor

		v := b.Body.Velocity()
		vx := common.Approach(v.X, m.TargetVelocityX, m.AccelerationX*dt)
		vy := v.Y + m.BoostY
		b.Body.SetVelocity(vx, vy)

		m.BoostY = 0
	})
	s.world.Step(dt)
}
