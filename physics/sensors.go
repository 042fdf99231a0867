package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/ecs"
)

// SensorSystem refreshes every character's controller sensors from the
// space. Register it in ecs.StageSensors so the readings are current when
// the logic stage runs.
type SensorSystem struct {
	world *World
}

// NewSensorSystem creates a SensorSystem probing pw.
func NewSensorSystem(pw *World) *SensorSystem {
	return &SensorSystem{world: pw}
}

// Update probes straight down from each body and fills in position,
// velocity, and ground proximity.
func (s *SensorSystem) Update(w *ecs.World) {
	if w.DT() == 0 {
		return
	}
	controllers := ecs.StoreOf(w, controller.Component)
	ecs.StoreOf(w, Component).Each(func(e ecs.Entity, b *Body) {
		c, ok := controllers.Get(e)
		if !ok {
			return
		}

		pos := b.Body.Position()
		c.Sensors.Position = pos
		c.Sensors.Velocity = b.Body.Velocity()

		end := pos.Add(cp.Vector{Y: b.ProbeLength})
		info := s.world.space.SegmentQueryFirst(pos, end, 0, b.Filter)
		if info.Shape != nil {
			dist := info.Alpha * b.ProbeLength
			c.Sensors.GroundDistance = dist
			c.Sensors.GroundNormal = info.Normal
			c.Sensors.Grounded = dist <= b.GroundedAt
		} else {
			c.Sensors.GroundDistance = math.Inf(1)
			c.Sensors.GroundNormal = cp.Vector{}
			c.Sensors.Grounded = false
		}
	})
}
