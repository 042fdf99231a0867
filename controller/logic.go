package controller

import "github.com/perentie/stride/ecs"

// LogicSystem is the basis driver: once per tick it advances every
// character's active basis by exactly one step. Register it in
// ecs.StageLogic so it runs after user controls have issued their basis
// requests and before the motors stage consumes the outputs.
type LogicSystem struct{}

// NewLogicSystem creates a LogicSystem.
func NewLogicSystem() *LogicSystem {
	return &LogicSystem{}
}

// Update drives one tick. A frame that reports zero elapsed time is
// skipped entirely: the engine is paused or a duplicate tick fired, and
// advancing timers on it would double-count. Basis requests issued during
// such a tick still sit in the slot for the next real frame.
func (s *LogicSystem) Update(w *ecs.World) {
	dt := w.DT()
	if dt == 0 {
		return
	}
	ecs.StoreOf(w, Component).Each(func(_ ecs.Entity, c *Controller) {
		if c.basis == nil {
			return
		}
		c.basis.Apply(Context{
			DT:      dt,
			Sensors: &c.Sensors,
			Motor:   &c.Motor,
		})
	})
}
