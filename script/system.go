package script

import (
	"log"

	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/ecs"
)

// Component attaches a Brain to an entity.
var Component = ecs.NewHandle[*Brain]()

// System runs every brain once per tick. Register it in
// ecs.StageUserControls so scripted requests land before the logic stage,
// exactly like keyboard input would. Brains run on zero-duration ticks
// too; their requests sit in the slot until the next real frame.
type System struct{}

// NewSystem creates a script System.
func NewSystem() *System {
	return &System{}
}

// Update ticks each scripted character's brain.
func (s *System) Update(w *ecs.World) {
	dt := w.DT()
	controllers := ecs.StoreOf(w, controller.Component)
	ecs.StoreOf(w, Component).Each(func(e ecs.Entity, b **Brain) {
		c, ok := controllers.Get(e)
		if !ok {
			return
		}
		if err := (*b).Tick(c, dt); err != nil {
			log.Printf("script: entity %v control error: %v", e, err)
		}
	})
}
