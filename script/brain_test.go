package script

import (
	"strings"
	"testing"

	"github.com/perentie/stride/basis"
	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/ecs"
	"github.com/perentie/stride/tuning"
)

func mustBrain(t *testing.T, src string) *Brain {
	t.Helper()
	tun := tuning.Default()
	b, err := NewBrain([]byte(src), &tun)
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	return b
}

func TestBrainBasisRequests(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		wantBasis string
		check     func(t *testing.T, c *controller.Controller)
	}{
		{
			name:      "walk",
			src:       "control := func(engine, state, dt) { engine.walk(150) }",
			wantBasis: "walk",
			check: func(t *testing.T, c *controller.Controller) {
				w, ok := c.ActiveBasis().(*basis.Walk)
				if !ok {
					t.Fatalf("active basis %T, want *basis.Walk", c.ActiveBasis())
				}
				if w.Config().DesiredVelocity != 150 {
					t.Fatalf("desired velocity = %v, want 150", w.Config().DesiredVelocity)
				}
			},
		},
		{
			name:      "jump",
			src:       "control := func(engine, state, dt) { engine.jump(80) }",
			wantBasis: "jump",
			check: func(t *testing.T, c *controller.Controller) {
				j, ok := c.ActiveBasis().(*basis.Jump)
				if !ok {
					t.Fatalf("active basis %T, want *basis.Jump", c.ActiveBasis())
				}
				if !j.Config().Held {
					t.Fatalf("scripted jumps hold the button")
				}
				if j.Config().DesiredVelocity != 80 {
					t.Fatalf("desired velocity = %v, want 80", j.Config().DesiredVelocity)
				}
			},
		},
		{
			name:      "fall",
			src:       "control := func(engine, state, dt) { engine.fall() }",
			wantBasis: "free-fall",
			check: func(t *testing.T, c *controller.Controller) {
				if _, ok := c.ActiveBasis().(*basis.FreeFall); !ok {
					t.Fatalf("active basis %T, want *basis.FreeFall", c.ActiveBasis())
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBrain(t, tc.src)
			var c controller.Controller
			if err := b.Tick(&c, 1.0/60); err != nil {
				t.Fatalf("Tick: %v", err)
			}
			if c.BasisName() != tc.wantBasis {
				t.Fatalf("basis name = %q, want %q", c.BasisName(), tc.wantBasis)
			}
			tc.check(t, &c)
		})
	}
}

func TestBrainReadsSensors(t *testing.T) {
	b := mustBrain(t, `
control := func(engine, state, dt) {
	if engine.grounded() {
		engine.walk(engine.velocity_x() + 10)
	} else {
		engine.fall()
	}
}`)
	var c controller.Controller

	c.Sensors.Grounded = false
	if err := b.Tick(&c, 1.0/60); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if c.BasisName() != "free-fall" {
		t.Fatalf("airborne brain chose %q", c.BasisName())
	}

	c.Sensors.Grounded = true
	c.Sensors.Velocity.X = 90
	if err := b.Tick(&c, 1.0/60); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	w, ok := c.ActiveBasis().(*basis.Walk)
	if !ok {
		t.Fatalf("grounded brain chose %T", c.ActiveBasis())
	}
	if w.Config().DesiredVelocity != 100 {
		t.Fatalf("desired velocity = %v, want 100", w.Config().DesiredVelocity)
	}
}

func TestBrainStatePersistsAcrossTicks(t *testing.T) {
	b := mustBrain(t, `
control := func(engine, state, dt) {
	if is_undefined(state.ticks) {
		state.ticks = 0
	}
	state.ticks += 1
	if state.ticks >= 3 {
		engine.fall()
	} else {
		engine.walk(100)
	}
}`)
	var c controller.Controller
	for i := 0; i < 2; i++ {
		if err := b.Tick(&c, 1.0/60); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if c.BasisName() != "walk" {
			t.Fatalf("tick %d basis = %q, want walk", i, c.BasisName())
		}
	}
	if err := b.Tick(&c, 1.0/60); err != nil {
		t.Fatalf("third tick: %v", err)
	}
	if c.BasisName() != "free-fall" {
		t.Fatalf("third tick basis = %q, want free-fall", c.BasisName())
	}
}

func TestNewBrainCompileError(t *testing.T) {
	tun := tuning.Default()
	_, err := NewBrain([]byte("control := func("), &tun)
	if err == nil {
		t.Fatalf("expected compile error")
	}
	if !strings.Contains(err.Error(), "compile") {
		t.Fatalf("error should mention compilation, got %v", err)
	}
}

func TestBrainRuntimeErrorLeavesController(t *testing.T) {
	b := mustBrain(t, `
control := func(engine, state, dt) {
	engine.no_such_call()
}`)
	var c controller.Controller
	c.SetBasis("walk", basis.WalkConfig{DesiredVelocity: 40})

	if err := b.Tick(&c, 1.0/60); err == nil {
		t.Fatalf("expected runtime error")
	}
	if c.BasisName() != "walk" {
		t.Fatalf("failed tick must not change the basis, got %q", c.BasisName())
	}
	w := c.ActiveBasis().(*basis.Walk)
	if w.Config().DesiredVelocity != 40 {
		t.Fatalf("failed tick must not touch the config, got %+v", w.Config())
	}
}

func TestSystemDrivesScriptedCharacters(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(ecs.StageUserControls, NewSystem())

	scripted := w.CreateEntity()
	if err := ecs.Add(w, scripted, controller.Component, controller.Controller{}); err != nil {
		t.Fatalf("add controller: %v", err)
	}
	if err := ecs.Add(w, scripted, Component, mustBrain(t, "control := func(engine, state, dt) { engine.walk(60) }")); err != nil {
		t.Fatalf("add brain: %v", err)
	}

	// A brain without a controller must be skipped, not crash.
	orphan := w.CreateEntity()
	if err := ecs.Add(w, orphan, Component, mustBrain(t, "control := func(engine, state, dt) { engine.walk(60) }")); err != nil {
		t.Fatalf("add orphan brain: %v", err)
	}

	w.Tick(1.0 / 60)

	c, ok := ecs.Get(w, scripted, controller.Component)
	if !ok {
		t.Fatalf("controller disappeared")
	}
	if c.BasisName() != "walk" {
		t.Fatalf("scripted basis = %q, want walk", c.BasisName())
	}
}
