// Package script drives characters from tengo control scripts instead of
// keyboard input. A script defines a `control` function; each tick it
// receives an engine API, a state map that persists across ticks, and the
// frame duration, and issues basis requests through the engine.
//
//	control := func(engine, state, dt) {
//	    if engine.grounded() {
//	        engine.walk(120)
//	    } else {
//	        engine.fall()
//	    }
//	}
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/tuning"
)

const dispatchScript = `
control(__engine, __state, __dt)
`

// Brain owns one compiled control script and its persistent state.
type Brain struct {
	compiled *tengo.Compiled
	state    *tengo.Map
	tuning   *tuning.Tuning
}

// NewBrain compiles a control script. The tuning pointer is read live on
// every tick, so hot-reloaded parameters reach the script's requests
// without recompiling.
func NewBrain(src []byte, tun *tuning.Tuning) (*Brain, error) {
	if tun == nil {
		return nil, fmt.Errorf("script: nil tuning")
	}
	s := tengo.NewScript(append(append([]byte{}, src...), dispatchScript...))
	_ = s.Add("__engine", &tengo.ImmutableMap{Value: map[string]tengo.Object{}})
	_ = s.Add("__state", &tengo.Map{Value: map[string]tengo.Object{}})
	_ = s.Add("__dt", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Brain{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		tuning:   tun,
	}, nil
}

// Tick runs the control script once for a character. Script errors leave
// the controller exactly as the previous tick did.
func (b *Brain) Tick(c *controller.Controller, dt float64) error {
	if err := b.compiled.Set("__engine", b.buildEngine(c)); err != nil {
		return err
	}
	if err := b.compiled.Set("__state", b.state); err != nil {
		return err
	}
	if err := b.compiled.Set("__dt", dt); err != nil {
		return err
	}
	return b.compiled.Run()
}

func (b *Brain) buildEngine(c *controller.Controller) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["walk"] = &tengo.UserFunction{Name: "walk", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cfg := b.tuning.Walk
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok {
				cfg.DesiredVelocity = v
			}
		}
		c.SetBasis("walk", cfg)
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cfg := b.tuning.Jump
		cfg.Held = true
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok {
				cfg.DesiredVelocity = v
			}
		}
		c.SetBasis("jump", cfg)
		return tengo.TrueValue, nil
	}}

	values["fall"] = &tengo.UserFunction{Name: "fall", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cfg := b.tuning.FreeFall
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok {
				cfg.DesiredVelocity = v
			}
		}
		c.SetBasis("free-fall", cfg)
		return tengo.TrueValue, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if c.Sensors.Grounded {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["basis"] = &tengo.UserFunction{Name: "basis", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: c.BasisName()}, nil
	}}

	values["position_x"] = floatGetter(func() float64 { return c.Sensors.Position.X })
	values["position_y"] = floatGetter(func() float64 { return c.Sensors.Position.Y })
	values["velocity_x"] = floatGetter(func() float64 { return c.Sensors.Velocity.X })
	values["velocity_y"] = floatGetter(func() float64 { return c.Sensors.Velocity.Y })

	return &tengo.ImmutableMap{Value: values}
}

func floatGetter(get func() float64) tengo.Object {
	return &tengo.UserFunction{Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: get()}, nil
	}}
}
