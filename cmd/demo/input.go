package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/perentie/stride/basis"
	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/ecs"
	"github.com/perentie/stride/tuning"
)

// keyboardSystem turns WASD/arrow/space input into basis requests for one
// character. It runs in the user-controls stage so the logic stage sees
// this frame's request on the same tick.
type keyboardSystem struct {
	tun     *tuning.Tuning
	target  ecs.Entity
	enabled bool
}

func newKeyboardSystem(tun *tuning.Tuning, target ecs.Entity) *keyboardSystem {
	return &keyboardSystem{tun: tun, target: target, enabled: true}
}

func (s *keyboardSystem) Update(w *ecs.World) {
	if !s.enabled {
		return
	}
	c, ok := ecs.Get(w, s.target, controller.Component)
	if !ok {
		return
	}

	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	desired := moveX * s.tun.Speed

	jumpHeld := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if j, ok := c.ActiveBasis().(*basis.Jump); ok {
		done := j.Phase() == basis.JumpSpent ||
			(j.Phase() == basis.JumpFalling && c.Sensors.Grounded)
		if !done {
			cfg := s.tun.Jump
			cfg.Held = jumpHeld
			cfg.DesiredVelocity = desired
			c.SetBasis("jump", cfg)
			return
		}
		if jumpPressed {
			// A fresh press must not inherit the finished arc. Re-requesting
			// the same basis type updates it in place, so bounce through walk
			// to force a new jump instance.
			cfg := s.tun.Walk
			cfg.DesiredVelocity = desired
			c.SetBasis("walk", cfg)
		}
	}

	if jumpPressed {
		cfg := s.tun.Jump
		cfg.Held = true
		cfg.DesiredVelocity = desired
		c.SetBasis("jump", cfg)
		return
	}

	grounded := c.Sensors.Grounded
	if walk, ok := c.ActiveBasis().(*basis.Walk); ok && walk.StandingOnGround() {
		// The coyote window still counts as standing on ground.
		grounded = true
	}
	if grounded {
		cfg := s.tun.Walk
		cfg.DesiredVelocity = desired
		c.SetBasis("walk", cfg)
		return
	}

	cfg := s.tun.FreeFall
	cfg.DesiredVelocity = desired
	c.SetBasis("free-fall", cfg)
}
