package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/perentie/stride/basis"
	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/ecs"
	"github.com/perentie/stride/physics"
	"github.com/perentie/stride/script"
	"github.com/perentie/stride/tuning"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tps        = 60

	charWidth  = 24
	charHeight = 36
)

// Game runs two characters side by side: one on the keyboard, one on a
// tengo control script. P pauses the world with zero-duration ticks, Tab
// opens the tuning panel.
type Game struct {
	world *ecs.World
	phys  *physics.World
	tun   *tuning.Tuning

	tuningPath string
	scriptPath string
	watcher    *tuning.Watcher

	player ecs.Entity
	bot    ecs.Entity

	platforms [][2]cp.Vector

	keyboard *keyboardSystem
	panel    *tuningPanel
	paused   bool
	frames   int
}

func NewGame(tuningPath, scriptPath string) (*Game, error) {
	tun, err := tuning.Load(tuningPath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		tun:        &tun,
		tuningPath: tuningPath,
		scriptPath: scriptPath,
		world:      ecs.NewWorld(),
		phys:       physics.NewWorld(physics.Gravity),
	}

	g.platforms = [][2]cp.Vector{
		{{X: -200, Y: 620}, {X: baseWidth + 200, Y: 620}},
		{{X: 300, Y: 480}, {X: 560, Y: 480}},
		{{X: 760, Y: 380}, {X: 1000, Y: 380}},
	}
	for _, p := range g.platforms {
		g.phys.AddPlatform(p[0], p[1])
	}

	g.player = g.world.CreateEntity()
	if err := ecs.Add(g.world, g.player, controller.Component, controller.Controller{}); err != nil {
		return nil, err
	}
	if _, err := g.phys.AddCharacter(g.world, g.player, cp.Vector{X: 200, Y: 560}, charWidth, charHeight); err != nil {
		return nil, err
	}

	g.bot = g.world.CreateEntity()
	if err := ecs.Add(g.world, g.bot, controller.Component, controller.Controller{}); err != nil {
		return nil, err
	}
	if _, err := g.phys.AddCharacter(g.world, g.bot, cp.Vector{X: 640, Y: 560}, charWidth, charHeight); err != nil {
		return nil, err
	}

	src := patrolScript
	if scriptPath != "" {
		src, err = os.ReadFile(scriptPath)
		if err != nil {
			return nil, err
		}
	}
	brain, err := script.NewBrain(src, g.tun)
	if err != nil {
		return nil, err
	}
	if err := ecs.Add(g.world, g.bot, script.Component, brain); err != nil {
		return nil, err
	}

	g.keyboard = newKeyboardSystem(g.tun, g.player)
	g.world.AddSystem(ecs.StageSensors, physics.NewSensorSystem(g.phys))
	g.world.AddSystem(ecs.StageUserControls, g.keyboard)
	g.world.AddSystem(ecs.StageUserControls, script.NewSystem())
	g.world.AddSystem(ecs.StageLogic, controller.NewLogicSystem())
	g.world.AddSystem(ecs.StageMotors, physics.NewMotorSystem(g.phys))

	if dirs := watchDirs(tuningPath, scriptPath); len(dirs) > 0 {
		w, err := tuning.NewWatcher(dirs...)
		if err != nil {
			log.Printf("demo: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.panel = newTuningPanel(g.tun, g.keyboard)
	return g, nil
}

func watchDirs(paths ...string) []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Close releases the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.visible = !g.panel.visible
	}

	g.drainWatcher()

	dt := 1.0 / float64(tps)
	if g.paused {
		// A paused frame still ticks: input and scripts keep staging basis
		// requests, but the zero duration freezes the bases and the
		// simulation until the world unpauses.
		dt = 0
	}
	g.world.Tick(dt)

	if c, ok := ecs.Get(g.world, g.player, controller.Component); ok {
		g.panel.update(c)
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("demo: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		t, err := tuning.Load(g.tuningPath)
		if err != nil {
			log.Printf("demo: tuning reload: %v", err)
			return
		}
		*g.tun = t
		log.Printf("demo: reloaded tuning from %s", path)
	case ".tengo":
		src, err := os.ReadFile(path)
		if err != nil {
			log.Printf("demo: script reload: %v", err)
			return
		}
		brain, err := script.NewBrain(src, g.tun)
		if err != nil {
			log.Printf("demo: script reload: %v", err)
			return
		}
		if err := ecs.Add(g.world, g.bot, script.Component, brain); err != nil {
			log.Printf("demo: script reload: %v", err)
			return
		}
		log.Printf("demo: reloaded script from %s", path)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x1c, B: 0x24, A: 0xff})

	for _, p := range g.platforms {
		vector.StrokeLine(screen,
			float32(p[0].X), float32(p[0].Y),
			float32(p[1].X), float32(p[1].Y),
			3, colornames.Slategray, true)
	}

	g.drawCharacter(screen, g.player, colornames.Lightseagreen)
	g.drawCharacter(screen, g.bot, colornames.Goldenrod)

	ebitenutil.DebugPrint(screen, g.statusLine())

	if g.panel.visible {
		g.panel.ui.Draw(screen)
	}
}

func (g *Game) drawCharacter(screen *ebiten.Image, e ecs.Entity, col color.Color) {
	b, ok := ecs.Get(g.world, e, physics.Component)
	if !ok {
		return
	}
	pos := b.Body.Position()
	vector.FillRect(screen,
		float32(pos.X-charWidth/2), float32(pos.Y-charHeight/2),
		charWidth, charHeight, col, false)
}

func (g *Game) statusLine() string {
	status := fmt.Sprintf("FPS: %.0f  [P] pause  [Tab] tuning", ebiten.ActualFPS())
	if g.paused {
		status += "  PAUSED"
	}
	if c, ok := ecs.Get(g.world, g.player, controller.Component); ok {
		status += "\nplayer: " + describeBasis(c)
	}
	if c, ok := ecs.Get(g.world, g.bot, controller.Component); ok {
		status += "\nbot:    " + describeBasis(c)
	}
	return status
}

func describeBasis(c *controller.Controller) string {
	name := c.BasisName()
	if name == "" {
		name = "(none)"
	}
	detail := ""
	switch b := c.ActiveBasis().(type) {
	case *basis.Walk:
		detail = fmt.Sprintf(" airborne=%.2fs", b.AirborneTime())
	case *basis.Jump:
		detail = " phase=" + b.Phase().String()
	case *basis.FreeFall:
		detail = fmt.Sprintf(" falling=%.2fs", b.FallingTime())
	}
	return fmt.Sprintf("%s%s grounded=%t vel=(%.0f, %.0f)",
		name, detail, c.Sensors.Grounded, c.Sensors.Velocity.X, c.Sensors.Velocity.Y)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
