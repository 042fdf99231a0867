package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/perentie/stride/basis"
	"github.com/perentie/stride/controller"
	"github.com/perentie/stride/tuning"
)

// tuningPanel is a live inspector: it shows the player's active basis and
// sensor readings, and nudges the stock tuning values at runtime. Values
// changed here feed the next frame's basis requests, so walking and
// jumping respond immediately.
type tuningPanel struct {
	ui      *ebitenui.UI
	visible bool

	readout  *widget.Text
	keyLabel *widget.Text
	rows     []*paramRow
	keyboard *keyboardSystem
}

type paramRow struct {
	label *widget.Text
	name  string
	get   func() float64
}

func (r *paramRow) refresh() {
	r.label.Label = fmt.Sprintf("%s: %g", r.name, r.get())
}

func newTuningPanel(tun *tuning.Tuning, keyboard *keyboardSystem) *tuningPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	p := &tuningPanel{keyboard: keyboard}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 15, Bottom: 15, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(340, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Tuning", &face, white),
	))

	p.readout = widget.NewText(
		widget.TextOpts.Text("", &face, white),
	)
	panel.AddChild(p.readout)

	params := []struct {
		name   string
		step   float64
		target *float64
	}{
		{"speed", 20, &tun.Speed},
		{"walk.float_height", 2, &tun.Walk.FloatHeight},
		{"walk.spring_strength", 25, &tun.Walk.SpringStrength},
		{"walk.spring_dampening", 0.1, &tun.Walk.SpringDampening},
		{"walk.coyote_time", 0.05, &tun.Walk.CoyoteTime},
		{"jump.height", 8, &tun.Jump.Height},
		{"jump.input_buffer_time", 0.05, &tun.Jump.InputBufferTime},
		{"jump.fall_extra_gravity", 100, &tun.Jump.FallExtraGravity},
		{"free_fall.extra_gravity", 50, &tun.FreeFall.ExtraGravity},
	}
	for _, param := range params {
		target := param.target
		step := param.step

		row := &paramRow{
			name: param.name,
			get:  func() float64 { return *target },
		}
		row.label = widget.NewText(
			widget.TextOpts.Text("", &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			})),
		)
		row.refresh()
		p.rows = append(p.rows, row)

		rowBox := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			)),
		)
		rowBox.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(" - ", &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				*target -= step
				row.refresh()
			}),
		))
		rowBox.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(" + ", &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				*target += step
				row.refresh()
			}),
		))
		rowBox.AddChild(row.label)
		panel.AddChild(rowBox)
	}

	p.keyLabel = widget.NewText(
		widget.TextOpts.Text("keyboard: on", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
		})),
	)
	toggleBox := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
	toggleBox.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("toggle", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			p.keyboard.enabled = !p.keyboard.enabled
			if p.keyboard.enabled {
				p.keyLabel.Label = "keyboard: on"
			} else {
				p.keyLabel.Label = "keyboard: off"
			}
		}),
	))
	toggleBox.AddChild(p.keyLabel)
	panel.AddChild(toggleBox)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.ui = &ebitenui.UI{Container: root}
	return p
}

// update refreshes the readout from the player's controller and runs the
// widget tree. Call it every frame the panel is visible.
func (p *tuningPanel) update(c *controller.Controller) {
	if !p.visible {
		return
	}
	for _, r := range p.rows {
		r.refresh()
	}

	detail := ""
	switch b := c.ActiveBasis().(type) {
	case *basis.Walk:
		detail = fmt.Sprintf("walk, airborne %.2fs", b.AirborneTime())
	case *basis.Jump:
		detail = "jump, " + b.Phase().String()
	case *basis.FreeFall:
		detail = fmt.Sprintf("free fall, %.2fs", b.FallingTime())
	case nil:
		detail = "no basis"
	}
	p.readout.Label = fmt.Sprintf("%s\nground dist %.1f  grounded %t",
		detail, c.Sensors.GroundDistance, c.Sensors.Grounded)

	p.ui.Update()
}
