package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const panelWidth = 220

var (
	labelColor = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	btnText    = &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
)

// panel is the right-hand side panel: level stats, one toggle per layer and
// the view switches.
type panel struct {
	ui     *ebitenui.UI
	face   ebtext.Face
	btnImg *widget.ButtonImage

	level  *widget.Label
	stats  *widget.Label
	layers *widget.Container
	grid   *widget.Button
	boxes  *widget.Button
	debug  *widget.Button
}

func newPanel(v *viewer) *panel {
	p := &panel{face: ebtext.NewGoXFace(basicfont.Face7x13)}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 220})
	idle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x4c, A: 255})
	p.btnImg = &widget.ButtonImage{Idle: idle, Hover: hover, Pressed: idle}

	p.level = p.label("")
	p.stats = p.label("")

	p.layers = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	rebake := p.button("Reload + Rebake (R)", func() { v.reload() })
	p.grid = p.button("", func() { v.toggleGrid() })
	p.boxes = p.button("", func() { v.toggleBoxes() })
	p.debug = p.button("", func() { v.toggleDebug() })
	clear := p.button("Clear Probes (C)", func() { v.clearProbes() })

	content := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchVertical:    true,
			}),
		),
	)
	content.AddChild(p.level)
	content.AddChild(p.stats)
	content.AddChild(p.label("Layers"))
	content.AddChild(p.layers)
	content.AddChild(rebake)
	content.AddChild(p.grid)
	content.AddChild(p.boxes)
	content.AddChild(p.debug)
	content.AddChild(clear)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(content)
	p.ui = &ebitenui.UI{Container: root}
	return p
}

func (p *panel) label(s string) *widget.Label {
	return widget.NewLabel(widget.LabelOpts.Text(s, &p.face, labelColor))
}

func (p *panel) button(s string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.btnImg),
		widget.ButtonOpts.Text(s, &p.face, btnText),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func setButtonLabel(b *widget.Button, s string) {
	if text := b.Text(); text != nil {
		text.Label = s
	}
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

// refresh rebuilds the layer toggles and stats after a bake.
func (p *panel) refresh(v *viewer) {
	p.level.Label = v.name
	p.stats.Label = v.summary()

	p.layers.RemoveChildren()
	setButtonLabel(p.grid, "Grid (G): "+onOff(v.settings.ShowGrid))
	setButtonLabel(p.boxes, "Boxes (B): "+onOff(v.settings.ShowBoxes))
	setButtonLabel(p.debug, "Debug Draw (D): "+onOff(v.settings.ShowDebug))
	if v.lvl == nil {
		return
	}
	for i, meta := range v.lvl.LayerMeta {
		mark := "[x]"
		if meta.Disabled {
			mark = "[ ]"
		}
		kind := ""
		if meta.HasPhysics {
			kind = " *"
		}
		p.layers.AddChild(p.button(fmt.Sprintf("%s %s%s", mark, meta.Name, kind), func() {
			v.toggleLayer(i)
		}))
	}
}

// contains reports whether a screen point lies over the panel.
func (p *panel) contains(x, screenW int) bool {
	return x >= screenW-panelWidth
}
