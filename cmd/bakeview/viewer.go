package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tilebake/bake"
	"github.com/milk9111/tilebake/common"
	"github.com/milk9111/tilebake/levels"
	"github.com/milk9111/tilebake/physics"
)

var (
	backgroundColor = color.RGBA{R: 0x18, G: 0x18, B: 0x1c, A: 0xff}
	gridColor       = color.RGBA{R: 0x50, G: 0x50, B: 0x58, A: 0x60}
	boxHighlight    = color.RGBA{R: 0x20, G: 0x60, B: 0x20, A: 0x60}
)

// viewer previews a level with its baked colliders. Clicking drops a probe
// that falls onto the colliders.
type viewer struct {
	ctx        context.Context
	levelPath  string
	configPath string

	name    string
	lvl     *levels.Level
	baker   *bake.Baker
	report  *bake.Report
	world   *physics.ColliderWorld
	boxes   *physics.BoxCollider
	hazards int
	err     error

	cam      camera
	settings viewSettings
	store    *settingsStore
	panel    *panel

	screenW, screenH int
	fitted           bool
	restoreZoom      bool
	panX, panY       int
}

func newViewer(ctx context.Context, levelPath, configPath string, store *settingsStore) *viewer {
	v := &viewer{
		ctx:        ctx,
		levelPath:  levelPath,
		configPath: configPath,
		store:      store,
		settings:   store.load(),
	}
	if v.levelPath == "" {
		v.levelPath = v.settings.Level
	}
	if v.levelPath == "" {
		v.levelPath = "plain"
	}
	v.cam.zoom = v.settings.Zoom
	v.restoreZoom = true
	v.panel = newPanel(v)
	v.reload()
	return v
}

// reload re-reads the config and level from disk, then rebakes. On failure
// the previous level stays on screen.
func (v *viewer) reload() {
	cfg := bake.DefaultConfig()
	if v.configPath != "" {
		c, err := bake.LoadConfig(v.configPath)
		if err != nil {
			v.fail(err)
			return
		}
		cfg = c
	}
	cfg.Boxes = true
	baker, err := bake.New(cfg)
	if err != nil {
		v.fail(err)
		return
	}
	lvl, name, err := levels.Open(v.levelPath)
	if err != nil {
		v.fail(err)
		return
	}
	v.baker, v.lvl, v.name = baker, lvl, name
	v.settings.Level = v.levelPath
	v.rebake()
}

func (v *viewer) rebake() {
	if v.lvl == nil || v.baker == nil {
		return
	}
	report, err := v.baker.Bake(v.ctx, v.lvl)
	if err != nil {
		v.fail(err)
		return
	}
	report.Level = v.name
	v.report = report
	v.err = nil

	v.world = physics.NewColliderWorld(report)
	v.boxes = physics.NewBoxCollider(report)
	v.hazards = 0
	for i, meta := range v.lvl.LayerMeta {
		if meta.HasPhysics && !meta.Disabled {
			v.hazards += v.world.AddHazards(v.lvl, i, report.PixelsPerUnit)
		}
	}
	log.Printf("bakeview: %s", v.summary())
	v.panel.refresh(v)
}

func (v *viewer) fail(err error) {
	v.err = err
	log.Printf("bakeview: %v", err)
}

func (v *viewer) summary() string {
	if v.report == nil {
		return "not baked"
	}
	paths, cells := 0, 0
	for _, l := range v.report.Layers {
		paths += len(l.Paths)
		cells += l.Cells
	}
	s := fmt.Sprintf("%d layer(s), %d path(s)\n%d cell(s), %d segment(s)\n%d box(es), %d hazard(s)",
		len(v.report.Layers), paths, cells, v.world.SegmentCount(), v.boxes.Len(), v.hazards)
	if n := v.report.Incomplete(); n > 0 {
		s += fmt.Sprintf("\n%d incomplete loop(s)", n)
	}
	return s
}

func (v *viewer) ppu() float64 {
	if v.report == nil {
		return common.TileSize
	}
	return v.report.PixelsPerUnit
}

func (v *viewer) toggleLayer(i int) {
	if err := v.lvl.SetLayerEnabled(i, v.lvl.LayerMeta[i].Disabled); err != nil {
		v.fail(err)
		return
	}
	v.rebake()
}

func (v *viewer) toggleGrid() {
	v.settings.ShowGrid = !v.settings.ShowGrid
	v.panel.refresh(v)
	v.saveSettings()
}

func (v *viewer) toggleBoxes() {
	v.settings.ShowBoxes = !v.settings.ShowBoxes
	v.panel.refresh(v)
	v.saveSettings()
}

func (v *viewer) toggleDebug() {
	v.settings.ShowDebug = !v.settings.ShowDebug
	v.panel.refresh(v)
	v.saveSettings()
}

func (v *viewer) clearProbes() {
	if v.world != nil {
		v.world.ClearProbes()
	}
}

func (v *viewer) saveSettings() {
	v.settings.Zoom = v.cam.zoom
	v.store.save(v.settings)
}

func (v *viewer) Update() error {
	v.panel.ui.Update()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.toggleGrid()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		v.toggleDebug()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		v.toggleBoxes()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		v.settings.ShowTiles = !v.settings.ShowTiles
		v.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.clearProbes()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.fitted = false
	}

	mx, my := ebiten.CursorPosition()
	overPanel := v.panel.contains(mx, v.screenW)

	if _, wy := ebiten.Wheel(); wy != 0 && !overPanel {
		factor := 1.1
		if wy < 0 {
			factor = 1 / factor
		}
		v.cam.zoomAt(float64(mx), float64(my), factor)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		v.panX, v.panY = mx, my
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		v.cam.pan(float64(mx-v.panX), float64(my-v.panY))
		v.panX, v.panY = mx, my
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !overPanel && v.world != nil {
		wx, wy := v.cam.toWorld(float64(mx), float64(my))
		v.world.DropProbe(wx, wy, v.ppu()/4)
	}

	if v.world != nil {
		v.world.Step(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if v.lvl == nil {
		v.drawHUD(screen)
		v.panel.ui.Draw(screen)
		return
	}
	if !v.fitted && v.screenW > 0 {
		vw, vh := float64(v.screenW-panelWidth), float64(v.screenH)
		v.cam.fit(float64(v.lvl.Width)*v.ppu(), float64(v.lvl.Height)*v.ppu(), vw, vh)
		if v.restoreZoom && v.settings.Zoom > 0 {
			v.cam.zoomAt(vw/2, vh/2, v.settings.Zoom/v.cam.zoom)
		}
		v.fitted, v.restoreZoom = true, false
	}

	if v.settings.ShowTiles {
		v.drawTiles(screen)
	}
	if v.settings.ShowGrid {
		v.drawGrid(screen)
	}
	if v.settings.ShowBoxes {
		v.drawBoxes(screen)
	}
	v.drawPaths(screen)
	switch {
	case v.world == nil:
	case v.settings.ShowDebug:
		v.world.DrawSpace(&spaceDrawer{screen: screen, cam: &v.cam})
	default:
		v.drawProbes(screen)
	}

	v.drawHUD(screen)
	v.panel.ui.Draw(screen)
}

func (v *viewer) drawTiles(screen *ebiten.Image) {
	ts := v.ppu()
	size := float32(ts * v.cam.zoom)
	for i, meta := range v.lvl.LayerMeta {
		if meta.Disabled {
			continue
		}
		alpha := uint8(0x50)
		if meta.HasPhysics {
			alpha = 0xa0
		}
		c := common.WithAlpha(common.ParseHexColor(meta.Color), alpha)
		for y := 0; y < v.lvl.Height; y++ {
			for x := 0; x < v.lvl.Width; x++ {
				if v.lvl.Tile(i, x, y) == levels.TileEmpty {
					continue
				}
				sx, sy := v.cam.toScreen(float64(x)*ts, float64(y)*ts)
				vector.FillRect(screen, float32(sx), float32(sy), size, size, c, false)
			}
		}
	}
}

func (v *viewer) drawGrid(screen *ebiten.Image) {
	ts := v.ppu()
	w, h := float64(v.lvl.Width)*ts, float64(v.lvl.Height)*ts
	for x := 0; x <= v.lvl.Width; x++ {
		ax, ay := v.cam.toScreen(float64(x)*ts, 0)
		bx, by := v.cam.toScreen(float64(x)*ts, h)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, gridColor, false)
	}
	for y := 0; y <= v.lvl.Height; y++ {
		ax, ay := v.cam.toScreen(0, float64(y)*ts)
		bx, by := v.cam.toScreen(w, float64(y)*ts)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, gridColor, false)
	}
}

// drawBoxes outlines the merged boxes in view and fills the one under the
// cursor.
func (v *viewer) drawBoxes(screen *ebiten.Image) {
	if v.boxes == nil {
		return
	}
	x0, y0 := v.cam.toWorld(0, 0)
	x1, y1 := v.cam.toWorld(float64(v.screenW), float64(v.screenH))
	view := common.Rect{X: float32(x0), Y: float32(y0), Width: float32(x1 - x0), Height: float32(y1 - y0)}

	zoom := float32(v.cam.zoom)
	for _, r := range v.boxes.Visible(view) {
		sx, sy := v.cam.toScreen(float64(r.X), float64(r.Y))
		vector.StrokeRect(screen, float32(sx), float32(sy), r.Width*zoom, r.Height*zoom, 1, colornames.Lime, false)
	}

	mx, my := ebiten.CursorPosition()
	wx, wy := v.cam.toWorld(float64(mx), float64(my))
	if r, _, ok := v.boxes.At(float32(wx), float32(wy)); ok {
		sx, sy := v.cam.toScreen(float64(r.X), float64(r.Y))
		vector.FillRect(screen, float32(sx), float32(sy), r.Width*zoom, r.Height*zoom, boxHighlight, false)
	}
}

// drawPaths strokes every baked path. Holes are drawn in orange.
func (v *viewer) drawPaths(screen *ebiten.Image) {
	if v.report == nil {
		return
	}
	for _, layer := range v.report.Layers {
		outer := common.ParseHexColor(layer.Color)
		for _, path := range layer.WorldPaths(v.report.PixelsPerUnit) {
			c := color.Color(outer)
			if path.IsHole() {
				c = colornames.Orange
			}
			for i, p := range path {
				q := path[(i+1)%len(path)]
				ax, ay := v.cam.toScreen(p.X, p.Y)
				bx, by := v.cam.toScreen(q.X, q.Y)
				vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 2, c, true)
				vector.FillRect(screen, float32(ax)-2, float32(ay)-2, 4, 4, colornames.White, false)
			}
		}
	}
}

func (v *viewer) drawProbes(screen *ebiten.Image) {
	r := float32(v.ppu() / 4 * v.cam.zoom)
	for _, p := range v.world.Probes() {
		sx, sy := v.cam.toScreen(p.X, p.Y)
		vector.StrokeCircle(screen, float32(sx), float32(sy), r, 1.5, colornames.Violet, true)
	}
}

func (v *viewer) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("%s  zoom %.2f  FPS %.0f", v.levelPath, v.cam.zoom, ebiten.ActualFPS()),
		"LMB probe  RMB pan  wheel zoom  R reload  G grid  T tiles  B boxes  D debug  C clear  F fit",
	}
	if v.boxes != nil {
		mx, my := ebiten.CursorPosition()
		wx, wy := v.cam.toWorld(float64(mx), float64(my))
		state := "free"
		if _, layer, ok := v.boxes.At(float32(wx), float32(wy)); ok {
			state = "solid (" + layer + ")"
		} else if size := v.ppu() / 4; v.boxes.Blocked(wx-size/2, wy-size/2, size, size) {
			state = "near solid"
		}
		lines = append(lines, fmt.Sprintf("cursor %.0f,%.0f  %s", wx, wy, state))
	}
	if v.err != nil {
		lines = append(lines, "error: "+v.err.Error())
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.screenW, v.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
