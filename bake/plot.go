package bake

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/milk9111/tilebake/common"
)

// RenderPlot draws every baked path of the report to an image file. The
// format follows the file extension (png, svg, pdf). Y is flipped so the
// picture matches the level as drawn on screen.
func RenderPlot(r *Report, path string) error {
	p := plot.New()
	p.Title.Text = "Baked colliders"
	if r.Level != "" {
		p.Title.Text = fmt.Sprintf("Baked colliders - %s", r.Level)
	}
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Add(plotter.NewGrid())

	ppu := r.PixelsPerUnit
	for _, layer := range r.Layers {
		clr := common.ParseHexColor(layer.Color)
		for i, loop := range layer.WorldPaths(ppu) {
			if len(loop) == 0 {
				continue
			}
			pts := make(plotter.XYs, 0, len(loop)+1)
			for _, pt := range loop {
				pts = append(pts, plotter.XY{X: pt.X, Y: -pt.Y})
			}
			pts = append(pts, plotter.XY{X: loop[0].X, Y: -loop[0].Y})

			line, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("bake: plot layer %q: %w", layer.Name, err)
			}
			line.Color = clr
			line.Width = vg.Points(1)
			if loop.IsHole() {
				line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			}
			p.Add(line)
			if i == 0 {
				p.Legend.Add(layer.Name, line)
			}
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	w := vg.Length(max(r.Width, 1)) * vg.Centimeter
	h := vg.Length(max(r.Height, 1)) * vg.Centimeter
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("bake: save plot: %w", err)
	}
	return nil
}
