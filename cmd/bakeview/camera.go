package main

import "github.com/milk9111/tilebake/common"

const (
	minZoom = 0.25
	maxZoom = 8.0
)

// camera maps world units to screen pixels.
type camera struct {
	x, y float64
	zoom float64
}

func (c *camera) toScreen(wx, wy float64) (float64, float64) {
	return (wx - c.x) * c.zoom, (wy - c.y) * c.zoom
}

func (c *camera) toWorld(sx, sy float64) (float64, float64) {
	return sx/c.zoom + c.x, sy/c.zoom + c.y
}

// zoomAt scales by factor while keeping the world point under (sx, sy) fixed.
func (c *camera) zoomAt(sx, sy, factor float64) {
	wx, wy := c.toWorld(sx, sy)
	c.zoom = common.Clamp(c.zoom*factor, minZoom, maxZoom)
	c.x = wx - sx/c.zoom
	c.y = wy - sy/c.zoom
}

func (c *camera) pan(dx, dy float64) {
	c.x -= dx / c.zoom
	c.y -= dy / c.zoom
}

// fit centers a w x h world rectangle in a view of vw x vh pixels.
func (c *camera) fit(w, h, vw, vh float64) {
	if w <= 0 || h <= 0 || vw <= 0 || vh <= 0 {
		return
	}
	c.zoom = common.Clamp(min(vw/w, vh/h)*0.9, minZoom, maxZoom)
	c.x = w/2 - vw/2/c.zoom
	c.y = h/2 - vh/2/c.zoom
}
