package physics

import (
	"github.com/milk9111/tilebake/collision"
	"github.com/milk9111/tilebake/common"
)

// PixelRects converts cell rectangles to pixels.
func PixelRects(rects []collision.Rect, tileSize float32) []common.Rect {
	out := make([]common.Rect, len(rects))
	for i, r := range rects {
		out[i] = common.Rect{
			X:      float32(r.MinX) * tileSize,
			Y:      float32(r.MinY) * tileSize,
			Width:  float32(r.MaxX-r.MinX) * tileSize,
			Height: float32(r.MaxY-r.MinY) * tileSize,
		}
	}
	return out
}
