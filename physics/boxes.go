package physics

import (
	"github.com/solarlune/resolv"

	"github.com/milk9111/tilebake/bake"
	"github.com/milk9111/tilebake/common"
)

// BoxCollider is the merged-box form of a bake: one static rectangle per
// merged run of solid tiles, indexed in a resolv space. Reports baked without
// boxes give an empty collider.
type BoxCollider struct {
	rects  []common.Rect
	layers []string
	space  *resolv.Space
}

func NewBoxCollider(r *bake.Report) *BoxCollider {
	ppu := float32(r.PixelsPerUnit)
	b := &BoxCollider{}
	for _, layer := range r.Layers {
		for _, rect := range PixelRects(layer.Boxes, ppu) {
			b.rects = append(b.rects, rect)
			b.layers = append(b.layers, layer.Name)
		}
	}

	cell := max(int(r.PixelsPerUnit), 1)
	b.space = NewResolvSpace(b.rects, r.Width*cell, r.Height*cell, cell)
	return b
}

func (b *BoxCollider) Len() int {
	return len(b.rects)
}

func (b *BoxCollider) Space() *resolv.Space {
	return b.space
}

// Blocked reports whether an AABB touches a box, at the space's cell
// granularity.
func (b *BoxCollider) Blocked(x, y, w, h float64) bool {
	return Blocked(b.space, x, y, w, h)
}

// At returns the box containing the point and the layer it came from.
func (b *BoxCollider) At(x, y float32) (common.Rect, string, bool) {
	for i := range b.rects {
		if b.rects[i].Contains(x, y) {
			return b.rects[i], b.layers[i], true
		}
	}
	return common.Rect{}, "", false
}

// Visible returns the boxes overlapping view.
func (b *BoxCollider) Visible(view common.Rect) []common.Rect {
	var out []common.Rect
	for i := range b.rects {
		if b.rects[i].Intersects(&view) {
			out = append(out, b.rects[i])
		}
	}
	return out
}
