package physics

import (
	"github.com/solarlune/resolv"

	"github.com/milk9111/tilebake/common"
)

// TagSolid marks static level geometry in a resolv space.
const TagSolid = "solid"

// NewResolvSpace builds a resolv space of width x height pixels holding one
// solid-tagged object per rectangle, for games that move AABBs with resolv
// instead of running chipmunk.
func NewResolvSpace(rects []common.Rect, width, height, cellSize int) *resolv.Space {
	space := resolv.NewSpace(width, height, cellSize, cellSize)
	for _, r := range rects {
		w, h := float64(r.Width), float64(r.Height)
		obj := resolv.NewObject(float64(r.X), float64(r.Y), w, h, TagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, w, h))
		space.Add(obj)
	}
	return space
}

// Blocked reports whether an AABB at the given pixel position shares a space
// cell with solid geometry. With rectangles aligned to the cell size this is
// an overlap test at tile granularity.
func Blocked(space *resolv.Space, x, y, w, h float64) bool {
	probe := resolv.NewObject(x, y, w, h)
	space.Add(probe)
	defer space.Remove(probe)
	return probe.Check(0, 0, TagSolid) != nil
}
