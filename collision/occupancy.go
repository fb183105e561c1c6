package collision

import (
	"cmp"
	"slices"
)

// Cell is an integer grid cell. Y grows downward, matching the row index of
// the level format, so cell (x, y) spans [x, x+1] x [y, y+1].
type Cell struct {
	X, Y int
}

// Rect is a cell-aligned rectangle. Max is exclusive.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Occupancy is the set of occupied cells of one layer. The zero value (nil)
// is a valid empty set for reads.
type Occupancy map[Cell]struct{}

// NewOccupancy builds a set from the given cells. Duplicates are ignored.
func NewOccupancy(cells ...Cell) Occupancy {
	occ := make(Occupancy, len(cells))
	for _, c := range cells {
		occ[c] = struct{}{}
	}
	return occ
}

func (o Occupancy) Add(c Cell) {
	o[c] = struct{}{}
}

func (o Occupancy) Remove(c Cell) {
	delete(o, c)
}

// Has reports whether c is occupied.
func (o Occupancy) Has(c Cell) bool {
	_, ok := o[c]
	return ok
}

func (o Occupancy) Len() int {
	return len(o)
}

// Clone returns an independent copy, used to hand a layer snapshot to a
// concurrent bake.
func (o Occupancy) Clone() Occupancy {
	out := make(Occupancy, len(o))
	for c := range o {
		out[c] = struct{}{}
	}
	return out
}

// Cells returns the occupied cells sorted by row, then column.
func (o Occupancy) Cells() []Cell {
	cells := make([]Cell, 0, len(o))
	for c := range o {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, compareCells)
	return cells
}

// Bounds returns the smallest rectangle covering every occupied cell.
func (o Occupancy) Bounds() Rect {
	if len(o) == 0 {
		return Rect{}
	}
	first := true
	var r Rect
	for c := range o {
		if first {
			r = Rect{MinX: c.X, MinY: c.Y, MaxX: c.X + 1, MaxY: c.Y + 1}
			first = false
			continue
		}
		r.MinX = min(r.MinX, c.X)
		r.MinY = min(r.MinY, c.Y)
		r.MaxX = max(r.MaxX, c.X+1)
		r.MaxY = max(r.MaxY, c.Y+1)
	}
	return r
}

func compareCells(a, b Cell) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
