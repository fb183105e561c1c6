package collision

// MergeRects greedily merges occupied cells into rectangles so the collider
// uses fewer static boxes than one per tile. Each rectangle grows right as
// far as possible, then down while the full row below is free. Every occupied
// cell ends up in exactly one rectangle.
func MergeRects(occ Occupancy) []Rect {
	if len(occ) == 0 {
		return nil
	}

	bounds := occ.Bounds()
	processed := make(map[Cell]bool, len(occ))
	solid := func(x, y int) bool {
		c := Cell{X: x, Y: y}
		return occ.Has(c) && !processed[c]
	}

	var rects []Rect
	for y := bounds.MinY; y < bounds.MaxY; y++ {
		for x := bounds.MinX; x < bounds.MaxX; x++ {
			if !solid(x, y) {
				continue
			}

			w := 1
			for x+w < bounds.MaxX && solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < bounds.MaxY {
				for xi := x; xi < x+w; xi++ {
					if !solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[Cell{X: xx, Y: yy}] = true
				}
			}
			rects = append(rects, Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h})
		}
	}
	return rects
}
