package collision

import "math/bits"

// Corner is a grid vertex. Corner (x, y) is the top-left vertex of cell
// (x, y) and is shared by cells (x-1, y-1), (x, y-1), (x-1, y) and (x, y).
type Corner struct {
	X, Y int
}

// Point converts the vertex to loop coordinates.
func (c Corner) Point() Point {
	return Point{X: float64(c.X), Y: float64(c.Y)}
}

// Quadrant bits of the four cells around a corner.
const (
	quadTL uint8 = 1 << iota
	quadTR
	quadBL
	quadBR
)

func quadrants(occ Occupancy, c Corner) uint8 {
	var m uint8
	if occ.Has(Cell{X: c.X - 1, Y: c.Y - 1}) {
		m |= quadTL
	}
	if occ.Has(Cell{X: c.X, Y: c.Y - 1}) {
		m |= quadTR
	}
	if occ.Has(Cell{X: c.X - 1, Y: c.Y}) {
		m |= quadBL
	}
	if occ.Has(Cell{X: c.X, Y: c.Y}) {
		m |= quadBR
	}
	return m
}

// AdjacentCount returns how many of the four cells touching c are occupied.
func AdjacentCount(occ Occupancy, c Corner) int {
	return bits.OnesCount8(quadrants(occ, c))
}

// isPinch reports two occupied cells that touch only at the vertex.
func isPinch(m uint8) bool {
	return m == quadTL|quadBR || m == quadTR|quadBL
}

func isCornerMask(m uint8) bool {
	n := bits.OnesCount8(m)
	return n == 1 || n == 3 || isPinch(m)
}

// isStraightMask reports a vertex lying inside a straight boundary run.
func isStraightMask(m uint8) bool {
	return bits.OnesCount8(m) == 2 && !isPinch(m)
}

// direction of travel along a unit edge leaving a corner, in y-down
// coordinates. Values are ordered clockwise on screen.
type direction uint8

const (
	dirRight direction = iota
	dirDown
	dirLeft
	dirUp
)

func (d direction) delta() (dx, dy int) {
	switch d {
	case dirRight:
		return 1, 0
	case dirDown:
		return 0, 1
	case dirLeft:
		return -1, 0
	default:
		return 0, -1
	}
}

func (d direction) reverse() direction {
	return (d + 2) % 4
}

func (d direction) step(c Corner) Corner {
	dx, dy := d.delta()
	return Corner{X: c.X + dx, Y: c.Y + dy}
}

// rightQuad and leftQuad name the cells on either side of the unit edge
// leaving a corner in direction d, seen from the direction of travel.
var (
	rightQuad = [4]uint8{dirRight: quadBR, dirDown: quadBL, dirLeft: quadTL, dirUp: quadTR}
	leftQuad  = [4]uint8{dirRight: quadTR, dirDown: quadBR, dirLeft: quadBL, dirUp: quadTL}
)

// boundaryEdge reports whether the unit edge leaving c along d separates an
// occupied cell from an empty one.
func boundaryEdge(occ Occupancy, c Corner, d direction) bool {
	m := quadrants(occ, c)
	return (m&rightQuad[d] != 0) != (m&leftQuad[d] != 0)
}

// cornerEntry is one turn of the outline at a corner. The trace arrives
// along the edge in direction in (pointing away from the corner) and leaves
// along out, keeping the occupied cell on its right-hand side.
type cornerEntry struct {
	at  Corner
	in  direction
	out direction
}

// cornerEntries returns the turns at a corner with quadrant mask m. Ordinary
// corners have one. A pinch has two, one wrapping each occupied cell, which
// keeps diagonally touching regions apart.
func cornerEntries(c Corner, m uint8) []cornerEntry {
	var outs, ins []direction
	for d := dirRight; d <= dirUp; d++ {
		right, left := m&rightQuad[d] != 0, m&leftQuad[d] != 0
		switch {
		case right && !left:
			outs = append(outs, d)
		case left && !right:
			ins = append(ins, d)
		}
	}
	if len(outs) != len(ins) {
		return nil
	}

	entries := make([]cornerEntry, 0, len(outs))
	for _, out := range outs {
		if len(ins) == 1 {
			entries = append(entries, cornerEntry{at: c, in: ins[0], out: out})
			continue
		}
		for _, in := range ins {
			if leftQuad[in] == rightQuad[out] {
				entries = append(entries, cornerEntry{at: c, in: in, out: out})
			}
		}
	}
	return entries
}

// IsConnected reports whether p1 and p2 can be joined by one straight
// boundary run: they share a row or a column, every unit edge between them
// separates an occupied cell from an empty one, and every vertex strictly
// between them has exactly two occupied neighbours on the same side.
func IsConnected(occ Occupancy, p1, p2 Corner) bool {
	if p1 == p2 {
		return false
	}

	var d direction
	switch {
	case p1.Y == p2.Y:
		d = dirRight
		if p1.X > p2.X {
			p1, p2 = p2, p1
		}
	case p1.X == p2.X:
		d = dirDown
		if p1.Y > p2.Y {
			p1, p2 = p2, p1
		}
	default:
		return false
	}

	for c := p1; c != p2; {
		if !boundaryEdge(occ, c, d) {
			return false
		}
		c = d.step(c)
		if c != p2 && !isStraightMask(quadrants(occ, c)) {
			return false
		}
	}
	return true
}
