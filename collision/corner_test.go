package collision

import "testing"

func TestAdjacentCount(t *testing.T) {
	occ := NewOccupancy(rectCells(0, 0, 3, 3)...)
	occ.Remove(Cell{X: 1, Y: 1})

	cases := []struct {
		c    Corner
		want int
	}{
		{Corner{0, 0}, 1},
		{Corner{1, 0}, 2},
		{Corner{1, 1}, 3},
		{Corner{2, 2}, 3},
		{Corner{3, 3}, 1},
		{Corner{5, 5}, 0},
	}

	for _, c := range cases {
		if got := AdjacentCount(occ, c.c); got != c.want {
			t.Fatalf("AdjacentCount(%v): expected %d, got %d", c.c, c.want, got)
		}
	}

	full := NewOccupancy(rectCells(0, 0, 2, 2)...)
	if got := AdjacentCount(full, Corner{1, 1}); got != 4 {
		t.Fatalf("interior vertex: expected 4, got %d", got)
	}
}

func TestIsConnected(t *testing.T) {
	// ##
	// #.
	lshape := NewOccupancy(Cell{0, 0}, Cell{1, 0}, Cell{0, 1})

	ring := NewOccupancy(rectCells(0, 0, 3, 3)...)
	ring.Remove(Cell{X: 1, Y: 1})

	cases := []struct {
		name   string
		occ    Occupancy
		p1, p2 Corner
		want   bool
	}{
		{"top edge", lshape, Corner{0, 0}, Corner{2, 0}, true},
		{"top edge reversed", lshape, Corner{2, 0}, Corner{0, 0}, true},
		{"left edge", lshape, Corner{0, 0}, Corner{0, 2}, true},
		{"short right edge", lshape, Corner{2, 0}, Corner{2, 1}, true},
		{"inner step", lshape, Corner{1, 1}, Corner{1, 2}, true},
		{"inner step horizontal", lshape, Corner{1, 1}, Corner{2, 1}, true},
		{"same point", lshape, Corner{0, 0}, Corner{0, 0}, false},
		{"diagonal", lshape, Corner{0, 0}, Corner{2, 1}, false},
		{"through the notch", lshape, Corner{0, 1}, Corner{2, 1}, false},
		{"past a corner", lshape, Corner{0, 0}, Corner{3, 0}, false},
		{"hole edge", ring, Corner{1, 1}, Corner{2, 1}, true},
		{"across filled cells", ring, Corner{0, 1}, Corner{3, 1}, false},
		{"outer edge", ring, Corner{0, 3}, Corner{3, 3}, true},
		{"empty space", NewOccupancy(), Corner{0, 0}, Corner{1, 0}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsConnected(c.occ, c.p1, c.p2); got != c.want {
				t.Fatalf("IsConnected(%v, %v): expected %v, got %v", c.p1, c.p2, c.want, got)
			}
		})
	}
}

func TestCornerEntries(t *testing.T) {
	cases := []struct {
		name string
		m    uint8
		want []cornerEntry
	}{
		{"outer top-left", quadBR, []cornerEntry{{in: dirDown, out: dirRight}}},
		{"inner", quadTL | quadTR | quadBL, []cornerEntry{{in: dirRight, out: dirDown}}},
		{"pinch", quadTL | quadBR, []cornerEntry{
			{in: dirDown, out: dirRight},
			{in: dirUp, out: dirLeft},
		}},
		{"straight", quadTL | quadTR, []cornerEntry{{in: dirRight, out: dirLeft}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := cornerEntries(Corner{}, c.m)
			if len(got) != len(c.want) {
				t.Fatalf("expected %d entries, got %d: %+v", len(c.want), len(got), got)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("entry %d: expected %+v, got %+v", i, c.want[i], got[i])
				}
			}
		})
	}
}
