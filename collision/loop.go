package collision

import "math"

// Point is a loop vertex. Grid loops hold integral values; they become
// fractional once scaled to world units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Loop is a closed polygon. The closing edge from the last point back to the
// first is implicit.
type Loop []Point

// SignedArea returns the shoelace area in y-down coordinates. It is positive
// when the loop runs clockwise on screen.
func (l Loop) SignedArea() float64 {
	if len(l) < 3 {
		return 0
	}
	var sum float64
	for i, p := range l {
		q := l[(i+1)%len(l)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func (l Loop) Area() float64 {
	return math.Abs(l.SignedArea())
}

// IsHole reports whether the loop winds counter-clockwise on screen, which is
// how extraction emits the inner boundary of a hole.
func (l Loop) IsHole() bool {
	return l.SignedArea() < 0
}

// Bounds returns the min and max corners of the loop.
func (l Loop) Bounds() (minPt, maxPt Point) {
	if len(l) == 0 {
		return
	}
	minPt, maxPt = l[0], l[0]
	for _, p := range l[1:] {
		minPt.X = math.Min(minPt.X, p.X)
		minPt.Y = math.Min(minPt.Y, p.Y)
		maxPt.X = math.Max(maxPt.X, p.X)
		maxPt.Y = math.Max(maxPt.Y, p.Y)
	}
	return minPt, maxPt
}

// Translate returns a copy shifted by (dx, dy).
func (l Loop) Translate(dx, dy float64) Loop {
	out := make(Loop, len(l))
	for i, p := range l {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// Scale returns a copy with every coordinate multiplied by s.
func (l Loop) Scale(s float64) Loop {
	out := make(Loop, len(l))
	for i, p := range l {
		out[i] = Point{X: p.X * s, Y: p.Y * s}
	}
	return out
}

// Reverse returns a copy running the other way round, starting at the same
// point.
func (l Loop) Reverse() Loop {
	out := make(Loop, len(l))
	if len(l) == 0 {
		return out
	}
	out[0] = l[0]
	for i := 1; i < len(l); i++ {
		out[i] = l[len(l)-i]
	}
	return out
}

// Orient returns the loop wound clockwise on screen when clockwise is true,
// counter-clockwise otherwise.
func (l Loop) Orient(clockwise bool) Loop {
	if (l.SignedArea() > 0) == clockwise {
		return l.Translate(0, 0)
	}
	return l.Reverse()
}

// Contains reports whether p lies strictly inside the loop by the even-odd
// rule. Points on an edge may go either way.
func (l Loop) Contains(p Point) bool {
	inside := false
	for i, j := 0, len(l)-1; i < len(l); j, i = i, i+1 {
		a, b := l[i], l[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Segments calls fn for every edge of the loop, closing edge included.
func (l Loop) Segments(fn func(a, b Point)) {
	if len(l) < 2 {
		return
	}
	for i, p := range l {
		fn(p, l[(i+1)%len(l)])
	}
}

// TotalArea sums the signed areas of all loops. For a complete extraction it
// equals the number of occupied cells.
func TotalArea(loops []Loop) float64 {
	var sum float64
	for _, l := range loops {
		sum += l.SignedArea()
	}
	return sum
}
