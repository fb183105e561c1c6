package common

// TileSize is the edge length of one tile in pixels.
const TileSize = 32

// Clamp limits v to [lo, hi].
func Clamp[T int | float32 | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Gravity is the downward acceleration of probe bodies in pixels per second
// squared.
const Gravity = 1200.0
