package levels

import (
	"fmt"

	"github.com/milk9111/tilebake/collision"
)

// DefaultLayerColor is the display color given to layers without one.
const DefaultLayerColor = "#3c78ff"

// Tile values with special meaning in the level format.
const (
	TileEmpty    = 0
	TileSolid    = 1
	TileTriangle = 2
)

// Level represents a tile map stored as JSON.
type Level struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Layers holds one flat row-major array of Width*Height tile values per
	// layer. Layer 0 is drawn first (bottom).
	Layers [][]int `json:"layers"`

	// LayerMeta holds per-layer metadata, index-aligned with Layers.
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool    `json:"has_physics"`
	Color      string  `json:"color"`
	Name       string  `json:"name,omitempty"`
	Parallax   float64 `json:"parallax,omitempty"`
	// Disabled layers are kept in the file but skipped by bakes.
	Disabled bool `json:"disabled,omitempty"`
}

// New returns an empty level with a single layer.
func New(width, height int) (*Level, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("levels: invalid level dimensions: %dx%d", width, height)
	}
	lvl := &Level{Width: width, Height: height}
	if _, err := lvl.AddLayer(""); err != nil {
		return nil, err
	}
	return lvl, nil
}

// normalize checks dimensions and fills in missing layer data so that every
// layer has Width*Height tiles, metadata and a unique name.
func (l *Level) normalize() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: invalid level dimensions: %dx%d", l.Width, l.Height)
	}

	if len(l.Layers) == 0 {
		l.Layers = [][]int{make([]int, l.Width*l.Height)}
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("levels: layer %d has %d tiles, expected %d", i, len(layer), l.Width*l.Height)
		}
	}

	if len(l.LayerMeta) < len(l.Layers) {
		meta := make([]LayerMeta, len(l.Layers))
		copy(meta, l.LayerMeta)
		for i := len(l.LayerMeta); i < len(meta); i++ {
			meta[i] = LayerMeta{Color: DefaultLayerColor}
		}
		l.LayerMeta = meta
	}
	l.LayerMeta = l.LayerMeta[:len(l.Layers)]

	seen := make(map[string]bool, len(l.LayerMeta))
	for i := range l.LayerMeta {
		m := &l.LayerMeta[i]
		if m.Color == "" {
			m.Color = DefaultLayerColor
		}
		if m.Name == "" || seen[m.Name] {
			m.Name = l.uniqueName(fmt.Sprintf("Layer %d", i), seen)
		}
		seen[m.Name] = true
	}
	return nil
}

func (l *Level) inBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// Tile returns the value at (x, y) on a layer. Out-of-range reads return 0.
func (l *Level) Tile(layer, x, y int) int {
	if layer < 0 || layer >= len(l.Layers) || !l.inBounds(x, y) {
		return TileEmpty
	}
	return l.Layers[layer][y*l.Width+x]
}

// SetTile writes a tile value.
func (l *Level) SetTile(layer, x, y, v int) error {
	if layer < 0 || layer >= len(l.Layers) {
		return fmt.Errorf("levels: set tile: %w: %d", ErrLayerIndex, layer)
	}
	if !l.inBounds(x, y) {
		return fmt.Errorf("levels: set tile (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	l.Layers[layer][y*l.Width+x] = v
	return nil
}

// Occupancy snapshots the cells of a layer whose value satisfies solid. A
// nil filter treats every non-zero tile as occupied.
func (l *Level) Occupancy(layer int, solid func(int) bool) collision.Occupancy {
	occ := collision.NewOccupancy()
	if layer < 0 || layer >= len(l.Layers) {
		return occ
	}
	if solid == nil {
		solid = func(v int) bool { return v != TileEmpty }
	}
	tiles := l.Layers[layer]
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if v := tiles[y*l.Width+x]; v != TileEmpty && solid(v) {
				occ.Add(collision.Cell{X: x, Y: y})
			}
		}
	}
	return occ
}

// Clone returns a deep copy.
func (l *Level) Clone() *Level {
	out := *l
	out.Layers = make([][]int, len(l.Layers))
	for i, layer := range l.Layers {
		out.Layers[i] = append([]int(nil), layer...)
	}
	out.LayerMeta = append([]LayerMeta(nil), l.LayerMeta...)
	return &out
}
