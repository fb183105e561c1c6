package bake

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/milk9111/tilebake/collision"
)

// Report is the result of baking one level.
type Report struct {
	Level         string        `json:"level,omitempty"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	PixelsPerUnit float64       `json:"pixels_per_unit"`
	Layers        []LayerReport `json:"layers"`
}

// LayerReport holds the baked collider of one layer. Paths are local to the
// layer origin and already scaled: a path point p lies at
// (Origin + p/PixelsPerUnit) in tile coordinates.
type LayerReport struct {
	Index      int              `json:"index"`
	Name       string           `json:"name"`
	Color      string           `json:"color,omitempty"`
	OriginX    int              `json:"origin_x"`
	OriginY    int              `json:"origin_y"`
	Paths      []collision.Loop `json:"paths"`
	Cells      int              `json:"cells"`
	Incomplete int              `json:"incomplete,omitempty"`
	Degenerate int              `json:"degenerate,omitempty"`
	// Boxes are the merged solid rectangles in level tiles, present when the
	// bake was configured with boxes.
	Boxes []collision.Rect `json:"boxes,omitempty"`
}

// Incomplete sums abandoned loops over all layers.
func (r *Report) Incomplete() int {
	n := 0
	for _, l := range r.Layers {
		n += l.Incomplete
	}
	return n
}

// Layer returns the report for the named layer, or nil.
func (r *Report) Layer(name string) *LayerReport {
	for i := range r.Layers {
		if r.Layers[i].Name == name {
			return &r.Layers[i]
		}
	}
	return nil
}

// WorldPaths returns the layer's paths in output units relative to the level
// origin.
func (l *LayerReport) WorldPaths(ppu float64) []collision.Loop {
	out := make([]collision.Loop, len(l.Paths))
	for i, p := range l.Paths {
		out[i] = p.Translate(float64(l.OriginX)*ppu, float64(l.OriginY)*ppu)
	}
	return out
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveJSON writes the report to path, creating the parent directory.
func (r *Report) SaveJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("bake: save report: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bake: save report: %w", err)
	}
	defer f.Close()

	if err := r.WriteJSON(f); err != nil {
		return fmt.Errorf("bake: save report: %w", err)
	}
	return f.Close()
}

func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bake: load report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("bake: unmarshal report %s: %w", path, err)
	}
	return &r, nil
}
