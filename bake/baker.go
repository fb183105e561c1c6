package bake

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/milk9111/tilebake/collision"
	"github.com/milk9111/tilebake/levels"
)

// Baker turns level layers into polygon collider paths.
type Baker struct {
	cfg    Config
	script *ScriptFilter
}

// New builds a baker, compiling the configured solidity script if any.
func New(cfg Config) (*Baker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Baker{cfg: cfg}
	if cfg.SolidScript != "" {
		src, err := LoadScript(cfg.SolidScript)
		if err != nil {
			return nil, err
		}
		if b.script, err = NewScriptFilter(src); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Baker) Config() Config {
	return b.cfg
}

// Selected returns the indices of the layers a bake would process.
func (b *Baker) Selected(lvl *levels.Level) []int {
	var out []int
	for i, meta := range lvl.LayerMeta {
		if i >= len(lvl.Layers) || meta.Disabled {
			continue
		}
		if b.cfg.PhysicsOnly && !meta.HasPhysics {
			continue
		}
		if len(b.cfg.Layers) > 0 && !slices.Contains(b.cfg.Layers, meta.Name) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Bake bakes every selected layer. Layers with abandoned loops are logged
// and still reported; only script failures and cancellation are errors.
func (b *Baker) Bake(ctx context.Context, lvl *levels.Level) (*Report, error) {
	selected := b.Selected(lvl)
	layers := make([]LayerReport, len(selected))

	if b.cfg.Parallel && len(selected) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, idx := range selected {
			g.Go(func() error {
				lr, err := b.BakeLayer(gctx, lvl, idx)
				if err != nil {
					return err
				}
				layers[i] = lr
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, idx := range selected {
			lr, err := b.BakeLayer(ctx, lvl, idx)
			if err != nil {
				return nil, err
			}
			layers[i] = lr
		}
	}

	for _, lr := range layers {
		if lr.Incomplete > 0 {
			log.Printf("bake: layer %q: %d incomplete loop(s)", lr.Name, lr.Incomplete)
		}
		if lr.Degenerate > 0 {
			log.Printf("bake: layer %q: %d degenerate loop(s) dropped", lr.Name, lr.Degenerate)
		}
	}

	return &Report{
		Width:         lvl.Width,
		Height:        lvl.Height,
		PixelsPerUnit: b.cfg.PixelsPerUnit,
		Layers:        layers,
	}, nil
}

// BakeLayer bakes one layer regardless of the layer selection.
func (b *Baker) BakeLayer(ctx context.Context, lvl *levels.Level, layer int) (LayerReport, error) {
	if layer < 0 || layer >= len(lvl.Layers) {
		return LayerReport{}, fmt.Errorf("bake: %w: %d", levels.ErrLayerIndex, layer)
	}
	meta := lvl.LayerMeta[layer]

	solid := DefaultSolid
	if b.script != nil {
		f, err := b.script.Filter(lvl.Layers[layer])
		if err != nil {
			return LayerReport{}, fmt.Errorf("bake: layer %q: %w", meta.Name, err)
		}
		solid = f
	}

	occ := lvl.Occupancy(layer, solid)
	res, err := collision.ExtractBoundariesContext(ctx, occ, collision.WithAttemptBudget(b.cfg.AttemptBudget))
	if err != nil {
		return LayerReport{}, fmt.Errorf("bake: layer %q: %w", meta.Name, err)
	}

	// The origin is the top-left of the occupied cells, so paths are local to
	// the layer's baked image.
	bounds := occ.Bounds()
	ppu := b.cfg.PixelsPerUnit
	paths := make([]collision.Loop, len(res.Loops))
	for i, loop := range res.Loops {
		paths[i] = loop.Translate(-float64(bounds.MinX), -float64(bounds.MinY)).Scale(ppu)
	}

	lr := LayerReport{
		Index:      layer,
		Name:       meta.Name,
		Color:      meta.Color,
		OriginX:    bounds.MinX,
		OriginY:    bounds.MinY,
		Paths:      paths,
		Cells:      occ.Len(),
		Incomplete: res.Incomplete,
		Degenerate: res.Degenerate,
	}
	if b.cfg.Boxes {
		lr.Boxes = collision.MergeRects(occ)
	}
	return lr, nil
}
