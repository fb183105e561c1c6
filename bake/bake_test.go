package bake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tilebake/collision"
	"github.com/milk9111/tilebake/levels"
)

func mustLevel(t *testing.T, name string) *levels.Level {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS(name)
	require.NoError(t, err)
	return lvl
}

func mustBaker(t *testing.T, cfg Config) *Baker {
	t.Helper()
	b, err := New(cfg)
	require.NoError(t, err)
	return b
}

func pathArea(paths []collision.Loop) float64 {
	return collision.TotalArea(paths)
}

func TestBakeSamples(t *testing.T) {
	cases := []struct {
		level string
		paths int
		cells int
		holes int
	}{
		{"holes.json", 6, 52, 3},
		{"plain.json", 3, 18, 0},
		{"diagonal.json", 5, 25, 1},
	}

	for _, c := range cases {
		t.Run(c.level, func(t *testing.T) {
			report, err := mustBaker(t, DefaultConfig()).Bake(context.Background(), mustLevel(t, c.level))
			require.NoError(t, err)
			require.Len(t, report.Layers, 1)

			layer := report.Layers[0]
			require.Len(t, layer.Paths, c.paths)
			require.Equal(t, c.cells, layer.Cells)
			require.Zero(t, layer.Incomplete)

			holes := 0
			for _, p := range layer.Paths {
				if p.IsHole() {
					holes++
				}
			}
			require.Equal(t, c.holes, holes)

			ppu := report.PixelsPerUnit
			require.Equal(t, float64(c.cells)*ppu*ppu, pathArea(layer.Paths))
		})
	}
}

func TestBakeLocalOrigin(t *testing.T) {
	report, err := mustBaker(t, DefaultConfig()).Bake(context.Background(), mustLevel(t, "plain.json"))
	require.NoError(t, err)

	ground := report.Layer("Ground")
	require.NotNil(t, ground)
	require.Equal(t, 0, ground.OriginX)
	require.Equal(t, 3, ground.OriginY)

	// the floating platform at tiles (6..8, 3) is the first loop traced
	want := collision.Loop{{X: 192, Y: 0}, {X: 288, Y: 0}, {X: 288, Y: 32}, {X: 192, Y: 32}}
	if diff := cmp.Diff(want, ground.Paths[0]); diff != "" {
		t.Fatalf("platform path mismatch (-want +got):\n%s", diff)
	}

	world := ground.WorldPaths(report.PixelsPerUnit)
	require.Equal(t, collision.Point{X: 192, Y: 96}, world[0][0])

	for _, p := range ground.Paths {
		minPt, _ := p.Bounds()
		require.GreaterOrEqual(t, minPt.X, 0.0)
		require.GreaterOrEqual(t, minPt.Y, 0.0)
	}
}

func TestBakeLayerSelection(t *testing.T) {
	lvl := mustLevel(t, "plain.json")

	cfg := DefaultConfig()
	cfg.PhysicsOnly = false
	b := mustBaker(t, cfg)
	require.Equal(t, []int{0, 1}, b.Selected(lvl))

	cfg.Layers = []string{"Background"}
	b = mustBaker(t, cfg)
	require.Equal(t, []int{0}, b.Selected(lvl))

	report, err := b.Bake(context.Background(), lvl)
	require.NoError(t, err)
	require.Len(t, report.Layers, 1)
	// the background layer is fully covered by tileset tiles
	require.Len(t, report.Layers[0].Paths, 1)
	require.Equal(t, 96, report.Layers[0].Cells)

	require.NoError(t, lvl.SetLayerEnabled(0, false))
	require.Empty(t, b.Selected(lvl))
}

func TestBakeParallelMatchesSequential(t *testing.T) {
	lvl := mustLevel(t, "plain.json")

	cfg := DefaultConfig()
	cfg.PhysicsOnly = false
	cfg.Parallel = true
	par, err := mustBaker(t, cfg).Bake(context.Background(), lvl)
	require.NoError(t, err)

	cfg.Parallel = false
	seq, err := mustBaker(t, cfg).Bake(context.Background(), lvl)
	require.NoError(t, err)

	if diff := cmp.Diff(seq, par); diff != "" {
		t.Fatalf("parallel bake differs (-seq +par):\n%s", diff)
	}
}

func TestBakeAttemptBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AttemptBudget = 1
	report, err := mustBaker(t, cfg).Bake(context.Background(), mustLevel(t, "holes.json"))
	require.NoError(t, err)
	require.Positive(t, report.Incomplete())
	require.Empty(t, report.Layers[0].Paths)
}

func TestBakeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mustBaker(t, DefaultConfig()).Bake(ctx, mustLevel(t, "holes.json"))
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestBakeWithScript(t *testing.T) {
	lvl := mustLevel(t, "plain.json")

	cfg := DefaultConfig()
	cfg.SolidScript = "ground_only.tengo"
	report, err := mustBaker(t, cfg).Bake(context.Background(), lvl)
	require.NoError(t, err)
	require.Equal(t, 18, report.Layers[0].Cells)

	cfg.PhysicsOnly = false
	report, err = mustBaker(t, cfg).Bake(context.Background(), lvl)
	require.NoError(t, err)
	require.Equal(t, 0, report.Layers[0].Cells)
	require.Empty(t, report.Layers[0].Paths)
}

func TestReportJSONRoundTrip(t *testing.T) {
	report, err := mustBaker(t, DefaultConfig()).Bake(context.Background(), mustLevel(t, "holes.json"))
	require.NoError(t, err)
	report.Level = "holes"

	path := filepath.Join(t.TempDir(), "baked", "holes.json")
	require.NoError(t, report.SaveJSON(path))

	got, err := LoadReport(path)
	require.NoError(t, err)
	if diff := cmp.Diff(report, got); diff != "" {
		t.Fatalf("report round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPlot(t *testing.T) {
	report, err := mustBaker(t, DefaultConfig()).Bake(context.Background(), mustLevel(t, "holes.json"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "holes.png")
	require.NoError(t, RenderPlot(report, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestBakeScriptRuntimeError(t *testing.T) {
	script := filepath.Join(t.TempDir(), "divide.tengo")
	require.NoError(t, os.WriteFile(script, []byte("solid = 10 / (value - 1) > 0"), 0644))

	cfg := DefaultConfig()
	cfg.PhysicsOnly = false
	cfg.Parallel = true
	cfg.SolidScript = script
	b := mustBaker(t, cfg)

	lvl := mustLevel(t, "plain.json")
	require.Len(t, b.Selected(lvl), 2)

	report, err := b.Bake(context.Background(), lvl)
	require.Error(t, err)
	require.Nil(t, report)
	require.Contains(t, err.Error(), "value=1")

	// the failure is not cached as a result
	_, err = b.Bake(context.Background(), lvl)
	require.Error(t, err)
}

func TestBakeBoxes(t *testing.T) {
	lvl := mustLevel(t, "holes.json")

	report, err := mustBaker(t, DefaultConfig()).Bake(context.Background(), lvl)
	require.NoError(t, err)
	require.Nil(t, report.Layers[0].Boxes)

	cfg := DefaultConfig()
	cfg.Boxes = true
	report, err = mustBaker(t, cfg).Bake(context.Background(), lvl)
	require.NoError(t, err)

	layer := report.Layers[0]
	require.NotEmpty(t, layer.Boxes)
	covered := 0
	for _, r := range layer.Boxes {
		require.False(t, r.Empty())
		for y := r.MinY; y < r.MaxY; y++ {
			for x := r.MinX; x < r.MaxX; x++ {
				// boxes are in level tiles, not relative to the layer origin
				require.NotEqual(t, levels.TileEmpty, lvl.Tile(layer.Index, x, y), "box covers empty tile (%d,%d)", x, y)
				covered++
			}
		}
	}
	require.Equal(t, layer.Cells, covered)
}
