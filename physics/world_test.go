package physics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/tilebake/bake"
	"github.com/milk9111/tilebake/collision"
	"github.com/milk9111/tilebake/common"
	"github.com/milk9111/tilebake/levels"
)

func bakeSample(t *testing.T, name string) (*levels.Level, *bake.Report) {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS(name)
	require.NoError(t, err)
	b, err := bake.New(bake.DefaultConfig())
	require.NoError(t, err)
	report, err := b.Bake(context.Background(), lvl)
	require.NoError(t, err)
	return lvl, report
}

func TestColliderWorldSegments(t *testing.T) {
	_, report := bakeSample(t, "plain.json")
	cw := NewColliderWorld(report)

	// two 4-edge platforms, a 6-edge floor with pillar, and 4 bounds
	require.Equal(t, 18, cw.SegmentCount())
}

func TestColliderWorldRaycast(t *testing.T) {
	_, report := bakeSample(t, "plain.json")
	cw := NewColliderWorld(report)

	// straight down onto the floating platform at tiles (6..8, 3)
	hit, ok := cw.Raycast(collision.Point{X: 240, Y: 10}, collision.Point{X: 240, Y: 250})
	require.True(t, ok)
	require.InDelta(t, 96-segmentRadius, hit.Point.Y, 0.5)
	require.Less(t, hit.Normal.Y, 0.0)
	require.NotNil(t, hit.Info)
	require.Equal(t, "Ground", hit.Info.Layer)

	_, ok = cw.Raycast(collision.Point{X: 160, Y: 10}, collision.Point{X: 160, Y: 20})
	require.False(t, ok)
}

func TestColliderWorldProbeLands(t *testing.T) {
	_, report := bakeSample(t, "plain.json")
	cw := NewColliderWorld(report)

	const radius = 8.0
	cw.DropProbe(240, 40, radius)
	for i := 0; i < 180; i++ {
		cw.Step(1.0 / 60.0)
	}

	probes := cw.Probes()
	require.Len(t, probes, 1)
	require.InDelta(t, 240, probes[0].X, 2)
	require.InDelta(t, 96-segmentRadius-radius, probes[0].Y, 2)

	cw.ClearProbes()
	require.Empty(t, cw.Probes())
}

func TestColliderWorldHazards(t *testing.T) {
	lvl, report := bakeSample(t, "plain.json")
	cw := NewColliderWorld(report)

	require.Equal(t, 2, cw.AddHazards(lvl, lvl.LayerIndex("Ground"), common.TileSize))
	require.Zero(t, cw.AddHazards(lvl, 9, common.TileSize))

	// hazards are sensors and never stop a ray
	hit, ok := cw.Raycast(collision.Point{X: 272, Y: 170}, collision.Point{X: 272, Y: 250})
	require.True(t, ok)
	require.InDelta(t, 224-segmentRadius, hit.Point.Y, 0.5)
}

func TestBoxCollider(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("holes.json")
	require.NoError(t, err)
	cfg := bake.DefaultConfig()
	cfg.Boxes = true
	b, err := bake.New(cfg)
	require.NoError(t, err)
	report, err := b.Bake(context.Background(), lvl)
	require.NoError(t, err)

	boxes := NewBoxCollider(report)
	require.Equal(t, len(report.Layers[0].Boxes), boxes.Len())

	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"top wall", 40, 8, true},
		{"open floor", 40, 40, false},
		{"ring wall", 72, 72, true},
		{"ring hole", 104, 104, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, boxes.Blocked(c.x, c.y, 8, 8))

			_, layer, ok := boxes.At(float32(c.x)+4, float32(c.y)+4)
			require.Equal(t, c.want, ok)
			if ok {
				require.Equal(t, "Walls", layer)
			}
		})
	}

	all := boxes.Visible(common.Rect{X: 0, Y: 0, Width: 12 * common.TileSize, Height: 8 * common.TileSize})
	require.Len(t, all, boxes.Len())
	require.Empty(t, boxes.Visible(common.Rect{X: -100, Y: -100, Width: 50, Height: 50}))
	corner := boxes.Visible(common.Rect{X: 0, Y: 0, Width: 16, Height: 16})
	require.NotEmpty(t, corner)
	require.Less(t, len(corner), boxes.Len())

	// a bake without boxes yields an empty collider
	_, plain := bakeSample(t, "holes.json")
	empty := NewBoxCollider(plain)
	require.Zero(t, empty.Len())
	require.False(t, empty.Blocked(40, 8, 8, 8))
}
