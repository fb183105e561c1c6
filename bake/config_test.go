package bake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    Config
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			src:  "",
			want: DefaultConfig(),
		},
		{
			name: "overrides",
			src:  "pixels_per_unit: 16\nphysics_only: false\nlayers: [Ground, Walls]\nattempt_budget: 500\nparallel: false\nboxes: true\n",
			want: Config{
				PixelsPerUnit: 16,
				PhysicsOnly:   false,
				Layers:        []string{"Ground", "Walls"},
				AttemptBudget: 500,
				Parallel:      false,
				Boxes:         true,
			},
		},
		{
			name:    "zero scale",
			src:     "pixels_per_unit: 0\n",
			wantErr: true,
		},
		{
			name:    "negative budget",
			src:     "attempt_budget: -1\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			src:     "layers: {",
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(c.src))
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bake.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solid_script: no_hazards.tengo\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "no_hazards.tengo", cfg.SolidScript)
	require.True(t, cfg.PhysicsOnly)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigResolvesLocalScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.tengo"), []byte("solid = value == 7\n"), 0644))
	path := filepath.Join(dir, "bake.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solid_script: mine.tengo\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "mine.tengo"), cfg.SolidScript)

	b, err := New(cfg)
	require.NoError(t, err)
	solid, err := b.script.Solid(7)
	require.NoError(t, err)
	require.True(t, solid)
}
