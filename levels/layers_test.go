package levels

import (
	"errors"
	"testing"
)

func newLayered(t *testing.T, names ...string) *Level {
	t.Helper()
	lvl := &Level{Width: 2, Height: 1}
	for i, name := range names {
		idx, err := lvl.AddLayer(name)
		if err != nil {
			t.Fatalf("AddLayer(%q): %v", name, err)
		}
		// tag every layer's first tile with its creation order
		lvl.Layers[idx][0] = i + 1
	}
	return lvl
}

func TestAddLayerNames(t *testing.T) {
	lvl := newLayered(t, "", "", "Ground", "Ground", "  ")
	want := []string{"New Layer", "New Layer 1", "Ground", "Ground 1", "New Layer 2"}
	got := lvl.LayerNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d layers, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("layer %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRenameLayer(t *testing.T) {
	cases := []struct {
		name    string
		index   int
		newName string
		wantErr error
	}{
		{"ok", 0, "Background", nil},
		{"same name", 1, "B", nil},
		{"duplicate", 0, "B", ErrLayerName},
		{"empty", 0, "", ErrLayerName},
		{"blank", 0, "   ", ErrLayerName},
		{"bad index", 5, "X", ErrLayerIndex},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := newLayered(t, "A", "B")
			err := lvl.RenameLayer(c.index, c.newName)
			if c.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if lvl.LayerMeta[c.index].Name != c.newName {
					t.Fatalf("expected name %q, got %q", c.newName, lvl.LayerMeta[c.index].Name)
				}
				return
			}
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
		})
	}
}

func TestMoveLayer(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"up", 0, 2, []string{"B", "C", "A", "D"}},
		{"down", 3, 1, []string{"A", "D", "B", "C"}},
		{"noop", 2, 2, []string{"A", "B", "C", "D"}},
		{"neighbours", 1, 2, []string{"A", "C", "B", "D"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl := newLayered(t, "A", "B", "C", "D")
			if err := lvl.MoveLayer(c.from, c.to); err != nil {
				t.Fatalf("MoveLayer: %v", err)
			}
			got := lvl.LayerNames()
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("order: expected %v, got %v", c.want, got)
				}
				// contents travel with their metadata
				wantTag := int(c.want[i][0]-'A') + 1
				if lvl.Layers[i][0] != wantTag {
					t.Fatalf("layer %d holds tiles of %d, expected %d", i, lvl.Layers[i][0], wantTag)
				}
			}
		})
	}

	lvl := newLayered(t, "A")
	if err := lvl.MoveLayer(0, 1); !errors.Is(err, ErrLayerIndex) {
		t.Fatalf("expected ErrLayerIndex, got %v", err)
	}
}

func TestRemoveLayer(t *testing.T) {
	lvl := newLayered(t, "A", "B", "C")
	if err := lvl.RemoveLayer(1); err != nil {
		t.Fatalf("RemoveLayer: %v", err)
	}
	if got := lvl.LayerNames(); len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Fatalf("unexpected layers after remove: %v", got)
	}
	if lvl.Layers[1][0] != 3 {
		t.Fatalf("tiles not removed with metadata")
	}
	if err := lvl.RemoveLayer(-1); !errors.Is(err, ErrLayerIndex) {
		t.Fatalf("expected ErrLayerIndex, got %v", err)
	}
	if lvl.LayerIndex("B") != -1 || lvl.LayerIndex("C") != 1 {
		t.Fatalf("LayerIndex out of date")
	}
}

func TestLayerToggles(t *testing.T) {
	lvl := newLayered(t, "A")
	if err := lvl.SetLayerEnabled(0, false); err != nil {
		t.Fatalf("SetLayerEnabled: %v", err)
	}
	if !lvl.LayerMeta[0].Disabled {
		t.Fatalf("expected layer disabled")
	}
	if err := lvl.SetLayerPhysics(0, true); err != nil {
		t.Fatalf("SetLayerPhysics: %v", err)
	}
	if !lvl.LayerMeta[0].HasPhysics {
		t.Fatalf("expected physics layer")
	}
	if err := lvl.SetLayerEnabled(2, true); !errors.Is(err, ErrLayerIndex) {
		t.Fatalf("expected ErrLayerIndex, got %v", err)
	}
}
