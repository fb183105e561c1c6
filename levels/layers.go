package levels

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLayerName   = errors.New("invalid layer name")
	ErrLayerIndex  = errors.New("layer index out of range")
	ErrOutOfBounds = errors.New("tile out of bounds")
)

// DefaultLayerName is used when AddLayer is given an empty name.
const DefaultLayerName = "New Layer"

// LayerIndex returns the index of the layer with the given name, or -1.
func (l *Level) LayerIndex(name string) int {
	for i, m := range l.LayerMeta {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// LayerNames lists layer names in draw order.
func (l *Level) LayerNames() []string {
	names := make([]string, len(l.LayerMeta))
	for i, m := range l.LayerMeta {
		names[i] = m.Name
	}
	return names
}

// AddLayer appends an empty layer on top. A taken name gets a numeric
// suffix. It returns the new layer's index.
func (l *Level) AddLayer(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultLayerName
	}
	seen := make(map[string]bool, len(l.LayerMeta))
	for _, m := range l.LayerMeta {
		seen[m.Name] = true
	}
	name = l.uniqueName(name, seen)

	l.Layers = append(l.Layers, make([]int, l.Width*l.Height))
	l.LayerMeta = append(l.LayerMeta, LayerMeta{Color: DefaultLayerColor, Name: name})
	return len(l.Layers) - 1, nil
}

func (l *Level) uniqueName(name string, seen map[string]bool) string {
	if !seen[name] {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !seen[candidate] {
			return candidate
		}
	}
}

func (l *Level) checkIndex(i int) error {
	if i < 0 || i >= len(l.Layers) {
		return fmt.Errorf("%w: %d", ErrLayerIndex, i)
	}
	return nil
}

// RemoveLayer deletes a layer and its metadata.
func (l *Level) RemoveLayer(i int) error {
	if err := l.checkIndex(i); err != nil {
		return fmt.Errorf("levels: remove layer: %w", err)
	}
	l.Layers = append(l.Layers[:i], l.Layers[i+1:]...)
	l.LayerMeta = append(l.LayerMeta[:i], l.LayerMeta[i+1:]...)
	return nil
}

// RenameLayer renames layer i. Empty names and names used by another layer
// are rejected with ErrLayerName.
func (l *Level) RenameLayer(i int, name string) error {
	if err := l.checkIndex(i); err != nil {
		return fmt.Errorf("levels: rename layer: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("levels: rename layer: %w: empty", ErrLayerName)
	}
	if j := l.LayerIndex(name); j >= 0 && j != i {
		return fmt.Errorf("levels: rename layer: %w: %q already exists", ErrLayerName, name)
	}
	l.LayerMeta[i].Name = name
	return nil
}

// MoveLayer moves the layer at from so it ends up at index to, shifting the
// layers in between.
func (l *Level) MoveLayer(from, to int) error {
	if err := l.checkIndex(from); err != nil {
		return fmt.Errorf("levels: move layer: %w", err)
	}
	if err := l.checkIndex(to); err != nil {
		return fmt.Errorf("levels: move layer: %w", err)
	}
	if from == to {
		return nil
	}
	tiles, meta := l.Layers[from], l.LayerMeta[from]
	if from < to {
		copy(l.Layers[from:to], l.Layers[from+1:to+1])
		copy(l.LayerMeta[from:to], l.LayerMeta[from+1:to+1])
	} else {
		copy(l.Layers[to+1:from+1], l.Layers[to:from])
		copy(l.LayerMeta[to+1:from+1], l.LayerMeta[to:from])
	}
	l.Layers[to], l.LayerMeta[to] = tiles, meta
	return nil
}

func (l *Level) SetLayerEnabled(i int, enabled bool) error {
	if err := l.checkIndex(i); err != nil {
		return fmt.Errorf("levels: set layer enabled: %w", err)
	}
	l.LayerMeta[i].Disabled = !enabled
	return nil
}

func (l *Level) SetLayerPhysics(i int, physics bool) error {
	if err := l.checkIndex(i); err != nil {
		return fmt.Errorf("levels: set layer physics: %w", err)
	}
	l.LayerMeta[i].HasPhysics = physics
	return nil
}
