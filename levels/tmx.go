package levels

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// Layer and object properties read from Tiled maps.
const (
	tmxCollisionProp = "collision"
	tmxColorProp     = "color"
	tmxParallaxProp  = "parallax"
	tmxSpawnGroup    = "PlayerSpawn"
)

// LoadTMX converts a Tiled map into a level. Each tile layer becomes a layer
// holding global tile IDs (0 = empty). A layer with the boolean property
// "collision" set is a physics layer; hidden layers are disabled. The first
// object in a "PlayerSpawn" group sets the spawn tile. Infinite maps and
// layers without a full tile grid are rejected.
func LoadTMX(fsys fs.FS, path string) (*Level, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("levels: load TMX %s: %w", path, err)
	}

	lvl := &Level{Width: m.Width, Height: m.Height}
	for _, layer := range m.Layers {
		// chunked (infinite) maps decode no fixed-size tile grid
		if len(layer.Tiles) != m.Width*m.Height {
			return nil, fmt.Errorf("levels: load TMX %s: layer %q holds %d tiles, expected %dx%d",
				path, layer.Name, len(layer.Tiles), m.Width, m.Height)
		}
		tiles := make([]int, m.Width*m.Height)
		for i, tile := range layer.Tiles {
			if tile == nil || tile.IsNil() || tile.Tileset == nil {
				continue
			}
			tiles[i] = int(tile.Tileset.FirstGID + tile.ID)
		}

		color := layer.Properties.GetString(tmxColorProp)
		if color == "" {
			color = DefaultLayerColor
		}
		lvl.Layers = append(lvl.Layers, tiles)
		lvl.LayerMeta = append(lvl.LayerMeta, LayerMeta{
			HasPhysics: layer.Properties.GetBool(tmxCollisionProp),
			Color:      color,
			Name:       layer.Name,
			Parallax:   layer.Properties.GetFloat(tmxParallaxProp),
			Disabled:   !layer.Visible,
		})
	}

	for _, og := range m.ObjectGroups {
		if og.Name != tmxSpawnGroup || len(og.Objects) == 0 || m.TileWidth <= 0 || m.TileHeight <= 0 {
			continue
		}
		o := og.Objects[0]
		lvl.SpawnX = int(o.X) / m.TileWidth
		lvl.SpawnY = int(o.Y) / m.TileHeight
		break
	}

	if err := lvl.normalize(); err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return lvl, nil
}
