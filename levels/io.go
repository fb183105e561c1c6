package levels

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Parse decodes a level from JSON and fills in missing layer metadata.
func Parse(r io.Reader) (*Level, error) {
	var lvl Level
	if err := json.NewDecoder(r).Decode(&lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	if err := lvl.normalize(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Load reads a level from a JSON file, or a Tiled map when the path ends in
// .tmx.
func Load(path string) (*Level, error) {
	if strings.EqualFold(filepath.Ext(path), ".tmx") {
		return LoadTMX(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read level: %w", err)
	}
	defer f.Close()

	lvl, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return lvl, nil
}

// LoadFS reads a JSON level from fsys.
func LoadFS(fsys fs.FS, name string) (*Level, error) {
	if strings.EqualFold(filepath.Ext(name), ".tmx") {
		return LoadTMX(fsys, name)
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read level: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Save writes the level as indented JSON, creating the parent directory.
func (l *Level) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("levels: save: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("levels: save: %w", err)
	}
	defer f.Close()

	if err := l.Encode(f); err != nil {
		return fmt.Errorf("levels: save: %w", err)
	}
	return f.Close()
}

func (l *Level) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// Open loads a level from disk, falling back to the embedded samples when no
// such file exists. A sample name may omit its .json extension. The returned
// name is the file's base name without extension.
func Open(path string) (*Level, string, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if _, err := os.Stat(path); err == nil {
		lvl, err := Load(path)
		return lvl, name, err
	}

	sample := path
	if filepath.Ext(sample) == "" {
		sample += ".json"
	}
	lvl, err := LoadLevelFromFS(sample)
	if err != nil {
		return nil, "", fmt.Errorf("levels: %q not found on disk or in samples: %w", path, err)
	}
	return lvl, name, nil
}
