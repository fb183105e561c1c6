package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.json
var LevelsFS embed.FS

// LoadLevelFromFS loads one of the embedded sample levels.
func LoadLevelFromFS(name string) (*Level, error) {
	return LoadFS(LevelsFS, name)
}

// Samples lists the embedded sample levels by file name.
func Samples() ([]string, error) {
	names, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil, fmt.Errorf("levels: list samples: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
