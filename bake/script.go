package bake

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/tilebake/levels"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads a solidity script from disk, falling back to the
// embedded scripts.
func LoadScript(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	clean := filepath.ToSlash(name)
	if !strings.HasPrefix(clean, "scripts/") {
		clean = "scripts/" + filepath.Base(clean)
	}
	data, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("bake: load script %s: %w", name, err)
	}
	return data, nil
}

// DefaultSolid treats every non-empty tile except hazard triangles as solid.
func DefaultSolid(v int) bool {
	return v != levels.TileEmpty && v != levels.TileTriangle
}

// ScriptFilter decides solidity by running a tengo script. The script sees
// the tile value as the global `value` and assigns the global `solid`.
// Results are cached per value; a filter is safe for concurrent use.
type ScriptFilter struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
	cache    map[int]bool
}

func NewScriptFilter(src []byte) (*ScriptFilter, error) {
	script := tengo.NewScript(src)
	_ = script.Add("value", 0)
	_ = script.Add("solid", false)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("bake: compile solid script: %w", err)
	}
	return &ScriptFilter{compiled: compiled, cache: map[int]bool{}}, nil
}

// Solid evaluates the script for one tile value. A runtime panic inside the
// script is returned as an error and the value is not cached.
func (f *ScriptFilter) Solid(v int) (solid bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			solid, err = false, fmt.Errorf("bake: solid script value=%d: %v", v, r)
		}
	}()

	if s, ok := f.cache[v]; ok {
		return s, nil
	}
	if err := f.compiled.Set("value", v); err != nil {
		return false, fmt.Errorf("bake: solid script: %w", err)
	}
	if err := f.compiled.Set("solid", false); err != nil {
		return false, fmt.Errorf("bake: solid script: %w", err)
	}
	if err := f.compiled.Run(); err != nil {
		return false, fmt.Errorf("bake: solid script value=%d: %w", v, err)
	}
	s := f.compiled.Get("solid").Bool()
	f.cache[v] = s
	return s, nil
}

// Filter resolves every distinct value in tiles up front and returns a plain
// lookup, so script errors surface before extraction starts.
func (f *ScriptFilter) Filter(tiles []int) (func(int) bool, error) {
	solid := make(map[int]bool)
	for _, v := range tiles {
		if v == levels.TileEmpty {
			continue
		}
		if _, ok := solid[v]; ok {
			continue
		}
		s, err := f.Solid(v)
		if err != nil {
			return nil, err
		}
		solid[v] = s
	}
	return func(v int) bool { return solid[v] }, nil
}
