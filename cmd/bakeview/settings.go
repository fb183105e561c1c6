package main

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

const settingsKey = "bakeview"

// viewSettings are restored on the next start.
type viewSettings struct {
	Level     string  `json:"level"`
	Zoom      float64 `json:"zoom"`
	ShowGrid  bool    `json:"showGrid"`
	ShowTiles bool    `json:"showTiles"`
	ShowDebug bool    `json:"showDebug"`
	ShowBoxes bool    `json:"showBoxes"`
}

func defaultSettings() viewSettings {
	return viewSettings{Zoom: 1, ShowGrid: true, ShowTiles: true}
}

type settingsStore struct {
	m *gdata.Manager
}

// openSettings opens the per-user store. A store that cannot be opened is
// logged and then behaves as empty.
func openSettings() *settingsStore {
	m, err := gdata.Open(gdata.Config{AppName: "tilebake"})
	if err != nil {
		log.Printf("bakeview: settings unavailable: %v", err)
		return &settingsStore{}
	}
	return &settingsStore{m: m}
}

func (s *settingsStore) load() viewSettings {
	out := defaultSettings()
	if s == nil || s.m == nil {
		return out
	}
	data, err := s.m.LoadItem(settingsKey)
	if err != nil {
		log.Printf("bakeview: load settings: %v", err)
		return out
	}
	if data == nil {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		log.Printf("bakeview: parse settings: %v", err)
		return defaultSettings()
	}
	if out.Zoom <= 0 {
		out.Zoom = 1
	}
	return out
}

func (s *settingsStore) save(v viewSettings) {
	if s == nil || s.m == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("bakeview: encode settings: %v", err)
		return
	}
	if err := s.m.SaveItem(settingsKey, data); err != nil {
		log.Printf("bakeview: save settings: %v", err)
	}
}
