package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelPath := flag.String("level", "", "level file (.json or .tmx) or embedded sample name; defaults to the last one viewed")
	configPath := flag.String("config", "", "bake config yaml (defaults apply when empty)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*3/4, h*3/4)
	ebiten.SetWindowTitle("tilebake")

	v := newViewer(ctx, *levelPath, *configPath, openSettings())
	defer v.saveSettings()

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
