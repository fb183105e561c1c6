package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/milk9111/tilebake/bake"
	"github.com/milk9111/tilebake/levels"
	"github.com/milk9111/tilebake/watch"
)

func main() {
	levelPath := flag.String("level", "", "level file (.json or .tmx) or embedded sample name (.json optional)")
	configPath := flag.String("config", "", "bake config yaml (defaults apply when empty)")
	outPath := flag.String("out", "", "write the baked manifest here instead of stdout")
	plotPath := flag.String("plot", "", "also render the baked paths to this image (png, svg, pdf)")
	boxes := flag.Bool("boxes", false, "also emit merged collision boxes per layer")
	watchFlag := flag.Bool("watch", false, "re-bake whenever the level, config or script changes")
	list := flag.Bool("list", false, "list embedded sample levels and exit")
	flag.Parse()

	if *list {
		names, err := levels.Samples()
		if err != nil {
			log.Fatal(err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}
	if *levelPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := &job{
		level:  *levelPath,
		config: *configPath,
		out:    *outPath,
		plot:   *plotPath,
		boxes:  *boxes,
	}
	if err := job.run(ctx); err != nil {
		if !*watchFlag {
			log.Fatal(err)
		}
		log.Printf("bake: %v", err)
	}
	if !*watchFlag {
		return
	}

	paths := []string{}
	if _, err := os.Stat(job.level); err == nil {
		paths = append(paths, job.level)
	}
	if job.config != "" {
		paths = append(paths, filepath.Dir(job.config))
	}
	if len(paths) == 0 {
		log.Fatal("bake: -watch needs a level or config on disk")
	}

	w, err := watch.New(paths...)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	log.Printf("bake: watching %s", strings.Join(paths, ", "))
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			log.Printf("bake: %s changed, re-baking", name)
			if err := job.run(ctx); err != nil {
				log.Printf("bake: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("bake: watch error: %v", err)
		}
	}
}

type job struct {
	level  string
	config string
	out    string
	plot   string
	boxes  bool
}

func (j *job) run(ctx context.Context) error {
	cfg := bake.DefaultConfig()
	if j.config != "" {
		var err error
		if cfg, err = bake.LoadConfig(j.config); err != nil {
			return err
		}
	}
	if j.boxes {
		cfg.Boxes = true
	}

	lvl, name, err := levels.Open(j.level)
	if err != nil {
		return err
	}

	baker, err := bake.New(cfg)
	if err != nil {
		return err
	}
	report, err := baker.Bake(ctx, lvl)
	if err != nil {
		return err
	}
	report.Level = name

	for _, l := range report.Layers {
		log.Printf("bake: %s: layer %q: %d path(s) from %d cell(s), origin (%d,%d)",
			name, l.Name, len(l.Paths), l.Cells, l.OriginX, l.OriginY)
		if cfg.Boxes {
			log.Printf("bake: %s: layer %q: %d box(es)", name, l.Name, len(l.Boxes))
		}
	}

	if j.out == "" {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	} else {
		if err := report.SaveJSON(j.out); err != nil {
			return err
		}
		log.Printf("bake: wrote %s", j.out)
	}

	if j.plot != "" {
		if err := bake.RenderPlot(report, j.plot); err != nil {
			return err
		}
		log.Printf("bake: wrote %s", j.plot)
	}
	return nil
}
