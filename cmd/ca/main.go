//go:build ebiten

package main

import (
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"torus-ca/internal/app"
	"torus-ca/internal/config"
	"torus-ca/internal/engine"
)

func main() {
	cfg := config.Default()
	cfg.Bind(pflag.CommandLine)
	path := pflag.String("config", "", "YAML config file; explicit flags override it")
	verbose := pflag.BoolP("verbose", "v", false, "log debug output")
	pflag.Parse()

	if *path != "" {
		fileCfg, err := config.Load(*path)
		if err != nil {
			log.Fatal(err)
		}
		if err := fileCfg.Override(pflag.CommandLine); err != nil {
			log.Fatal(err)
		}
		cfg = fileCfg
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	d, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	d.RandomFill(cfg.Fill)

	game := app.New(d, cfg.Scale, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("torus-ca - " + d.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
