//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"connex/internal/app"
	"connex/pkg/logger"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log := logger.New(os.Stderr, cfg.LogLevel, os.Getenv("LOG_FORMAT"))

	sim, err := app.NewSim(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("cannot build simulation")
	}

	game := app.New(sim, cfg, log)
	size := sim.Size()

	ebiten.SetWindowTitle("connex - " + sim.Name())
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(size.W*cfg.Scale+max(cfg.HUDWidth, 0), size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("game loop failed")
	}
}
