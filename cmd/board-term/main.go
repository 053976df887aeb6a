package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"connex/internal/app"
	"connex/internal/board"
	"connex/internal/term"
	"connex/pkg/logger"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "board-term.log", "log file; the terminal is taken by the viewer")
	flag.Parse()

	out, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.FromEnv().WithError(err).Fatal("cannot open log file")
	}
	defer out.Close()
	log := logger.New(out, cfg.LogLevel, os.Getenv("LOG_FORMAT"))

	b, err := app.BuildBoard(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("cannot build board")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("cannot open terminal")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("cannot init terminal")
	}
	defer screen.Fini()

	v := term.New(screen, b, cfg.TPS, log)
	v.SnapshotPath = cfg.SnapshotPath
	v.Save = func(bd *board.Board, path string) error { return app.SaveBoard(bd, path) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := v.Run(ctx); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("viewer stopped")
	}
}
