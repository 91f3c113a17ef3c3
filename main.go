package main

import (
	"log/slog"
	"os"

	"SketchBoard/internal/config"
	"SketchBoard/internal/enhance"
	"SketchBoard/internal/surface"
	"SketchBoard/internal/tools"
	"SketchBoard/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	s, err := surface.New(surface.Backend(cfg.Backend), cfg.Width, cfg.Height, cfg.SurfaceOptions())
	if err != nil {
		log.Error("create surface", "error", err)
		os.Exit(1)
	}
	engine := tools.New(s, tools.Options{
		HistoryDepth: cfg.HistoryDepth,
		Brush:        cfg.Brush(),
		Aliased:      !cfg.Antialias,
		Logger:       log.With("component", "engine"),
	})
	engine.Select(cfg.StartTool())
	enhancer := enhance.NewClient(cfg.EnhanceURL, cfg.Timeout, log.With("component", "enhance"))

	log.Info("starting", "backend", cfg.Backend, "width", cfg.Width, "height", cfg.Height, "history", cfg.HistoryDepth, "tool", engine.Tool())
	ui.Run(cfg, engine, enhancer, log)
}
