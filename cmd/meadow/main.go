// Package main is the entry point for the Meadow terrain viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/game"
	"github.com/Faultbox/meadow/internal/game/world"
	"github.com/Faultbox/meadow/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, path, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if path == "" {
		path = "(defaults)"
	}
	seed := world.ResolveSeed(cfg.World.Seed)

	logger.Info("=== Meadow ===")
	logger.Info("configuration loaded",
		zap.String("path", path),
		zap.Int64("seed", seed),
		zap.Bool("random_seed", cfg.World.Seed == 0),
		zap.Int("world_size", cfg.World.Size),
		zap.Int("noise_size", cfg.World.NoiseSize),
	)
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg, seed)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	runErr := g.Run()
	g.Close()
	if runErr != nil {
		logger.Error("viewer error", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}
