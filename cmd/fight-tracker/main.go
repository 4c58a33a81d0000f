package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/version"
)

func main() {
	// Path may be provided via TRACKER_CONFIG or defaults to
	// ./tracker_config.json in the current working directory. A missing
	// file runs with defaults.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Error("invalid log level, keeping info", err, logging.Fields{"level": cfg.LogLevel})
	}
	defer logging.Sync()

	logging.Info("starting fight tracker", logging.Fields{
		"version":                version.Version,
		"commit":                 version.Commit,
		constants.LogFieldDriver: cfg.Storage.Driver,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := openRepositoryOrExit(ctx, cfg)
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Error("failed to close storage", err, nil)
		}
	}()

	if err := runServer(ctx, cfg, newRouter(repo)); err != nil {
		logging.Error("server stopped with error", err, nil)
	}
}
