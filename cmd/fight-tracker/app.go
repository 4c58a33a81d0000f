package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/fight-tracker/internal/api"
	"github.com/ericogr/fight-tracker/internal/config"
	"github.com/ericogr/fight-tracker/internal/constants"
	"github.com/ericogr/fight-tracker/internal/logging"
	"github.com/ericogr/fight-tracker/internal/service"
	"github.com/ericogr/fight-tracker/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid tracker configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func openRepositoryOrExit(ctx context.Context, cfg *config.LoadedConfig) storage.Repository {
	repo, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logging.Fatal("Failed to initialize storage", err, logging.Fields{constants.LogFieldDriver: cfg.Storage.Driver})
	}
	return repo
}

func newRouter(repo storage.Repository) *gin.Engine {
	fights := service.NewFightService(repo, service.NewSessions(repo), nil)
	inventory := service.NewInventoryService(repo)
	return api.NewRouter(api.NewHandler(fights, inventory))
}
