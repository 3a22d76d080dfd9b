package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fedwatch/fedwatch/internal/api"
	"github.com/fedwatch/fedwatch/internal/config"
	"github.com/fedwatch/fedwatch/internal/logger"
	"github.com/fedwatch/fedwatch/internal/macro"
	"github.com/fedwatch/fedwatch/internal/metrics"
	"github.com/fedwatch/fedwatch/internal/storage"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	metrics.Init()

	// The API reads the same artifact file the collector writes.
	store := storage.New(cfg.Storage.MaxRecords, cfg.Storage.FilePath)
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load persisted trend history: %v", err)
	} else {
		logger.Info("Loaded %d trend record(s) from %s", store.Count(), cfg.Storage.FilePath)
	}

	provider := macro.NewProvider(cfg.Macro.DataFile)

	srv := api.New(cfg)
	srv.RegisterRoutes(store, provider)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("Server error: %v", err)
		}
	}()

	logger.Info("API server started on %s", cfg.Server.ListenAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
