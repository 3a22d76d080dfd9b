// fedwatch-scan runs a single collection pass and prints the results,
// useful for trying out category configurations without running the daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/fedwatch/fedwatch/internal/config"
	"github.com/fedwatch/fedwatch/internal/indeed"
	"github.com/fedwatch/fedwatch/internal/logger"
	"github.com/fedwatch/fedwatch/internal/metrics"
	"github.com/fedwatch/fedwatch/internal/storage"
	"github.com/fedwatch/fedwatch/internal/trends"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	save       = flag.Bool("save", true, "Persist the scan result to the artifact file")
)

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
	for _, pruneErr := range cfg.PruneCategories() {
		logger.Warn("Dropping invalid category: %v", pruneErr)
	}
	if len(cfg.Indeed.Categories) == 0 {
		log.Fatal("No valid categories configured, nothing to scan")
	}

	metrics.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := indeed.NewClient(
		cfg.Indeed.SearchURL,
		cfg.Indeed.UserAgent,
		cfg.Indeed.RecencyDays,
		cfg.Indeed.Timeout,
	)
	aggregator := trends.NewAggregator(client, cfg.Indeed.CourtesyDelay)

	fmt.Println("🏭 FedWatch - Job Market Scan")
	fmt.Println(strings.Repeat("=", 50))

	snapshot := aggregator.AggregateAll(ctx, cfg.Indeed.Categories, cfg.Indeed.Location)

	fmt.Printf("\n📊 Job Posting Counts (last %d days):\n", cfg.Indeed.RecencyDays)
	fmt.Println(strings.Repeat("-", 40))
	for _, name := range snapshot.Categories {
		result := snapshot.Trends[name]
		fmt.Printf("  %-15s : %8d jobs\n", name, result.Count.Value)
	}
	missing := len(cfg.Indeed.Categories) - snapshot.Len()
	if missing > 0 {
		fmt.Printf("  (%d categories had no extractable count)\n", missing)
	}

	report := trends.ScoreReport(snapshot, cfg.Scoring.Weights)
	fmt.Printf("\n💚 Job Market Health Score: %.1f/100 (%s)\n", report.Score, report.Rating)

	if !*save {
		return
	}

	store := storage.New(cfg.Storage.MaxRecords, cfg.Storage.FilePath)
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load persisted trend history: %v", err)
	}

	record := storage.Record{
		ID:          uuid.New().String(),
		Timestamp:   snapshot.Timestamp,
		Trends:      snapshot.Trends,
		Categories:  snapshot.Categories,
		HealthScore: report.Score,
		Rating:      report.Rating,
	}
	if err := store.Append(record); err != nil {
		logger.Error("Failed to record scan result: %v", err)
		os.Exit(1)
	}
	if err := store.Save(); err != nil {
		logger.Error("Failed to persist scan result: %v", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Data saved to %s\n", cfg.Storage.FilePath)
}
