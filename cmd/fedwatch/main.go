package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/fedwatch/fedwatch/internal/config"
	"github.com/fedwatch/fedwatch/internal/indeed"
	"github.com/fedwatch/fedwatch/internal/logger"
	"github.com/fedwatch/fedwatch/internal/metrics"
	"github.com/fedwatch/fedwatch/internal/models"
	"github.com/fedwatch/fedwatch/internal/storage"
	"github.com/fedwatch/fedwatch/internal/telegram"
	"github.com/fedwatch/fedwatch/internal/trends"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	// Drop malformed categories but keep the run alive
	for _, pruneErr := range cfg.PruneCategories() {
		logger.Warn("Dropping invalid category: %v", pruneErr)
	}
	if len(cfg.Indeed.Categories) == 0 {
		logger.Fatal("No valid categories configured, nothing to collect")
	}

	metrics.Init()

	// Initialize storage and recover prior history
	store := storage.New(cfg.Storage.MaxRecords, cfg.Storage.FilePath)
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load persisted trend history: %v", err)
	} else if store.Count() > 0 {
		logger.Info("Recovered %d persisted trend record(s)", store.Count())
	}

	// Initialize the category fetcher and aggregator
	client := indeed.NewClient(
		cfg.Indeed.SearchURL,
		cfg.Indeed.UserAgent,
		cfg.Indeed.RecencyDays,
		cfg.Indeed.Timeout,
	)
	aggregator := trends.NewAggregator(client, cfg.Indeed.CourtesyDelay)

	// Initialize Telegram client
	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram client initialized successfully")
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	logger.Info("Starting collection service (interval: %v, categories: %d, location: %q, courtesy_delay: %v)",
		cfg.Indeed.PollInterval,
		len(cfg.Indeed.Categories),
		cfg.Indeed.Location,
		cfg.Indeed.CourtesyDelay,
	)

	ticker := time.NewTicker(cfg.Indeed.PollInterval)
	defer ticker.Stop()

	consecutiveFailures := 0

	handleCycleResult := func(err error) {
		if err != nil {
			consecutiveFailures++
			logger.Error("Collection cycle failed: %v", err)
			if consecutiveFailures == 1 && cfg.Telegram.Enabled && telegramClient != nil {
				if sendErr := telegramClient.SendError(err); sendErr != nil {
					logger.Warn("Failed to send error notification to Telegram: %v", sendErr)
				}
			}
		} else {
			if consecutiveFailures > 0 && cfg.Telegram.Enabled && telegramClient != nil {
				if sendErr := telegramClient.SendRecovery(consecutiveFailures); sendErr != nil {
					logger.Warn("Failed to send recovery notification to Telegram: %v", sendErr)
				}
			}
			consecutiveFailures = 0
		}
	}

	// Run initial collection immediately
	logger.Debug("Running initial collection cycle")
	handleCycleResult(runCollectionCycle(ctx, aggregator, store, telegramClient, cfg))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Service stopped")
			return

		case <-ticker.C:
			logger.Debug("Starting scheduled collection cycle")
			handleCycleResult(runCollectionCycle(ctx, aggregator, store, telegramClient, cfg))
		}
	}
}

func runCollectionCycle(
	ctx context.Context,
	aggregator *trends.Aggregator,
	store *storage.Storage,
	telegramClient *telegram.Client,
	cfg *config.Config,
) error {
	startTime := time.Now()
	logger.Info("Starting collection cycle")

	snapshot := aggregator.AggregateAll(ctx, cfg.Indeed.Categories, cfg.Indeed.Location)
	logger.Info("Collected counts for %d of %d categories", snapshot.Len(), len(cfg.Indeed.Categories))

	report := trends.ScoreReport(snapshot, cfg.Scoring.Weights)
	logger.Info("Job market health score: %.1f (%s)", report.Score, report.Rating)

	// Remember the prior outcome before this cycle's record lands
	var previous models.HealthScore
	hadPrevious := false
	if latest, ok := store.Latest(); ok {
		previous = models.HealthScore{
			Score:     latest.HealthScore,
			Rating:    latest.Rating,
			Timestamp: latest.Timestamp,
		}
		hadPrevious = true
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
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	metrics.SetJobMarketScore(report.Score)
	metrics.SetSnapshotCategories(snapshot.Len())

	// Alert when the rating deteriorates across a threshold
	if telegramClient != nil && hadPrevious && ratingRank(report.Rating) < ratingRank(previous.Rating) {
		if err := telegramClient.SendRatingChange(previous, report); err != nil {
			logger.Warn("Failed to send rating change notification: %v", err)
		}
	}

	logger.Info("Collection cycle completed in %v", time.Since(startTime).Round(time.Millisecond))
	return ctx.Err()
}

// ratingRank orders ratings so deterioration can be detected.
func ratingRank(rating string) int {
	switch rating {
	case models.RatingHealthy:
		return 2
	case models.RatingCautious:
		return 1
	default:
		return 0
	}
}
