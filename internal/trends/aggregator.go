// Package trends collects per-category posting counts into a snapshot and
// reduces the snapshot to a single 0–100 job-market health score.
package trends

import (
	"context"
	"time"

	"github.com/fedwatch/fedwatch/internal/logger"
	"github.com/fedwatch/fedwatch/internal/models"
)

// DefaultCourtesyDelay is the minimum pacing interval between successive
// requests to the upstream source. The delay is a scheduling contract: any
// future concurrent implementation must preserve inter-request spacing per
// upstream host.
const DefaultCourtesyDelay = 1 * time.Second

// Fetcher retrieves the posting count for one category.
type Fetcher interface {
	FetchCategoryCount(ctx context.Context, category models.Category, location string) models.RawCountResult
}

// Aggregator drives the fetcher across configured categories sequentially,
// pacing requests with the courtesy delay.
type Aggregator struct {
	fetcher Fetcher
	delay   time.Duration
}

// NewAggregator creates an Aggregator. A non-positive delay falls back to
// DefaultCourtesyDelay.
func NewAggregator(fetcher Fetcher, courtesyDelay time.Duration) *Aggregator {
	if courtesyDelay <= 0 {
		courtesyDelay = DefaultCourtesyDelay
	}
	return &Aggregator{fetcher: fetcher, delay: courtesyDelay}
}

// AggregateAll fetches every category in configured order and accumulates
// the successful results into a snapshot stamped at the start of the run.
// Categories whose fetch yields an unknown count are omitted entirely, so
// the snapshot never carries sentinel values. If ctx is cancelled
// mid-iteration the partial snapshot collected so far is returned; it is a
// valid output, not an error state.
func (a *Aggregator) AggregateAll(ctx context.Context, categories []models.Category, location string) models.TrendSnapshot {
	snapshot := models.NewTrendSnapshot(time.Now().UTC())

	for i, category := range categories {
		if i > 0 {
			select {
			case <-ctx.Done():
				logger.Info("aggregator: run cancelled after %d of %d categories", snapshot.Len(), len(categories))
				return snapshot
			case <-time.After(a.delay):
			}
		} else if ctx.Err() != nil {
			return snapshot
		}

		logger.Debug("aggregator: fetching category %s", category.Name)
		result := a.fetcher.FetchCategoryCount(ctx, category, location)
		if !result.Count.Known {
			// Omitted, not stored with a placeholder.
			logger.Warn("aggregator: category %s yielded no count, omitting from snapshot", category.Name)
			continue
		}
		snapshot.Add(result)
	}

	logger.Info("aggregator: collected %d of %d categories", snapshot.Len(), len(categories))
	return snapshot
}
