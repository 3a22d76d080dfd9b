package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/fedwatch/fedwatch/internal/models"
	"github.com/fedwatch/fedwatch/internal/storage"
)

// TrendsHandler serves the job-market side of the API: persisted trend
// snapshots and their health scores.
type TrendsHandler struct {
	store *storage.Storage
}

// NewTrendsHandler creates a trends handler backed by the given storage.
func NewTrendsHandler(store *storage.Storage) *TrendsHandler {
	return &TrendsHandler{store: store}
}

// trendsResponse is the payload for GET /api/v1/trends.
type trendsResponse struct {
	ID          string                           `json:"id"`
	Timestamp   time.Time                        `json:"timestamp"`
	Trends      map[string]models.RawCountResult `json:"trends"`
	Categories  []string                         `json:"categories"`
	HealthScore float64                          `json:"health_score"`
	Rating      string                           `json:"rating"`
}

// signalEntry is one category row in GET /api/v1/signals.
type signalEntry struct {
	Category  string    `json:"category"`
	JobCount  int       `json:"job_count"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Trends returns the most recent persisted snapshot with its score.
func (h *TrendsHandler) Trends(c fiber.Ctx) error {
	record, ok := h.store.Latest()
	if !ok {
		return jsonInsufficientData(c, "no trend snapshot collected yet")
	}

	return jsonSuccess(c, trendsResponse{
		ID:          record.ID,
		Timestamp:   record.Timestamp,
		Trends:      record.Trends,
		Categories:  record.Categories,
		HealthScore: record.HealthScore,
		Rating:      record.Rating,
	})
}

// Signals returns per-category job counts from the latest snapshot.
func (h *TrendsHandler) Signals(c fiber.Ctx) error {
	record, ok := h.store.Latest()
	if !ok {
		return jsonInsufficientData(c, "no signals collected yet")
	}

	signals := make([]signalEntry, 0, len(record.Categories))
	for _, name := range record.Categories {
		result, ok := record.Trends[name]
		if !ok {
			continue
		}
		signals = append(signals, signalEntry{
			Category:  name,
			JobCount:  result.Count.Value,
			Source:    "indeed",
			Timestamp: result.Timestamp,
		})
	}

	return jsonSuccess(c, fiber.Map{
		"indeed":    signals,
		"timestamp": record.Timestamp,
	})
}

// History returns up to n most recent records, newest first.
func (h *TrendsHandler) History(c fiber.Ctx) error {
	n := fiber.Query(c, "limit", 10)
	if n <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "limit must be positive")
	}

	records := h.store.History(n)
	if len(records) == 0 {
		return jsonInsufficientData(c, "no trend history available yet")
	}
	return jsonSuccess(c, records)
}
