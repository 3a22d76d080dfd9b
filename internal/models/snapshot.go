package models

import (
	"fmt"
	"time"
)

// TrendSnapshot maps category names to their fetched count results, together
// with a single aggregation timestamp captured at the start of the run.
// Categories whose fetch yielded an unknown count are simply absent — the
// snapshot never holds placeholder entries. A partial snapshot is a valid
// snapshot.
type TrendSnapshot struct {
	Timestamp time.Time                 `json:"timestamp"`
	Trends    map[string]RawCountResult `json:"trends"`

	// Categories records insertion order, which follows configured
	// category iteration order.
	Categories []string `json:"categories"`
}

// NewTrendSnapshot returns an empty snapshot stamped with the given time.
func NewTrendSnapshot(ts time.Time) TrendSnapshot {
	return TrendSnapshot{
		Timestamp: ts,
		Trends:    make(map[string]RawCountResult),
	}
}

// Add stores a result under its category name, recording insertion order.
// Adding the same category twice replaces the entry without duplicating the
// order record.
func (s *TrendSnapshot) Add(res RawCountResult) {
	if s.Trends == nil {
		s.Trends = make(map[string]RawCountResult)
	}
	if _, exists := s.Trends[res.Category]; !exists {
		s.Categories = append(s.Categories, res.Category)
	}
	s.Trends[res.Category] = res
}

// Len returns the number of categories present in the snapshot.
func (s *TrendSnapshot) Len() int {
	return len(s.Trends)
}

// ScoreWeights maps category names to economic-significance weights in [0,1].
// Weights should sum to 1 for the health score to stay within [0,100].
type ScoreWeights map[string]float64

// Validate checks that every weight is within [0,1].
func (w ScoreWeights) Validate() error {
	for name, weight := range w {
		if weight < 0.0 || weight > 1.0 {
			return fmt.Errorf("weight for category %q must be between 0.0 and 1.0, got %v", name, weight)
		}
	}
	return nil
}
