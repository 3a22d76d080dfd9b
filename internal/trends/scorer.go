package trends

import (
	"math"
	"time"

	"github.com/fedwatch/fedwatch/internal/models"
)

// NeutralScore is returned when the snapshot holds no usable signal.
// "No signal" must not be conflated with "bad signal".
const NeutralScore = 50.0

// Score reduces a snapshot to a single 0–100 job-market health score.
//
// Each category's count is normalized against the maximum observed count and
// scaled by its economic-significance weight:
//
//	score = Σ (count/maxCount) * 100 * weight
//
// over categories present in both the snapshot and the weight table. The
// gauge is relative: it says which sectors are hottest relative to each
// other, not whether hiring is objectively healthy. A weighted category
// absent from the snapshot contributes nothing; its weight is forfeited, not
// redistributed. An empty snapshot or an all-zero one returns NeutralScore.
// The result is rounded to one decimal place.
func Score(snapshot models.TrendSnapshot, weights models.ScoreWeights) float64 {
	if snapshot.Len() == 0 {
		return NeutralScore
	}

	maxCount := 0
	for _, result := range snapshot.Trends {
		if result.Count.Known && result.Count.Value > maxCount {
			maxCount = result.Count.Value
		}
	}
	if maxCount == 0 {
		return NeutralScore
	}

	score := 0.0
	for category, weight := range weights {
		result, ok := snapshot.Trends[category]
		if !ok || !result.Count.Known {
			continue
		}
		normalized := float64(result.Count.Value) / float64(maxCount) * 100
		score += normalized * weight
	}

	return math.Round(score*10) / 10
}

// ScoreReport computes the health score together with its qualitative
// rating and the per-category normalized values that produced it.
func ScoreReport(snapshot models.TrendSnapshot, weights models.ScoreWeights) models.HealthScore {
	score := Score(snapshot, weights)

	factors := make(map[string]float64, snapshot.Len())
	maxCount := 0
	for _, result := range snapshot.Trends {
		if result.Count.Known && result.Count.Value > maxCount {
			maxCount = result.Count.Value
		}
	}
	if maxCount > 0 {
		for category, result := range snapshot.Trends {
			if result.Count.Known {
				factors[category] = math.Round(float64(result.Count.Value)/float64(maxCount)*1000) / 10
			}
		}
	}

	return models.HealthScore{
		Score:     score,
		Rating:    models.RatingFromScore(score),
		Factors:   factors,
		Timestamp: time.Now().UTC(),
	}
}
