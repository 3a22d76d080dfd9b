// Package macro computes an economic health score from published
// macroeconomic statistics. The scorer performs no fetching or retrying:
// statistics arrive as already-fetched values from the data provider.
package macro

import (
	"math"
	"time"

	"github.com/fedwatch/fedwatch/internal/models"
)

// Targets the deviation penalties are anchored to.
const (
	// Unemployment is considered on target inside [3.5, 5.0]%.
	unemploymentUpper = 5.0
	unemploymentLower = 3.5

	// Inflation is penalized symmetrically around a 2% target.
	inflationTarget = 2.0
)

// Score computes a 0–100 macro health score from published rates.
//
// Starting at 100, the score is reduced by rule-based deviation penalties:
// unemployment above 5% costs 10 points per percentage point, unemployment
// below 3.5% costs 5 per point (overheating is judged less harmful than
// slack, so the penalty is asymmetric), and inflation costs 10 points per
// percentage point of deviation from the 2% target in either direction.
// The result is clamped to [0, 100] and rated with the shared thresholds.
func Score(stats models.MacroStatistics) models.HealthScore {
	score := 100.0

	unemployment := stats.Unemployment.Value
	if unemployment > unemploymentUpper {
		score -= (unemployment - unemploymentUpper) * 10
	} else if unemployment < unemploymentLower {
		score -= (unemploymentLower - unemployment) * 5
	}

	inflation := stats.Inflation.Value
	score -= math.Abs(inflation-inflationTarget) * 10

	score = clamp(score, 0, 100)
	score = math.Round(score*10) / 10

	return models.HealthScore{
		Score:  score,
		Rating: models.RatingFromScore(score),
		Factors: map[string]float64{
			"unemployment": unemployment,
			"inflation":    inflation,
			"policy_rate":  stats.PolicyRate.Value,
		},
		Timestamp: time.Now().UTC(),
	}
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
