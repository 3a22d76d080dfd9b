package models

import "time"

// Qualitative ratings derived from a 0–100 health score.
const (
	RatingHealthy    = "healthy"
	RatingCautious   = "cautious"
	RatingConcerning = "concerning"
)

// Thresholds that map a score to a rating.
const (
	ThresholdHealthy  = 70.0
	ThresholdCautious = 50.0
)

// HealthScore is the output value of either scorer: a numeric score in
// [0,100], its qualitative rating, and the raw factor values that produced
// it, for explainability. It carries no identity beyond its timestamp and
// is never mutated after creation.
type HealthScore struct {
	Score     float64            `json:"score"`
	Rating    string             `json:"rating"`
	Factors   map[string]float64 `json:"factors"`
	Timestamp time.Time          `json:"timestamp"`
}

// RatingFromScore maps a numeric score to its qualitative rating.
func RatingFromScore(score float64) string {
	switch {
	case score >= ThresholdHealthy:
		return RatingHealthy
	case score >= ThresholdCautious:
		return RatingCautious
	default:
		return RatingConcerning
	}
}
