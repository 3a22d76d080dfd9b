package macro

import (
	"testing"

	"github.com/fedwatch/fedwatch/internal/models"
)

func statsOf(unemployment, inflation, policyRate float64) models.MacroStatistics {
	return models.MacroStatistics{
		Unemployment: models.MacroIndicator{Value: unemployment, Unit: "%", Source: "BLS"},
		Inflation:    models.MacroIndicator{Value: inflation, Unit: "%", Source: "BLS"},
		PolicyRate:   models.MacroIndicator{Value: policyRate, Unit: "%", Source: "Federal Reserve"},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name         string
		unemployment float64
		inflation    float64
		wantScore    float64
		wantRating   string
	}{
		{
			// Within [3.5, 5.0], only the 0.4pp inflation deviation costs points.
			name:         "on-target economy",
			unemployment: 4.3,
			inflation:    2.4,
			wantScore:    96.0,
			wantRating:   models.RatingHealthy,
		},
		{
			// 2pp above target costs 20; exactly on the healthy boundary.
			name:         "elevated unemployment",
			unemployment: 7.0,
			inflation:    2.0,
			wantScore:    80.0,
			wantRating:   models.RatingHealthy,
		},
		{
			name:         "elevated unemployment and inflation",
			unemployment: 7.0,
			inflation:    6.0,
			wantScore:    40.0,
			wantRating:   models.RatingConcerning,
		},
		{
			// Below-target unemployment is penalized at half the slope.
			name:         "overheating labor market",
			unemployment: 3.0,
			inflation:    2.0,
			wantScore:    97.5,
			wantRating:   models.RatingHealthy,
		},
		{
			name:         "deflation penalized symmetrically",
			unemployment: 4.0,
			inflation:    -1.0,
			wantScore:    70.0,
			wantRating:   models.RatingHealthy,
		},
		{
			name:         "cautious band",
			unemployment: 6.5,
			inflation:    4.0,
			wantScore:    65.0,
			wantRating:   models.RatingCautious,
		},
		{
			name:         "clamped at zero",
			unemployment: 15.0,
			inflation:    12.0,
			wantScore:    0.0,
			wantRating:   models.RatingConcerning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(statsOf(tt.unemployment, tt.inflation, 4.25))
			if got.Score != tt.wantScore {
				t.Errorf("Score() = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Rating != tt.wantRating {
				t.Errorf("Rating = %q, want %q", got.Rating, tt.wantRating)
			}
		})
	}
}

func TestScoreExposesFactors(t *testing.T) {
	got := Score(statsOf(4.3, 2.4, 4.25))

	if got.Factors["unemployment"] != 4.3 {
		t.Errorf("unemployment factor = %v, want 4.3", got.Factors["unemployment"])
	}
	if got.Factors["inflation"] != 2.4 {
		t.Errorf("inflation factor = %v, want 2.4", got.Factors["inflation"])
	}
	if got.Factors["policy_rate"] != 4.25 {
		t.Errorf("policy_rate factor = %v, want 4.25", got.Factors["policy_rate"])
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestScoreDeterministic(t *testing.T) {
	stats := statsOf(5.5, 3.1, 4.25)
	first := Score(stats)
	second := Score(stats)
	if first.Score != second.Score || first.Rating != second.Rating {
		t.Errorf("Score not deterministic: %v vs %v", first, second)
	}
}
