package models

import "errors"

// MacroIndicator is one published macroeconomic statistic tagged with its
// source and as-of timestamp. AsOf is a free-form period string because
// publishers stamp indicators at varying granularities ("2026-01-01",
// "2025-Q4").
type MacroIndicator struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Source string  `json:"source"`
	AsOf   string  `json:"timestamp"`
}

// MacroStatistics is the immutable set of published rates consumed by the
// macro health scorer. It is owned by the data-serving layer and passed by
// value at scoring time.
type MacroStatistics struct {
	Unemployment MacroIndicator `json:"unemployment"`
	Inflation    MacroIndicator `json:"inflation"`
	PolicyRate   MacroIndicator `json:"policy_rate"`
}

// Validate checks that the supplied percentages are plausible.
func (m *MacroStatistics) Validate() error {
	if m.Unemployment.Value < 0.0 || m.Unemployment.Value > 100.0 {
		return errors.New("unemployment rate must be a percentage between 0 and 100")
	}
	if m.Inflation.Value < -100.0 || m.Inflation.Value > 100.0 {
		return errors.New("inflation rate must be a percentage between -100 and 100")
	}
	return nil
}
