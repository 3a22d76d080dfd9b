package macro

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fedwatch/fedwatch/internal/logger"
	"github.com/fedwatch/fedwatch/internal/models"
)

// DataSet groups the published indicators served by the API, mirroring the
// layout of the macro data file.
type DataSet struct {
	Employment map[string]models.MacroIndicator `json:"employment"`
	Inflation  map[string]models.MacroIndicator `json:"inflation"`
	Monetary   map[string]models.MacroIndicator `json:"monetary"`
	GDP        map[string]models.MacroIndicator `json:"gdp"`
}

// Indicator keys the scorer depends on.
const (
	keyUnemploymentRate = "unemployment_rate"
	keyCPI              = "cpi"
	keyPolicyRate       = "fed_funds_rate"
)

// Provider supplies published macro statistics, read from a JSON data file
// maintained by an external pipeline. When the file is absent or unreadable
// the compiled-in baseline values are served instead, so the scorer always
// has a usable snapshot.
type Provider struct {
	filePath string
}

// NewProvider creates a Provider reading from filePath.
func NewProvider(filePath string) *Provider {
	return &Provider{filePath: filePath}
}

// Load reads the current data set. Missing or malformed files degrade to
// the baseline data set with a warning; the provider never errors.
func (p *Provider) Load() DataSet {
	if p.filePath == "" {
		return baseline()
	}

	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("macro: reading data file %s failed: %v", p.filePath, err)
		}
		return baseline()
	}

	var data DataSet
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("macro: parsing data file %s failed: %v", p.filePath, err)
		return baseline()
	}

	return merge(baseline(), data)
}

// Statistics distills the data set into the immutable value consumed by the
// scorer.
func (p *Provider) Statistics() models.MacroStatistics {
	data := p.Load()
	return models.MacroStatistics{
		Unemployment: data.Employment[keyUnemploymentRate],
		Inflation:    data.Inflation[keyCPI],
		PolicyRate:   data.Monetary[keyPolicyRate],
	}
}

// Save writes the data set atomically, for pipelines that refresh the file.
func (p *Provider) Save(data DataSet) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal macro data: %w", err)
	}

	tempPath := p.filePath + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write macro data: %w", err)
	}
	if err := os.Rename(tempPath, p.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename macro data: %w", err)
	}
	return nil
}

// merge overlays loaded indicator groups onto the baseline so a partial data
// file still yields a complete set.
func merge(base, loaded DataSet) DataSet {
	if len(loaded.Employment) > 0 {
		base.Employment = loaded.Employment
	}
	if len(loaded.Inflation) > 0 {
		base.Inflation = loaded.Inflation
	}
	if len(loaded.Monetary) > 0 {
		base.Monetary = loaded.Monetary
	}
	if len(loaded.GDP) > 0 {
		base.GDP = loaded.GDP
	}
	return base
}

// baseline is the compiled-in set of last-published figures, used until the
// data pipeline writes fresher ones.
func baseline() DataSet {
	return DataSet{
		Employment: map[string]models.MacroIndicator{
			keyUnemploymentRate: {Value: 4.3, Unit: "%", Source: "BLS", AsOf: "2026-01-01"},
			"nonfarm_payrolls":  {Value: 256000, Unit: "jobs", Source: "BLS", AsOf: "2026-01-01"},
		},
		Inflation: map[string]models.MacroIndicator{
			keyCPI:     {Value: 2.4, Unit: "%", Source: "BLS", AsOf: "2026-01-01"},
			"core_cpi": {Value: 2.5, Unit: "%", Source: "BLS", AsOf: "2026-01-01"},
			"pce":      {Value: 2.3, Unit: "%", Source: "BLS", AsOf: "2025-11-01"},
		},
		Monetary: map[string]models.MacroIndicator{
			keyPolicyRate: {Value: 4.25, Unit: "%", Source: "Federal Reserve", AsOf: "2026-01-29"},
		},
		GDP: map[string]models.MacroIndicator{
			"gdp_growth": {Value: 2.5, Unit: "%", Source: "BEA", AsOf: "2025-Q4"},
		},
	}
}
