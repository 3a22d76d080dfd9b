package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/fedwatch/fedwatch/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	Indeed   IndeedConfig   `mapstructure:"indeed"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Macro    MacroConfig    `mapstructure:"macro"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// IndeedConfig holds upstream job-search source configuration
type IndeedConfig struct {
	SearchURL     string            `mapstructure:"search_url"`
	Location      string            `mapstructure:"location"`
	RecencyDays   int               `mapstructure:"recency_days"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	UserAgent     string            `mapstructure:"user_agent"`
	CourtesyDelay time.Duration     `mapstructure:"courtesy_delay"`
	PollInterval  time.Duration     `mapstructure:"poll_interval"`
	Categories    []models.Category `mapstructure:"categories"`
}

// ScoringConfig holds the job-market scorer weight table
type ScoringConfig struct {
	Weights models.ScoreWeights `mapstructure:"weights"`
}

// MacroConfig holds the published-statistics provider configuration
type MacroConfig struct {
	DataFile string `mapstructure:"data_file"`
}

// ServerConfig holds the HTTP serving layer configuration
type ServerConfig struct {
	ListenAddr  string `mapstructure:"listen_addr"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

// StorageConfig holds snapshot artifact persistence configuration
type StorageConfig struct {
	MaxRecords int    `mapstructure:"max_records"`
	FilePath   string `mapstructure:"file_path"`
}

// TelegramConfig holds Telegram alerting configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("FEDWATCH")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The tracked category table and weight table are compiled-in defaults;
	// a config file only needs to list them to override the selection.
	if len(cfg.Indeed.Categories) == 0 {
		cfg.Indeed.Categories = DefaultCategories()
	}
	if len(cfg.Scoring.Weights) == 0 {
		cfg.Scoring.Weights = DefaultWeights()
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Indeed defaults
	v.SetDefault("indeed.search_url", "https://www.indeed.com/jobs")
	v.SetDefault("indeed.location", "us")
	v.SetDefault("indeed.recency_days", 3)
	v.SetDefault("indeed.timeout", "10s")
	v.SetDefault("indeed.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("indeed.courtesy_delay", "1s")
	v.SetDefault("indeed.poll_interval", "6h")

	// Macro defaults
	v.SetDefault("macro.data_file", "./data/macro.json")

	// Server defaults
	v.SetDefault("server.listen_addr", ":8000")
	v.SetDefault("server.cors_origins", "*")

	// Storage defaults
	v.SetDefault("storage.max_records", 500)
	v.SetDefault("storage.file_path", "./data/indeed_trends.json")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// DefaultCategories is the compiled-in table of tracked job categories,
// chosen to be representative of the broader economy.
func DefaultCategories() []models.Category {
	return []models.Category{
		{Name: "tech", Keywords: []string{"software engineer", "data scientist", "developer", "IT"}},
		{Name: "retail", Keywords: []string{"retail", "store associate", "cashier", "sales associate"}},
		{Name: "manufacturing", Keywords: []string{"manufacturing", "factory", "warehouse", "production"}},
		{Name: "healthcare", Keywords: []string{"nurse", "medical", "healthcare", "hospital"}},
		{Name: "finance", Keywords: []string{"finance", "accountant", "analyst", "banking"}},
		{Name: "general", Keywords: []string{"full time", "part time", "employment"}},
	}
}

// DefaultWeights is the compiled-in economic-significance weight table.
// The weights sum to 1.0 so the health score stays within [0,100].
func DefaultWeights() models.ScoreWeights {
	return models.ScoreWeights{
		"tech":          0.25,
		"manufacturing": 0.20,
		"retail":        0.20,
		"healthcare":    0.20,
		"finance":       0.10,
		"general":       0.05,
	}
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Indeed config
	if c.Indeed.SearchURL == "" {
		return fmt.Errorf("indeed.search_url is required")
	}
	if c.Indeed.Location == "" {
		return fmt.Errorf("indeed.location is required")
	}
	if c.Indeed.RecencyDays < 1 {
		return fmt.Errorf("indeed.recency_days must be at least 1")
	}
	if c.Indeed.Timeout <= 0 {
		return fmt.Errorf("indeed.timeout must be positive")
	}
	if c.Indeed.CourtesyDelay <= 0 {
		return fmt.Errorf("indeed.courtesy_delay must be positive")
	}
	if c.Indeed.PollInterval < 1*time.Minute {
		return fmt.Errorf("indeed.poll_interval must be at least 1 minute")
	}
	if len(c.Indeed.Categories) == 0 {
		return fmt.Errorf("indeed.categories must contain at least one category")
	}

	// Validate Scoring config
	if err := c.Scoring.Weights.Validate(); err != nil {
		return fmt.Errorf("scoring.weights: %w", err)
	}

	// Validate Server config
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}

	// Validate Storage config
	if c.Storage.MaxRecords < 1 {
		return fmt.Errorf("storage.max_records must be at least 1")
	}
	if c.Storage.FilePath == "" {
		return fmt.Errorf("storage.file_path is required")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// PruneCategories removes categories that fail validation (for example a
// category with zero keyword phrases) and returns the rejection reasons.
// An invalid category is fatal for that category's inclusion, not for the
// whole run.
func (c *Config) PruneCategories() []error {
	var rejected []error
	kept := c.Indeed.Categories[:0]
	for i := range c.Indeed.Categories {
		cat := c.Indeed.Categories[i]
		if err := cat.Validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		kept = append(kept, cat)
	}
	c.Indeed.Categories = kept
	return rejected
}
