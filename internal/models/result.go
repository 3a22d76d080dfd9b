package models

import (
	"errors"
	"time"
)

// RawCountResult is one fetch attempt's outcome for a single category.
// It is created once per attempt and never mutated; a re-fetch produces a
// new RawCountResult.
type RawCountResult struct {
	Category  string    `json:"category"`
	Keywords  string    `json:"keywords"`
	Location  string    `json:"location"`
	Count     Count     `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks that all result fields are valid.
func (r *RawCountResult) Validate() error {
	if r.Category == "" {
		return errors.New("result category must not be empty")
	}
	if r.Keywords == "" {
		return errors.New("result keywords must not be empty")
	}
	if r.Location == "" {
		return errors.New("result location must not be empty")
	}
	if r.Count.Known && r.Count.Value < 0 {
		return errors.New("result count must not be negative")
	}
	if r.Timestamp.IsZero() {
		return errors.New("result timestamp must be set")
	}
	return nil
}
