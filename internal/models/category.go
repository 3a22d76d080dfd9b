package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a named grouping of job-search keyword phrases representing
// one economic sector. Categories are configuration-level entities and are
// immutable for the life of a run.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Validate checks that the category is usable for fetching.
// A category with zero keyword phrases is a configuration error and must be
// rejected before any fetch is attempted.
func (c *Category) Validate() error {
	if c.Name == "" {
		return errors.New("category name must not be empty")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("category %q must have at least one keyword phrase", c.Name)
	}
	for i, kw := range c.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("category %q: keyword phrase %d is blank", c.Name, i)
		}
	}
	return nil
}

// Query composes the search expression for the category: the logical OR of
// its keyword phrases, in configured order.
func (c *Category) Query() string {
	return strings.Join(c.Keywords, " OR ")
}
