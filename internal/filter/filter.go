// Package filter holds the per-session enabled/disabled state for each
// category. Filters are applied when a report is built, never during
// classification, so toggling and re-running analysis on the same
// document is always possible without a re-upload.
package filter

import (
	"fmt"

	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

// Config is one session's category toggle state. Not safe for
// concurrent use on its own; the session store serializes access.
type Config struct {
	enabled map[model.Category]bool
}

// Entry is one (category, enabled) pair in canonical order, for
// rendering toggle UIs.
type Entry struct {
	Category model.Category `json:"category"`
	Enabled  bool           `json:"enabled"`
}

// New returns a Config with every known category enabled.
func New() *Config {
	enabled := make(map[model.Category]bool, len(model.Categories))
	for _, c := range model.Categories {
		enabled[c] = true
	}
	return &Config{enabled: enabled}
}

// IsEnabled reports whether the category is currently shown in reports.
// Unknown categories are never enabled.
func (c *Config) IsEnabled(cat model.Category) bool {
	return c.enabled[cat]
}

// Toggle flips the category's state and returns the new value.
func (c *Config) Toggle(cat model.Category) (bool, error) {
	if !model.ValidCategory(cat) {
		return false, fmt.Errorf("toggle: unknown category %q", cat)
	}
	c.enabled[cat] = !c.enabled[cat]
	return c.enabled[cat], nil
}

// EnableAll restores the default all-enabled state.
func (c *Config) EnableAll() {
	for _, cat := range model.Categories {
		c.enabled[cat] = true
	}
}

// Entries lists every category with its state, in canonical order.
func (c *Config) Entries() []Entry {
	out := make([]Entry, 0, len(model.Categories))
	for _, cat := range model.Categories {
		out = append(out, Entry{Category: cat, Enabled: c.enabled[cat]})
	}
	return out
}

// Clone returns an independent copy, so a report build can work from a
// stable snapshot while the session keeps taking toggles.
func (c *Config) Clone() *Config {
	enabled := make(map[model.Category]bool, len(c.enabled))
	for k, v := range c.enabled {
		enabled[k] = v
	}
	return &Config{enabled: enabled}
}
