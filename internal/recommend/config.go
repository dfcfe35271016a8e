// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"fmt"
	"math"
)

// Config holds scorer and orchestration settings.
type Config struct {
	// Weights controls how the two sub-scores combine.
	Weights ScoringWeights `json:"weights"`

	// Text controls tokenization and the textual similarity measure.
	Text TextConfig `json:"text"`

	// DedupeAcrossWeaknesses keeps each course only in the group where it
	// scored best before the overall cap is applied. Off by default: a
	// course may then be recommended for several weaknesses.
	DedupeAcrossWeaknesses bool `json:"dedupe_across_weaknesses"`
}

// ScoringWeights configures the categorical and textual contributions.
type ScoringWeights struct {
	// Category is added when the weakness category hint equals a course tag.
	// Default: 1.0
	Category float64 `json:"category"`

	// PartialCategoryFactor scales Category for partial tag matches.
	// Must be in [0, 1]. Default: 0.5
	PartialCategoryFactor float64 `json:"partial_category_factor"`

	// Text scales the token overlap ratio (itself in [0, 1]).
	// Default: 0.5
	Text float64 `json:"text"`
}

// TextConfig configures the textual similarity function.
type TextConfig struct {
	// TitleWeight is the hit weight of a token found in the title or tags.
	// Default: 1.0
	TitleWeight float64 `json:"title_weight"`

	// DescriptionWeight is the hit weight of a token found only in the
	// course description. Default: 0.5
	DescriptionWeight float64 `json:"description_weight"`

	// MinTokenLength drops shorter tokens. Default: 2
	MinTokenLength int `json:"min_token_length"`
}

// DefaultConfig returns the default scorer configuration.
//
// With the defaults an exact category match alone (1.0) outranks any
// purely textual match (at most 0.5).
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoringWeights{
			Category:              1.0,
			PartialCategoryFactor: 0.5,
			Text:                  0.5,
		},
		Text: TextConfig{
			TitleWeight:       1.0,
			DescriptionWeight: 0.5,
			MinTokenLength:    2,
		},
		DedupeAcrossWeaknesses: false,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := checkWeight("weights.category", c.Weights.Category); err != nil {
		return err
	}
	if err := checkWeight("weights.text", c.Weights.Text); err != nil {
		return err
	}
	if c.Weights.Category == 0 && c.Weights.Text == 0 {
		return fmt.Errorf("weights.category and weights.text cannot both be zero")
	}
	if err := checkUnit("weights.partial_category_factor", c.Weights.PartialCategoryFactor); err != nil {
		return err
	}
	if err := checkUnit("text.title_weight", c.Text.TitleWeight); err != nil {
		return err
	}
	if err := checkUnit("text.description_weight", c.Text.DescriptionWeight); err != nil {
		return err
	}
	if c.Weights.Text > 0 && c.Text.TitleWeight == 0 && c.Text.DescriptionWeight == 0 {
		return fmt.Errorf("text.title_weight and text.description_weight cannot both be zero when weights.text is set")
	}
	if c.Text.MinTokenLength < 1 {
		return fmt.Errorf("text.min_token_length must be positive, got %d", c.Text.MinTokenLength)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

func checkWeight(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return fmt.Errorf("%s must be non-negative, got %v", name, v)
	}
	return nil
}

func checkUnit(name string, v float64) error {
	if err := checkWeight(name, v); err != nil {
		return err
	}
	if v > 1 {
		return fmt.Errorf("%s must be at most 1, got %v", name, v)
	}
	return nil
}
