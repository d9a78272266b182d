package scoring

import (
	"fmt"
	"math"
)

// Weights distribute the four scoring factors. They must sum to 1.0;
// Validate enforces this once at startup instead of every score call.
type Weights struct {
	Keyword   float64 `mapstructure:"keyword-match"`
	Coverage  float64 `mapstructure:"semantic-coverage"`
	Strength  float64 `mapstructure:"semantic-strength"`
	Seniority float64 `mapstructure:"seniority-alignment"`
}

// Config carries the scoring knobs with their documented defaults.
type Config struct {
	SimilarityThreshold       float64 `mapstructure:"similarity-threshold"`
	TopK                      int     `mapstructure:"top-k"`
	PenaltyPerMissingMustHave float64 `mapstructure:"penalty-per-missing-must-have"`
	Weights                   Weights `mapstructure:"weights"`
}

// DefaultConfig returns the documented defaults: threshold 0.30, top-k 5,
// 5 percentage points per missing must-have, weights 0.35/0.40/0.10/0.15.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:       0.30,
		TopK:                      5,
		PenaltyPerMissingMustHave: 0.05,
		Weights: Weights{
			Keyword:   0.35,
			Coverage:  0.40,
			Strength:  0.10,
			Seniority: 0.15,
		},
	}
}

const weightSumTolerance = 1e-6

// Validate checks ranges once at startup so scoring never has to.
func (c Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold >= 1 {
		return fmt.Errorf("similarity threshold %.3f must be inside (0, 1)", c.SimilarityThreshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top-k must be positive, got %d", c.TopK)
	}
	if c.PenaltyPerMissingMustHave < 0 {
		return fmt.Errorf("penalty per missing must-have must not be negative, got %.3f", c.PenaltyPerMissingMustHave)
	}

	sum := c.Weights.Keyword + c.Weights.Coverage + c.Weights.Strength + c.Weights.Seniority
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", sum)
	}

	return nil
}
