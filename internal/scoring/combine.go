package scoring

import (
	"fmt"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

// Weights blends the two sub-scores, in percentage points. District is the
// weight of the district rank score, Welfare the weight of the inverted
// welfare score. They must sum to 100.
type Weights struct {
	District int `json:"district"`
	Welfare  int `json:"welfare"`
}

// DefaultWeights is the fixed policy: 60% district performance, 40% local
// beneficiary coverage.
var DefaultWeights = Weights{District: 60, Welfare: 40}

func (w Weights) Validate() error {
	if w.District < 0 || w.Welfare < 0 {
		return fmt.Errorf("%w: weights must be non-negative", scheme.ErrInvalidInput)
	}
	if w.District+w.Welfare != 100 {
		return fmt.Errorf("%w: weights must sum to 100, got %d", scheme.ErrInvalidInput, w.District+w.Welfare)
	}
	return nil
}

// Combine computes rank*District + (100-welfare)*Welfare, truncated and
// clamped to [0,100]. A computed 64.9 reports as 64.
func (w Weights) Combine(welfare, rankScore int) int {
	welfare = clamp(welfare, 0, 100)
	rankScore = clamp(rankScore, 0, 100)
	return clamp((rankScore*w.District+(100-welfare)*w.Welfare)/100, 0, 100)
}

// FinalScore combines sub-scores with DefaultWeights.
func FinalScore(welfare, rankScore int) int {
	return DefaultWeights.Combine(welfare, rankScore)
}
