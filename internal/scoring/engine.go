// Package scoring turns scheme beneficiary counts and district ranks into a
// bounded risk score and a templated explanation. Everything here is pure:
// no I/O, no shared mutable state, safe for concurrent use.
package scoring

import "github.com/tn-risk-atlas/risk-atlas/internal/scheme"

// Result is the outcome of one scoring request.
type Result struct {
	FinalRiskScore    int `json:"final_risk_score"`
	WelfareScore      int `json:"welfare_score"`
	AvgDistrictRank   int `json:"avg_district_rank"`
	DistrictRankScore int `json:"district_rank_score"`
}

// Tier classifies the final score.
func (r Result) Tier() Tier { return TierFor(r.FinalRiskScore) }

// Option configures an Engine.
type Option func(*config)

type config struct {
	weights Weights
}

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option { return func(c *config) { c.weights = w } }

// Engine computes scores and explanations with a fixed weight pair.
type Engine struct {
	weights Weights
}

// NewEngine builds an Engine. It fails only when the weights are invalid.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := &config{weights: DefaultWeights}
	for _, o := range opts {
		o(cfg)
	}
	if err := cfg.weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: cfg.weights}, nil
}

var defaultEngine = &Engine{weights: DefaultWeights}

// Weights returns the engine's weight pair.
func (e *Engine) Weights() Weights { return e.weights }

// Compute normalizes both input sets and combines them. Invalid inputs are
// rejected with a wrapped scheme.ErrInvalidInput rather than scored.
func (e *Engine) Compute(in scheme.Inputs, r scheme.Ranks) (Result, error) {
	welfare, err := WelfareScore(in)
	if err != nil {
		return Result{}, err
	}
	rankScore, avg, err := DistrictRankScore(r)
	if err != nil {
		return Result{}, err
	}
	return Result{
		FinalRiskScore:    e.weights.Combine(welfare, rankScore),
		WelfareScore:      welfare,
		AvgDistrictRank:   avg,
		DistrictRankScore: rankScore,
	}, nil
}

// Explain renders the narrative for score. See the package-level Explain.
func (e *Engine) Explain(score int, in scheme.Inputs, r scheme.Ranks, location string) (string, error) {
	return Explain(score, in, r, location)
}

// Compute scores with the default engine.
func Compute(in scheme.Inputs, r scheme.Ranks) (Result, error) {
	return defaultEngine.Compute(in, r)
}
