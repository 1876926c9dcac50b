// Package risk orchestrates one assessment: resolve the location, look up
// the district's reference ranks, obtain beneficiary counts, score, classify
// and explain.
package risk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tn-risk-atlas/risk-atlas/internal/catalog"
	"github.com/tn-risk-atlas/risk-atlas/internal/metrics"
	"github.com/tn-risk-atlas/risk-atlas/internal/provider"
	"github.com/tn-risk-atlas/risk-atlas/internal/refdata"
	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
	"github.com/tn-risk-atlas/risk-atlas/internal/scorecache"
	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

// ErrUnknownLocation is returned when a location is not in the catalog.
var ErrUnknownLocation = errors.New("unknown location")

// Sources of an assessment's beneficiary counts.
const (
	InputsFromRequest  = "request"
	InputsFromProvider = "provider"
)

// Deps wires a Service. Zero fields get defaults: an empty reference table,
// the embedded catalog, the default engine, no cache, rank-derived inputs,
// no metrics and slog.Default.
type Deps struct {
	Table    *refdata.Table
	Catalog  *catalog.Catalog
	Engine   *scoring.Engine
	Cache    scorecache.Cache
	Provider provider.InputProvider
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

type Service struct {
	table    *refdata.Table
	catalog  *catalog.Catalog
	memo     *scorecache.Memo
	provider provider.InputProvider
	metrics  *metrics.Metrics
	logger   *slog.Logger
	newID    func() string
}

func NewService(d Deps) (*Service, error) {
	if d.Table == nil {
		d.Table = refdata.Empty()
	}
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	if d.Engine == nil {
		e, err := scoring.NewEngine()
		if err != nil {
			return nil, err
		}
		d.Engine = e
	}
	if d.Cache == nil {
		d.Cache = scorecache.Noop{}
	}
	if d.Provider == nil {
		d.Provider = provider.RankDefaults{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Service{
		table:    d.Table,
		catalog:  d.Catalog,
		memo:     &scorecache.Memo{Engine: d.Engine, Cache: d.Cache, Logger: d.Logger},
		provider: d.Provider,
		metrics:  d.Metrics,
		logger:   d.Logger,
		newID:    func() string { return uuid.NewString() },
	}, nil
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// DistrictRanks returns the district's complete rank set, defaulting absent
// schemes and districts.
func (s *Service) DistrictRanks(district string) scheme.Ranks {
	return s.table.Ranks(district)
}

// AllDistrictRanks returns every district in the reference table.
func (s *Service) AllDistrictRanks() map[string]scheme.Ranks {
	return s.table.All()
}

// Score computes a result for explicit inputs and ranks.
func (s *Service) Score(ctx context.Context, in scheme.Inputs, r scheme.Ranks) (scoring.Result, error) {
	res, hit, err := s.memo.Compute(ctx, in, r)
	if err != nil {
		s.metrics.ObserveRejected()
		return scoring.Result{}, err
	}
	s.metrics.ObserveScore(string(res.Tier()), res.FinalRiskScore, hit)
	return res, nil
}

// Explain renders the narrative for an already computed score.
func (s *Service) Explain(score int, in scheme.Inputs, r scheme.Ranks, location string) (string, error) {
	return scoring.Explain(score, in, r, location)
}

// Defaults returns provider-supplied counts for a catalog location.
func (s *Service) Defaults(ctx context.Context, loc catalog.Location) (scheme.Inputs, error) {
	resolved, ok := s.catalog.Resolve(loc)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, describe(loc))
	}
	return s.provider.Inputs(ctx, resolved, s.table.Ranks(resolved.District))
}

// Request asks for an assessment of a catalog location. A nil Inputs lets
// the configured provider supply the counts.
type Request struct {
	Location catalog.Location
	Inputs   scheme.Inputs
}

// Assessment is a scored, classified and explained location. It is never
// persisted; ID only correlates logs with responses.
type Assessment struct {
	ID       string           `json:"id"`
	Location catalog.Location `json:"location"`
	Inputs   scheme.Inputs    `json:"inputs"`
	Source   string           `json:"inputs_source"`
	Ranks    scheme.Ranks     `json:"district_ranks"`
	scoring.Result
	Tier        scoring.Tier `json:"tier"`
	TierLabel   string       `json:"tier_label"`
	Delta       int          `json:"delta"`
	Explanation string       `json:"explanation"`
}

// Assess runs the full pipeline for one location.
func (s *Service) Assess(ctx context.Context, req Request) (Assessment, error) {
	loc, ok := s.catalog.Resolve(req.Location)
	if !ok {
		return Assessment{}, fmt.Errorf("%w: %s", ErrUnknownLocation, describe(req.Location))
	}
	ranks := s.table.Ranks(loc.District)

	in, source := req.Inputs, InputsFromRequest
	if in == nil {
		var err error
		in, err = s.provider.Inputs(ctx, loc, ranks)
		if err != nil {
			return Assessment{}, fmt.Errorf("input provider: %w", err)
		}
		source = InputsFromProvider
	}
	in = in.Clone()

	res, err := s.Score(ctx, in, ranks)
	if err != nil {
		return Assessment{}, err
	}
	text, err := s.Explain(res.FinalRiskScore, in, ranks, loc.Name())
	if err != nil {
		return Assessment{}, err
	}
	tier := res.Tier()
	a := Assessment{
		ID:          s.newID(),
		Location:    loc,
		Inputs:      in,
		Source:      source,
		Ranks:       ranks,
		Result:      res,
		Tier:        tier,
		TierLabel:   tier.Label(),
		Delta:       res.FinalRiskScore - 50,
		Explanation: text,
	}
	s.logger.Info("assessment",
		"id", a.ID,
		"district", loc.District,
		"block", loc.Block,
		"panchayat", loc.Panchayat,
		"inputs_source", source,
		"final_risk_score", res.FinalRiskScore,
		"tier", tier)
	return a, nil
}

func describe(loc catalog.Location) string {
	return fmt.Sprintf("district=%q block=%q panchayat=%q", loc.District, loc.Block, loc.Panchayat)
}
