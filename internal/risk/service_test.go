package risk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tn-risk-atlas/risk-atlas/internal/catalog"
	"github.com/tn-risk-atlas/risk-atlas/internal/metrics"
	"github.com/tn-risk-atlas/risk-atlas/internal/refdata"
	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
	"github.com/tn-risk-atlas/risk-atlas/internal/scorecache"
	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

func ranksOf(m, p, g, pg int) scheme.Ranks {
	return scheme.Ranks{scheme.MagalirUrimai: m, scheme.OldAgePension: p, scheme.MGNREGA: g, scheme.PongalGift: pg}
}

func inputsOf(m, p, g, pg int) scheme.Inputs {
	return scheme.Inputs{scheme.MagalirUrimai: m, scheme.OldAgePension: p, scheme.MGNREGA: g, scheme.PongalGift: pg}
}

type fakeProvider struct {
	in    scheme.Inputs
	err   error
	calls int
	last  catalog.Location
}

func (f *fakeProvider) Inputs(_ context.Context, loc catalog.Location, _ scheme.Ranks) (scheme.Inputs, error) {
	f.calls++
	f.last = loc
	return f.in, f.err
}

func newTestService(t *testing.T, p *fakeProvider, cache scorecache.Cache) *Service {
	t.Helper()
	tbl := refdata.New(map[string]scheme.Ranks{
		"Madurai":     ranksOf(15, 30, 38, 37),
		"Chennai":     ranksOf(1, 1, 1, 1),
		"Kanchipuram": ranksOf(31, 25, 1, 2),
	})
	d := Deps{Table: tbl, Cache: cache, Metrics: metrics.New()}
	if p != nil {
		d.Provider = p
	}
	s, err := NewService(d)
	require.NoError(t, err)
	s.newID = func() string { return "fixed-id" }
	return s
}

func TestAssessWithRequestInputs(t *testing.T) {
	s := newTestService(t, nil, nil)
	a, err := s.Assess(context.Background(), Request{
		Location: catalog.Location{District: "madurai", Block: "madurai east", Panchayat: "Madurai East Panchayat 1"},
		Inputs:   inputsOf(1240, 200, 450, 1100),
	})
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", a.ID)
	assert.Equal(t, "Madurai", a.Location.District)
	assert.Equal(t, "Madurai East", a.Location.Block)
	assert.Equal(t, InputsFromRequest, a.Source)
	assert.Equal(t, ranksOf(15, 30, 38, 37), a.Ranks)
	assert.Equal(t, 37, a.WelfareScore)
	assert.Equal(t, 78, a.DistrictRankScore)
	assert.Equal(t, 30, a.AvgDistrictRank)
	assert.Equal(t, 72, a.FinalRiskScore)
	assert.Equal(t, scoring.TierHigh, a.Tier)
	assert.Equal(t, 22, a.Delta)
	assert.Contains(t, a.Explanation, "High Risk Alert for Madurai East Panchayat 1")
	assert.Contains(t, a.Explanation, "Magalir Urimai (1240 beneficiaries)")
	assert.Contains(t, a.Explanation, "rank 15 in Magalir Urimai")
}

func TestAssessUsesProviderWhenInputsAbsent(t *testing.T) {
	p := &fakeProvider{in: inputsOf(2000, 2000, 2000, 2000)}
	s := newTestService(t, p, nil)
	a, err := s.Assess(context.Background(), Request{Location: catalog.Location{District: "Chennai"}})
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "Chennai", p.last.District)
	assert.Equal(t, InputsFromProvider, a.Source)
	assert.Equal(t, 0, a.FinalRiskScore)
	assert.Equal(t, scoring.TierLow, a.Tier)
	assert.Equal(t, -50, a.Delta)
	assert.Contains(t, a.Explanation, "Low Risk Profile for Chennai")
}

func TestAssessDistrictMissingFromTableDefaultsRanks(t *testing.T) {
	s := newTestService(t, nil, nil)
	a, err := s.Assess(context.Background(), Request{
		Location: catalog.Location{District: "Ariyalur"},
		Inputs:   inputsOf(0, 0, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, scheme.DefaultRanks(), a.Ranks)
	// rank score (72*100)/148 = 48; (48*60 + 100*40)/100 = 68
	assert.Equal(t, 48, a.DistrictRankScore)
	assert.Equal(t, 68, a.FinalRiskScore)
}

func TestAssessRejectsUnknownLocation(t *testing.T) {
	s := newTestService(t, nil, nil)
	_, err := s.Assess(context.Background(), Request{Location: catalog.Location{District: "Atlantis"}})
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = s.Assess(context.Background(), Request{Location: catalog.Location{District: "Madurai", Block: "Nowhere"}})
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestAssessRejectsInvalidInputs(t *testing.T) {
	s := newTestService(t, nil, nil)
	_, err := s.Assess(context.Background(), Request{
		Location: catalog.Location{District: "Madurai"},
		Inputs:   scheme.Inputs{scheme.MagalirUrimai: -1},
	})
	assert.ErrorIs(t, err, scheme.ErrInvalidInput)
}

func TestAssessProviderFailure(t *testing.T) {
	boom := errors.New("upstream down")
	s := newTestService(t, &fakeProvider{err: boom}, nil)
	_, err := s.Assess(context.Background(), Request{Location: catalog.Location{District: "Madurai"}})
	assert.ErrorIs(t, err, boom)
}

func TestAssessDoesNotAliasCallerInputs(t *testing.T) {
	s := newTestService(t, nil, nil)
	in := inputsOf(1, 2, 3, 4)
	a, err := s.Assess(context.Background(), Request{Location: catalog.Location{District: "Madurai"}, Inputs: in})
	require.NoError(t, err)
	a.Inputs[scheme.MGNREGA] = 999
	assert.Equal(t, 3, in[scheme.MGNREGA])
}

func TestScoreUsesCache(t *testing.T) {
	cache := scorecache.NewMemory(0)
	s := newTestService(t, nil, cache)
	in, r := inputsOf(500, 500, 500, 500), ranksOf(19, 19, 19, 19)

	first, err := s.Score(context.Background(), in, r)
	require.NoError(t, err)
	second, err := s.Score(context.Background(), in, r)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 58, first.FinalRiskScore)
	assert.Equal(t, 1, cache.Len())
}

func TestDefaults(t *testing.T) {
	s := newTestService(t, nil, nil)
	in, err := s.Defaults(context.Background(), catalog.Location{District: "Chennai"})
	require.NoError(t, err)
	// rank 1 everywhere: 500 + 38*k
	assert.Equal(t, inputsOf(500+38*150, 500+38*50, 500+38*200, 500+38*300), in)

	_, err = s.Defaults(context.Background(), catalog.Location{District: "Atlantis"})
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestDistrictRanks(t *testing.T) {
	s := newTestService(t, nil, nil)
	assert.Equal(t, ranksOf(1, 1, 1, 1), s.DistrictRanks(" CHENNAI "))
	assert.Equal(t, scheme.DefaultRanks(), s.DistrictRanks("Atlantis"))
	assert.Len(t, s.AllDistrictRanks(), 3)
}
