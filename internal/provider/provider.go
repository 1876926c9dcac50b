// Package provider supplies beneficiary counts for a location when the
// caller does not. Providers sit upstream of the scoring engine; any
// randomness stays here so scoring itself remains deterministic.
package provider

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/tn-risk-atlas/risk-atlas/internal/catalog"
	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

// InputProvider returns a complete scheme.Inputs for loc. ranks are the
// district's reference ranks, available to providers that derive counts
// from them.
type InputProvider interface {
	Inputs(ctx context.Context, loc catalog.Location, ranks scheme.Ranks) (scheme.Inputs, error)
}

// rankMultipliers scale the rank-derived default count per scheme.
var rankMultipliers = map[scheme.ID]int{
	scheme.MagalirUrimai: 150,
	scheme.OldAgePension: 50,
	scheme.MGNREGA:       200,
	scheme.PongalGift:    300,
}

const defaultBase = 500

// RankDefaults derives counts from ranks: base + (39 - rank) * multiplier,
// so a rank-1 district gets the most beneficiaries and rank 38 about the
// base. Missing ranks are treated as scheme.DefaultRank.
type RankDefaults struct{}

func (RankDefaults) Inputs(_ context.Context, _ catalog.Location, ranks scheme.Ranks) (scheme.Inputs, error) {
	in := make(scheme.Inputs, len(scheme.All))
	for _, id := range scheme.All {
		rank, ok := ranks[id]
		if !ok || !scheme.ValidRank(rank) {
			rank = scheme.DefaultRank
		}
		in[id] = defaultBase + (scheme.MaxRank+1-rank)*rankMultipliers[id]
	}
	return in, nil
}

// span is an inclusive [lo, hi] draw range.
type span struct{ lo, hi int }

type profile map[scheme.ID]span

var (
	defaultProfile = profile{
		scheme.MagalirUrimai: {700, 1300},
		scheme.OldAgePension: {100, 300},
		scheme.MGNREGA:       {300, 600},
		scheme.PongalGift:    {900, 1500},
	}
	districtProfiles = map[string]profile{
		"madurai": {
			scheme.MagalirUrimai: {800, 1200},
			scheme.OldAgePension: {150, 250},
			scheme.MGNREGA:       {350, 550},
			scheme.PongalGift:    {1000, 1400},
		},
		"thanjavur": {
			scheme.MagalirUrimai: {1000, 1500},
			scheme.OldAgePension: {200, 350},
			scheme.MGNREGA:       {450, 700},
			scheme.PongalGift:    {1100, 1700},
		},
	}
)

// Random is a mock data source drawing counts from per-district ranges.
// It is safe for concurrent use; the same seed yields the same sequence.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Inputs(_ context.Context, loc catalog.Location, _ scheme.Ranks) (scheme.Inputs, error) {
	p, ok := districtProfiles[strings.ToLower(strings.TrimSpace(loc.District))]
	if !ok {
		p = defaultProfile
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	in := make(scheme.Inputs, len(scheme.All))
	for _, id := range scheme.All {
		s := p[id]
		in[id] = s.lo + r.rng.Intn(s.hi-s.lo+1)
	}
	return in, nil
}
