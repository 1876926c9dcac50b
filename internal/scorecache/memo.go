package scorecache

import (
	"context"
	"log/slog"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

// Memo fronts an engine with a cache. Cache failures are logged and the
// result is computed directly; they never fail a request.
type Memo struct {
	Engine *scoring.Engine
	Cache  Cache
	Logger *slog.Logger
}

// Compute returns the engine's result and whether it came from the cache.
// Invalid inputs are rejected before the cache is consulted.
func (m *Memo) Compute(ctx context.Context, in scheme.Inputs, r scheme.Ranks) (scoring.Result, bool, error) {
	if err := in.Validate(); err != nil {
		return scoring.Result{}, false, err
	}
	if err := r.Validate(); err != nil {
		return scoring.Result{}, false, err
	}
	if m.Cache == nil {
		res, err := m.Engine.Compute(in, r)
		return res, false, err
	}
	key := Key(m.Engine.Weights(), in, r)
	res, ok, err := m.Cache.Get(ctx, key)
	if err != nil {
		m.logger().Warn("score cache get failed", "error", err)
	}
	if ok {
		return res, true, nil
	}
	res, err = m.Engine.Compute(in, r)
	if err != nil {
		return scoring.Result{}, false, err
	}
	if err := m.Cache.Set(ctx, key, res); err != nil {
		m.logger().Warn("score cache set failed", "error", err)
	}
	return res, false, nil
}

func (m *Memo) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
