package scorecache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

func inputs(n int) scheme.Inputs {
	in := scheme.Inputs{}
	for _, id := range scheme.All {
		in[id] = n
	}
	return in
}

func TestKeyIsCanonical(t *testing.T) {
	in := scheme.Inputs{scheme.PongalGift: 4, scheme.MGNREGA: 3, scheme.OldAgePension: 2, scheme.MagalirUrimai: 1}
	r := scheme.Ranks{scheme.MagalirUrimai: 5, scheme.OldAgePension: 6, scheme.MGNREGA: 7, scheme.PongalGift: 8}
	assert.Equal(t, "score:v1:60/40:1,2,3,4|5,6,7,8", Key(scoring.DefaultWeights, in, r))
	assert.NotEqual(t, Key(scoring.DefaultWeights, in, r), Key(scoring.Weights{District: 50, Welfare: 50}, in, r))
}

func TestMemoUsesCache(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(time.Minute)
	m := &Memo{Engine: mustEngine(t), Cache: mem}

	first, hit, err := m.Compute(ctx, inputs(500), scheme.DefaultRanks())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 58, first.FinalRiskScore)
	assert.Equal(t, 1, mem.Len())

	second, hit, err := m.Compute(ctx, inputs(500), scheme.DefaultRanks())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
}

func TestMemoRejectsInvalidBeforeCache(t *testing.T) {
	mem := NewMemory(time.Minute)
	m := &Memo{Engine: mustEngine(t), Cache: mem}
	_, _, err := m.Compute(context.Background(), inputs(-1), scheme.DefaultRanks())
	assert.ErrorIs(t, err, scheme.ErrInvalidInput)
	assert.Equal(t, 0, mem.Len())
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (scoring.Result, bool, error) {
	return scoring.Result{}, false, errors.New("connection refused")
}
func (brokenCache) Set(context.Context, string, scoring.Result) error {
	return errors.New("connection refused")
}

func TestMemoSurvivesCacheFailures(t *testing.T) {
	m := &Memo{Engine: mustEngine(t), Cache: brokenCache{}}
	res, hit, err := m.Compute(context.Background(), inputs(0), scheme.DefaultRanks())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, res.WelfareScore)
}

func TestMemoWithoutCache(t *testing.T) {
	m := &Memo{Engine: mustEngine(t)}
	_, hit, err := m.Compute(context.Background(), inputs(1), scheme.DefaultRanks())
	require.NoError(t, err)
	assert.False(t, hit)

	m.Cache = Noop{}
	_, hit, err = m.Compute(context.Background(), inputs(1), scheme.DefaultRanks())
	require.NoError(t, err)
	assert.False(t, hit)
}

// Runs only when REDIS_ADDR points at a live server.
func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	c := NewRedis(RedisConfig{Addr: addr, TTL: time.Minute})
	defer c.Close()
	require.NoError(t, c.Ping(ctx))

	key := "score:test:" + time.Now().Format(time.RFC3339Nano)
	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	want := scoring.Result{FinalRiskScore: 58, WelfareScore: 25, AvgDistrictRank: 19, DistrictRankScore: 48}
	require.NoError(t, c.Set(ctx, key, want))
	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func mustEngine(t *testing.T) *scoring.Engine {
	t.Helper()
	e, err := scoring.NewEngine()
	require.NoError(t, err)
	return e
}
