package scorecache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

// Memory is a process-local cache.
type Memory struct {
	c *cache.Cache
}

// NewMemory expires entries after ttl and sweeps every 2*ttl.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Memory{c: cache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (scoring.Result, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return scoring.Result{}, false, nil
	}
	res, ok := v.(scoring.Result)
	return res, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, res scoring.Result) error {
	m.c.SetDefault(key, res)
	return nil
}

// Len reports the number of live entries.
func (m *Memory) Len() int { return m.c.ItemCount() }
