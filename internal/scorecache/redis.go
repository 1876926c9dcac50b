package scorecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tn-risk-atlas/risk-atlas/internal/scoring"
)

// Redis shares results across replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

// Ping verifies connectivity.
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Get(ctx context.Context, key string) (scoring.Result, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return scoring.Result{}, false, nil
	}
	if err != nil {
		return scoring.Result{}, false, fmt.Errorf("redis get: %w", err)
	}
	var res scoring.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return scoring.Result{}, false, fmt.Errorf("redis decode: %w", err)
	}
	return res, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, res scoring.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Redis) Close() error { return c.client.Close() }
