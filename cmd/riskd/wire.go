package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tn-risk-atlas/risk-atlas/internal/config"
	"github.com/tn-risk-atlas/risk-atlas/internal/db"
	"github.com/tn-risk-atlas/risk-atlas/internal/provider"
	"github.com/tn-risk-atlas/risk-atlas/internal/refdata"
	"github.com/tn-risk-atlas/risk-atlas/internal/scorecache"
	"github.com/tn-risk-atlas/risk-atlas/internal/storage"
)

func blobStore(cfg config.Config) (storage.BlobStore, error) {
	switch strings.ToLower(cfg.BlobDriver) {
	case "", "fs":
		return storage.NewFSStore(cfg.BlobBasePath)
	case "minio", "s3":
		return storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	}
	return nil, fmt.Errorf("unsupported blob driver: %s", cfg.BlobDriver)
}

// referenceSource returns the configured source and a func releasing it.
// A nil source means reference data is disabled.
func referenceSource(ctx context.Context, cfg config.Config) (refdata.Source, func(), error) {
	noop := func() {}
	switch strings.ToLower(cfg.RefSource) {
	case "none", "":
		return nil, noop, nil
	case "blob":
		bs, err := blobStore(cfg)
		if err != nil {
			return nil, noop, err
		}
		return refdata.BlobSource{Store: bs, Key: cfg.RefKey}, noop, nil
	case "sql":
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			return nil, noop, err
		}
		return refdata.SQLSource{DB: dbh}, func() { _ = dbh.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unsupported reference source: %s", cfg.RefSource)
}

// scoreCache falls back to no caching when Redis is unreachable.
func scoreCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (scorecache.Cache, func()) {
	switch strings.ToLower(cfg.CacheDriver) {
	case "memory":
		return scorecache.NewMemory(cfg.CacheTTL), func() {}
	case "redis":
		rc := scorecache.NewRedis(scorecache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unavailable; score cache disabled", "addr", cfg.RedisAddr, "error", err)
			_ = rc.Close()
			return scorecache.Noop{}, func() {}
		}
		return rc, func() { _ = rc.Close() }
	}
	return scorecache.Noop{}, func() {}
}

func inputProvider(cfg config.Config) provider.InputProvider {
	if strings.EqualFold(cfg.Provider, "random") {
		return provider.NewRandom(cfg.ProviderSeed)
	}
	return provider.RankDefaults{}
}
