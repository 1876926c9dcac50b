package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	LogLevel  string // debug|info|warn|error
	LogFormat string // text|json

	CORSOrigins []string

	RefSource string // blob|sql|none
	RefKey    string // object key of the rank CSV

	BlobDriver   string // fs|minio
	BlobBasePath string // for fs

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	DBDriver string // sqlite|postgres
	DBDSN    string

	CacheDriver   string // none|memory|redis
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Provider     string // defaults|random
	ProviderSeed int64
}

func FromEnv() Config {
	mode := Mode(envOr("MODE", string(ModeOffline)))
	defOrigins := "http://localhost:3000,http://localhost:8501"
	if mode == ModeOnline {
		defOrigins = ""
	}
	return Config{
		Mode:      mode,
		HTTPAddr:  envOr("HTTP_ADDR", ":8080"),
		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", defaultLogFormat(mode)),

		CORSOrigins: csvOr("CORS_ORIGINS", defOrigins),

		RefSource:    envOr("REF_SOURCE", "blob"),
		RefKey:       envOr("REF_KEY", "district_ranks.csv"),
		BlobDriver:   envOr("BLOB_DRIVER", "fs"),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    envOr("MINIO_BUCKET", "risk-atlas"),
		MinioUseSSL:    envBool("MINIO_USE_SSL", mode == ModeOnline),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    os.Getenv("DB_DSN"),

		CacheDriver:   envOr("CACHE_DRIVER", "memory"),
		CacheTTL:      envDuration("CACHE_TTL", 10*time.Minute),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		Provider:     envOr("PROVIDER", "defaults"),
		ProviderSeed: int64(envInt("PROVIDER_SEED", 1)),
	}
}

func defaultLogFormat(m Mode) string {
	if m == ModeOnline {
		return "json"
	}
	return "text"
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
