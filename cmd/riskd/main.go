package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/tn-risk-atlas/risk-atlas/internal/api/http"
	"github.com/tn-risk-atlas/risk-atlas/internal/config"
	"github.com/tn-risk-atlas/risk-atlas/internal/logging"
	"github.com/tn-risk-atlas/risk-atlas/internal/metrics"
	"github.com/tn-risk-atlas/risk-atlas/internal/refdata"
	"github.com/tn-risk-atlas/risk-atlas/internal/risk"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Reference data ---
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	src, closeSrc, err := referenceSource(loadCtx, cfg)
	if err != nil {
		logger.Warn("reference source unavailable", "source", cfg.RefSource, "error", err)
	}
	table := refdata.Load(loadCtx, src, logger)
	closeSrc()
	cancel()

	// --- Scoring ---
	cache, closeCache := scoreCache(ctx, cfg, logger)
	defer closeCache()
	m := metrics.New()
	svc, err := risk.NewService(risk.Deps{
		Table:    table,
		Cache:    cache,
		Provider: inputProvider(cfg),
		Metrics:  m,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("service init failed", "error", err)
		os.Exit(1)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Route("/api", func(ar chi.Router) {
		api.MountAPI(ar, svc)
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening",
		"addr", cfg.HTTPAddr,
		"mode", cfg.Mode,
		"ref_source", cfg.RefSource,
		"districts", table.Len(),
		"cache", cfg.CacheDriver,
		"provider", cfg.Provider)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
