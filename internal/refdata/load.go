package refdata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/tn-risk-atlas/risk-atlas/internal/storage"
)

// Source produces a reference table.
type Source interface {
	Load(ctx context.Context) (*Table, []string, error)
}

// BlobSource reads a CSV object from a blob store.
type BlobSource struct {
	Store storage.BlobStore
	Key   string
}

func (s BlobSource) Load(ctx context.Context) (*Table, []string, error) {
	rc, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", s.Key, err)
	}
	defer rc.Close()
	return ParseCSV(rc)
}

// SQLSource reads the district_ranks table.
type SQLSource struct {
	DB *sqlx.DB
}

func (s SQLSource) Load(ctx context.Context) (*Table, []string, error) {
	return LoadSQL(ctx, s.DB)
}

// Load builds the table from src and never fails: a nil source, or any
// error from it, yields an empty table so every lookup takes the default
// rank. Warnings are logged.
func Load(ctx context.Context, src Source, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	if src == nil {
		logger.Warn("no reference source configured; using default ranks for every district")
		return Empty()
	}
	t, warnings, err := src.Load(ctx)
	for _, w := range warnings {
		logger.Warn("reference data", "warning", w)
	}
	if err != nil {
		logger.Warn("reference data unavailable; using default ranks for every district", "error", err)
		return Empty()
	}
	logger.Info("reference data loaded", "districts", t.Len(), "warnings", len(warnings))
	return t
}
