package refdata

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/tn-risk-atlas/risk-atlas/internal/scheme"
)

type rankRow struct {
	District string `db:"district"`
	Scheme   string `db:"scheme"`
	Rank     int    `db:"rank_value"`
}

// LoadSQL reads the district_ranks table. Rows naming an unknown scheme or an
// out-of-range rank are skipped with a warning.
func LoadSQL(ctx context.Context, db *sqlx.DB) (*Table, []string, error) {
	var rows []rankRow
	if err := db.SelectContext(ctx, &rows,
		`SELECT district, scheme, rank_value FROM district_ranks ORDER BY district, scheme`); err != nil {
		return nil, nil, fmt.Errorf("select district_ranks: %w", err)
	}
	byDistrict := map[string]scheme.Ranks{}
	var warnings []string
	for _, row := range rows {
		id, err := scheme.Parse(row.Scheme)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("district %q: unknown scheme %q", row.District, row.Scheme))
			continue
		}
		if !scheme.ValidRank(row.Rank) {
			warnings = append(warnings, fmt.Sprintf("district %q: %s %d outside [%d,%d]", row.District, id.RankColumn(), row.Rank, scheme.MinRank, scheme.MaxRank))
			continue
		}
		r, ok := byDistrict[row.District]
		if !ok {
			r = scheme.Ranks{}
			byDistrict[row.District] = r
		}
		r[id] = row.Rank
	}
	return New(byDistrict), warnings, nil
}

// ImportSQL upserts every explicit rank in t into district_ranks inside one
// transaction and returns the number of rows written. Defaulted ranks are not
// written.
func ImportSQL(ctx context.Context, db *sqlx.DB, t *Table) (int, error) {
	keys := make([]string, 0, len(t.rows))
	for key := range t.rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		`INSERT INTO district_ranks (district, scheme, rank_value) VALUES (?, ?, ?)
		 ON CONFLICT (district, scheme) DO UPDATE SET rank_value = excluded.rank_value`))
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, key := range keys {
		name := t.names[key]
		for _, id := range scheme.All {
			v, ok := t.rows[key][id]
			if !ok {
				continue
			}
			if _, err := stmt.ExecContext(ctx, name, string(id), v); err != nil {
				return written, fmt.Errorf("upsert %s/%s: %w", name, id, err)
			}
			written++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return written, nil
}
