package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// sqlName is the database/sql driver name registered by the imported driver.
func (d Driver) sqlName() (string, error) {
	switch d {
	case DriverSQLite:
		return "sqlite", nil // modernc driver
	case DriverPostgres:
		return "pgx", nil // pgx stdlib driver
	}
	return "", fmt.Errorf("unsupported driver: %s", d)
}

// Open opens a DB holding the reference tables and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sqlx.DB, error) {
	drvName, err := driver.sqlName()
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		switch driver {
		case DriverSQLite:
			dsn = "file:riskatlas.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		case DriverPostgres:
			dsn = "postgres://localhost:5432/riskatlas?sslmode=disable"
		}
	}

	raw, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// one writer avoids SQLITE_BUSY during imports
		raw.SetMaxOpenConns(1)
	}
	if err := raw.PingContext(ctx); err != nil {
		_ = raw.Close()
		return nil, err
	}
	dbx := sqlx.NewDb(raw, drvName)
	if err := ensureSchema(ctx, dbx); err != nil {
		_ = dbx.Close()
		return nil, err
	}
	return dbx, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Reference data only; computed scores are never stored.
const schema = `
CREATE TABLE IF NOT EXISTS district_ranks (
  district   TEXT    NOT NULL,
  scheme     TEXT    NOT NULL,
  rank_value INTEGER NOT NULL CHECK (rank_value BETWEEN 1 AND 38),
  PRIMARY KEY (district, scheme)
);
`
