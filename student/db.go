package student

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Dialect names accepted by OpenDB.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// OpenDB opens a bun database handle for the given dialect. SQLite is the
// default development backend (a file path or ":memory:" DSN); Postgres
// takes a standard connection string.
func OpenDB(dialect, dsn string) (*bun.DB, error) {
	switch dialect {
	case DialectSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case DialectPostgres:
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
