package postgres

import (
	"context"
	"database/sql"

	"channel-metrics-service/internal/pkg/pgdb"
)

type RowScanner = pgdb.Rows

// DB is satisfied by *pgdb.DB.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
