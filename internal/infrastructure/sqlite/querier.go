package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// Querier es satisfecho por *sql.DB y *sql.Tx; los repos funcionan con ambos.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Las marcas de tiempo se guardan como nanosegundos Unix: orden exacto y sin ambigüedad de zona.
func toUnixNano(t time.Time) int64 { return t.UnixNano() }

func fromUnixNano(n int64) time.Time { return time.Unix(0, n) }
