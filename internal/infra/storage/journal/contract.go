package journal

import (
	"context"
	"database/sql"
)

// DBExecutor минимальный интерфейс *sql.DB / *sql.Tx, используемый репозиторием
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
