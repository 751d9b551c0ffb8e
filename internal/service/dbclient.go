package service

import (
	"context"

	"tableapi/backend/internal/model"
)

// DBClient runs SQL against the backing database. A statement that
// returns no rows yields a result with no columns and no rows.
type DBClient interface {
	RunQuery(ctx context.Context, query string, args ...any) (*model.QueryResult, error)
	Ping(ctx context.Context) error
	Close() error
}
