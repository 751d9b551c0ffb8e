package service

import (
	"context"
	"database/sql"
	"time"
	"unicode/utf8"

	"tableapi/backend/internal/model"

	_ "github.com/lib/pq"
)

type PoolOptions struct {
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type PostgresClient struct {
	db *sql.DB
}

// NewPostgresClient wraps an already opened *sql.DB.
func NewPostgresClient(db *sql.DB) *PostgresClient {
	return &PostgresClient{db: db}
}

// ConnectPostgres opens a pool for dsn and verifies it with a ping.
func ConnectPostgres(ctx context.Context, dsn string, opts PoolOptions) (*PostgresClient, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresClient{db: db}, nil
}

func (p *PostgresClient) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresClient) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresClient) RunQuery(ctx context.Context, query string, args ...any) (*model.QueryResult, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	result := &model.QueryResult{
		Columns: make([]model.Column, len(types)),
		Rows:    []map[string]any{},
	}
	for i, ct := range types {
		result.Columns[i] = model.Column{Name: ct.Name(), Type: ct.DatabaseTypeName()}
	}

	for rows.Next() {
		values := make([]any, len(types))
		pointers := make([]any, len(types))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(types))
		for i, col := range result.Columns {
			row[col.Name] = jsonSafe(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func jsonSafe(v any) any {
	if b, ok := v.([]byte); ok && utf8.Valid(b) {
		return string(b)
	}
	return v
}
