package service

import (
	"context"
	"io"
	"log/slog"

	"tableapi/backend/internal/model"
)

type call struct {
	query string
	args  []any
}

type mockDBClient struct {
	runQueryFunc func(query string, args []any) (*model.QueryResult, error)
	pingErr      error
	calls        []call
}

func (m *mockDBClient) RunQuery(ctx context.Context, query string, args ...any) (*model.QueryResult, error) {
	m.calls = append(m.calls, call{query: query, args: args})
	if m.runQueryFunc != nil {
		return m.runQueryFunc(query, args)
	}
	return &model.QueryResult{}, nil
}

func (m *mockDBClient) Ping(ctx context.Context) error { return m.pingErr }
func (m *mockDBClient) Close() error                   { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
