package service

import (
	"context"
	"fmt"
	"log/slog"

	"tableapi/backend/helper"
	"tableapi/backend/internal/model"
)

type TableList struct {
	Tables []string
}

type TableDetail struct {
	Rows    []map[string]any
	Columns []model.Column
}

type CreatedTable struct {
	CollectionName string
}

// RowResult holds the row an operation read or wrote. Row is nil when
// the statement matched nothing.
type RowResult struct {
	Row map[string]any
}

// TableService turns table and row requests into SQL run through a DBClient.
type TableService struct {
	db     DBClient
	logger *slog.Logger
}

func NewTableService(db DBClient, logger *slog.Logger) *TableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableService{db: db, logger: logger}
}

func (s *TableService) run(ctx context.Context, query string, args ...any) (*model.QueryResult, error) {
	s.logger.DebugContext(ctx, "executing statement", "sql", query, "args", len(args))
	res, err := s.db.RunQuery(ctx, query, args...)
	if err != nil {
		return nil, Internal(err)
	}
	return res, nil
}

func (s *TableService) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *TableService) ListTables(ctx context.Context) (*TableList, error) {
	res, err := s.run(ctx, listTablesSQL)
	if err != nil {
		return nil, err
	}

	tables := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		tables = append(tables, stringValue(row["table_name"]))
	}
	return &TableList{Tables: tables}, nil
}

func (s *TableService) GetTable(ctx context.Context, table string) (*TableDetail, error) {
	rows, err := s.run(ctx, selectRowsSQL(table))
	if err != nil {
		return nil, err
	}

	cols, err := s.run(ctx, tableColumnsSQL, table)
	if err != nil {
		return nil, err
	}

	columns := make([]model.Column, 0, len(cols.Rows))
	for _, row := range cols.Rows {
		columns = append(columns, model.Column{
			Name: stringValue(row["column_name"]),
			Type: stringValue(row["data_type"]),
		})
	}
	return &TableDetail{Rows: rows.Rows, Columns: columns}, nil
}

// CreateTable validates req and creates the table with a serial id
// primary key followed by the requested columns. A nil req means the
// request carried no body.
func (s *TableService) CreateTable(ctx context.Context, req *model.CreateTableRequest) (*CreatedTable, error) {
	if req == nil {
		return nil, BadRequest(MsgNoData)
	}
	if !helper.IsValidCollectionName(req.CollectionName) {
		return nil, BadRequest(MsgInvalidData)
	}
	columns, ok := validColumns(req.Columns)
	if !ok {
		return nil, BadRequest(MsgInvalidData)
	}

	if _, err := s.run(ctx, createTableSQL(req.CollectionName, columns)); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "table created", "table", req.CollectionName, "columns", len(columns))
	return &CreatedTable{CollectionName: req.CollectionName}, nil
}

func (s *TableService) DeleteTable(ctx context.Context, table string) error {
	if _, err := s.run(ctx, dropTableSQL(table)); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "table dropped", "table", table)
	return nil
}

func (s *TableService) GetRow(ctx context.Context, table, id string) (*RowResult, error) {
	res, err := s.run(ctx, selectRowSQL(table), id)
	if err != nil {
		return nil, err
	}
	return &RowResult{Row: res.First()}, nil
}

// CreateRow inserts payload into table. An empty payload writes nothing
// and fails as an internal error wrapping ErrEmptyRow.
func (s *TableService) CreateRow(ctx context.Context, table string, payload model.RowPayload) (*RowResult, error) {
	if len(payload) == 0 {
		return nil, Internal(ErrEmptyRow)
	}
	if err := checkKeys(payload); err != nil {
		return nil, err
	}

	res, err := s.run(ctx, insertRowSQL(table, payload.Keys()), payload.Values()...)
	if err != nil {
		return nil, err
	}
	return &RowResult{Row: res.First()}, nil
}

// UpdateRow sets the columns in payload on the row with the given id.
// A missing row is not an error; the result then has no row.
func (s *TableService) UpdateRow(ctx context.Context, table, id string, payload model.RowPayload) (*RowResult, error) {
	if len(payload) == 0 {
		return nil, BadRequest(MsgNoDataIncluded)
	}
	if err := checkKeys(payload); err != nil {
		return nil, err
	}

	args := append(payload.Values(), id)
	res, err := s.run(ctx, updateRowSQL(table, payload.Keys()), args...)
	if err != nil {
		return nil, err
	}
	return &RowResult{Row: res.First()}, nil
}

func (s *TableService) DeleteRow(ctx context.Context, table, id string) error {
	_, err := s.run(ctx, deleteRowSQL(table), id)
	return err
}

func checkKeys(payload model.RowPayload) error {
	for _, f := range payload {
		if f.Key == "" {
			return BadRequest(MsgInvalidData)
		}
	}
	return nil
}

func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
