package service

import (
	"context"
	"errors"
	"testing"

	"tableapi/backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTables(t *testing.T) {
	db := &mockDBClient{
		runQueryFunc: func(query string, args []any) (*model.QueryResult, error) {
			return &model.QueryResult{Rows: []map[string]any{
				{"table_name": "accounts"},
				{"table_name": "users"},
			}}, nil
		},
	}
	svc := NewTableService(db, discardLogger())

	got, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"accounts", "users"}, got.Tables)
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].query, "table_schema = 'public'")
	assert.Contains(t, db.calls[0].query, "pg_stat_statements")
}

func TestListTablesError(t *testing.T) {
	db := &mockDBClient{
		runQueryFunc: func(query string, args []any) (*model.QueryResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewTableService(db, discardLogger())

	_, err := svc.ListTables(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "connection refused", err.Error())
}

func TestGetTable(t *testing.T) {
	db := &mockDBClient{
		runQueryFunc: func(query string, args []any) (*model.QueryResult, error) {
			if len(args) == 0 {
				return &model.QueryResult{Rows: []map[string]any{{"id": int64(1), "name": "Ann"}}}, nil
			}
			return &model.QueryResult{Rows: []map[string]any{
				{"column_name": "id", "data_type": "integer"},
				{"column_name": "name", "data_type": "character varying"},
			}}, nil
		},
	}
	svc := NewTableService(db, discardLogger())

	got, err := svc.GetTable(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"id": int64(1), "name": "Ann"}}, got.Rows)
	assert.Equal(t, []model.Column{
		{Name: "id", Type: "integer"},
		{Name: "name", Type: "character varying"},
	}, got.Columns)

	require.Len(t, db.calls, 2)
	assert.Equal(t, `SELECT * FROM "users" ORDER BY id ASC`, db.calls[0].query)
	assert.Equal(t, []any{"users"}, db.calls[1].args)
}

func TestGetTableMissing(t *testing.T) {
	db := &mockDBClient{
		runQueryFunc: func(query string, args []any) (*model.QueryResult, error) {
			return nil, errors.New(`pq: relation "ghost" does not exist`)
		},
	}
	svc := NewTableService(db, discardLogger())

	_, err := svc.GetTable(context.Background(), "ghost")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Len(t, db.calls, 1)
}

func TestCreateTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.CreateTableRequest
		wantMsg string
	}{
		{
			name:    "no body",
			req:     nil,
			wantMsg: MsgNoData,
		},
		{
			name:    "empty collection name",
			req:     &model.CreateTableRequest{CollectionName: ""},
			wantMsg: MsgInvalidData,
		},
		{
			name:    "uppercase collection name",
			req:     &model.CreateTableRequest{CollectionName: "Users"},
			wantMsg: MsgInvalidData,
		},
		{
			name: "bad column name",
			req: &model.CreateTableRequest{
				CollectionName: "users",
				Columns:        []model.ColumnSpec{{ColumnName: "full name", DataType: model.DataTypeText}},
			},
			wantMsg: MsgInvalidData,
		},
		{
			name: "bad data type",
			req: &model.CreateTableRequest{
				CollectionName: "users",
				Columns: []model.ColumnSpec{
					{ColumnName: "name", DataType: model.DataTypeText},
					{ColumnName: "born", DataType: "date"},
				},
			},
			wantMsg: MsgInvalidData,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := &mockDBClient{}
			svc := NewTableService(db, discardLogger())

			_, err := svc.CreateTable(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, KindBadRequest, KindOf(err))
			assert.Equal(t, tc.wantMsg, err.Error())
			assert.Empty(t, db.calls)
		})
	}
}

func TestCreateTable(t *testing.T) {
	db := &mockDBClient{}
	svc := NewTableService(db, discardLogger())

	got, err := svc.CreateTable(context.Background(), &model.CreateTableRequest{
		CollectionName: "pets",
		Columns: []model.ColumnSpec{
			{ColumnName: "name", DataType: model.DataTypeText},
			{ColumnName: "", DataType: "garbage"},
			{ColumnName: "age", DataType: model.DataTypeNumber},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pets", got.CollectionName)
	require.Len(t, db.calls, 1)
	assert.Equal(t, `CREATE TABLE "pets" (id SERIAL PRIMARY KEY, "name" VARCHAR, "age" INTEGER)`, db.calls[0].query)
}

func TestCreateTableDuplicate(t *testing.T) {
	db := &mockDBClient{
		runQueryFunc: func(query string, args []any) (*model.QueryResult, error) {
			return nil, errors.New(`pq: relation "pets" already exists`)
		},
	}
	svc := NewTableService(db, discardLogger())

	_, err := svc.CreateTable(context.Background(), &model.CreateTableRequest{CollectionName: "pets"})
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, `pq: relation "pets" already exists`, err.Error())
}

func TestDeleteTable(t *testing.T) {
	db := &mockDBClient{}
	svc := NewTableService(db, discardLogger())

	require.NoError(t, svc.DeleteTable(context.Background(), "pets"))
	assert.Equal(t, `DROP TABLE "pets"`, db.calls[0].query)
}

func TestGetRow(t *testing.T) {
	db := &mockDBClient{
		runQueryFunc: func(query string, args []any) (*model.QueryResult, error) {
			return &model.QueryResult{Rows: []map[string]any{{"id": int64(7)}}}, nil
		},
	}
	svc := NewTableService(db, discardLogger())

	got, err := svc.GetRow(context.Background(), "pets", "7")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(7)}, got.Row)
	assert.Equal(t, []any{"7"}, db.calls[0].args)
}

func TestGetRowNotFound(t *testing.T) {
	svc := NewTableService(&mockDBClient{}, discardLogger())

	got, err := svc.GetRow(context.Background(), "pets", "99")
	require.NoError(t, err)
	assert.Nil(t, got.Row)
}

func TestCreateRowBindsInKeyOrder(t *testing.T) {
	db := &mockDBClient{
		runQueryFunc: func(query string, args []any) (*model.QueryResult, error) {
			return &model.QueryResult{Rows: []map[string]any{
				{"id": int64(1), "a": args[0], "b": args[1]},
			}}, nil
		},
	}
	svc := NewTableService(db, discardLogger())

	payload := model.RowPayload{{Key: "a", Value: int64(1)}, {Key: "b", Value: "x"}}
	got, err := svc.CreateRow(context.Background(), "pairs", payload)
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "pairs" ("a", "b") VALUES ($1, $2) RETURNING *`, db.calls[0].query)
	assert.Equal(t, []any{int64(1), "x"}, db.calls[0].args)
	assert.Equal(t, map[string]any{"id": int64(1), "a": int64(1), "b": "x"}, got.Row)
}

func TestCreateRowEmptyPayload(t *testing.T) {
	db := &mockDBClient{}
	svc := NewTableService(db, discardLogger())

	for _, payload := range []model.RowPayload{nil, {}} {
		_, err := svc.CreateRow(context.Background(), "pets", payload)
		require.Error(t, err)
		assert.Equal(t, KindInternal, KindOf(err))
		assert.ErrorIs(t, err, ErrEmptyRow)
	}
	assert.Empty(t, db.calls)
}

func TestCreateRowEmptyKey(t *testing.T) {
	db := &mockDBClient{}
	svc := NewTableService(db, discardLogger())

	_, err := svc.CreateRow(context.Background(), "pets", model.RowPayload{{Key: "", Value: 1}})
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.Empty(t, db.calls)
}

func TestUpdateRow(t *testing.T) {
	db := &mockDBClient{}
	svc := NewTableService(db, discardLogger())

	payload := model.RowPayload{{Key: "name", Value: "Rex"}, {Key: "age", Value: int64(4)}}
	got, err := svc.UpdateRow(context.Background(), "pets", "3", payload)
	require.NoError(t, err)
	assert.Nil(t, got.Row)

	assert.Equal(t, `UPDATE "pets" SET "name" = $1, "age" = $2 WHERE id = $3 RETURNING *`, db.calls[0].query)
	assert.Equal(t, []any{"Rex", int64(4), "3"}, db.calls[0].args)
}

func TestUpdateRowNoData(t *testing.T) {
	db := &mockDBClient{}
	svc := NewTableService(db, discardLogger())

	_, err := svc.UpdateRow(context.Background(), "pets", "3", nil)
	require.Error(t, err)
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.Equal(t, MsgNoDataIncluded, err.Error())
	assert.Empty(t, db.calls)
}

func TestDeleteRow(t *testing.T) {
	db := &mockDBClient{}
	svc := NewTableService(db, discardLogger())

	require.NoError(t, svc.DeleteRow(context.Background(), "pets", "3"))
	assert.Equal(t, `DELETE FROM "pets" WHERE id = $1`, db.calls[0].query)
	assert.Equal(t, []any{"3"}, db.calls[0].args)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindBadRequest, KindOf(BadRequest(MsgNoData)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	cause := errors.New("boom")
	assert.ErrorIs(t, Internal(cause), cause)
}
