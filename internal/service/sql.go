package service

import (
	"fmt"
	"strings"

	"tableapi/backend/helper"
	"tableapi/backend/internal/model"

	"github.com/lib/pq"
)

const listTablesSQL = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = 'public'
	AND table_name != 'pg_stat_statements'
	ORDER BY table_name`

const tableColumnsSQL = `
	SELECT column_name, data_type
	FROM information_schema.columns
	WHERE table_name = $1
	ORDER BY ordinal_position`

func selectRowsSQL(table string) string {
	return fmt.Sprintf("SELECT * FROM %s ORDER BY id ASC", pq.QuoteIdentifier(table))
}

func createTableSQL(table string, columns []model.ColumnSpec) string {
	defs := []string{"id SERIAL PRIMARY KEY"}
	for _, col := range columns {
		sqlType, _ := col.DataType.SQLType()
		defs = append(defs, pq.QuoteIdentifier(col.ColumnName)+" "+sqlType)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", pq.QuoteIdentifier(table), strings.Join(defs, ", "))
}

func dropTableSQL(table string) string {
	return "DROP TABLE " + pq.QuoteIdentifier(table)
}

func selectRowSQL(table string) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE id = $1", pq.QuoteIdentifier(table))
}

// insertRowSQL binds value i to placeholder $i+1 in the order of keys.
func insertRowSQL(table string, keys []string) string {
	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	for i, k := range keys {
		cols[i] = pq.QuoteIdentifier(k)
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// updateRowSQL binds the row id to the placeholder after the last value.
func updateRowSQL(table string, keys []string) string {
	sets := make([]string, len(keys))
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(k), i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), len(keys)+1)
}

func deleteRowSQL(table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = $1", pq.QuoteIdentifier(table))
}

// validColumns drops unnamed columns and reports false if any remaining
// column has a bad name or an unknown data type.
func validColumns(columns []model.ColumnSpec) ([]model.ColumnSpec, bool) {
	valid := make([]model.ColumnSpec, 0, len(columns))
	for _, col := range columns {
		if col.ColumnName == "" {
			continue
		}
		if !helper.IsValidColumnName(col.ColumnName) {
			return nil, false
		}
		if _, ok := col.DataType.SQLType(); !ok {
			return nil, false
		}
		valid = append(valid, col)
	}
	return valid, true
}
