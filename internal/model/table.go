package model

// DataType is the column type a client may request when creating a table.
type DataType string

const (
	DataTypeText    DataType = "text"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
)

// SQLType maps a DataType to its Postgres column type.
// ok is false for anything outside text, number and boolean.
func (d DataType) SQLType() (sqlType string, ok bool) {
	switch d {
	case DataTypeText:
		return "VARCHAR", true
	case DataTypeNumber:
		return "INTEGER", true
	case DataTypeBoolean:
		return "BOOLEAN", true
	}
	return "", false
}

type ColumnSpec struct {
	ColumnName string   `json:"columnName"`
	DataType   DataType `json:"dataType"`
}

type CreateTableRequest struct {
	CollectionName string       `json:"collectionName"`
	Columns        []ColumnSpec `json:"columns"`
}
