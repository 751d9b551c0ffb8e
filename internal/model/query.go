package model

type QueryResult struct {
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// First returns the first row, or nil when the result is empty.
func (r *QueryResult) First() map[string]any {
	if r == nil || len(r.Rows) == 0 {
		return nil
	}
	return r.Rows[0]
}
