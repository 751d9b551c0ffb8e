package model

// Column describes one column of a table or of a result set.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
