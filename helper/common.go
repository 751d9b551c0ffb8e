package helper

import "regexp"

var (
	CollectionNameRegex = regexp.MustCompile(`^[a-z0-9-]*$`)
	ColumnNameRegex     = regexp.MustCompile(`^[a-zA-Z0-9_]*$`)
)

// IsValidCollectionName reports whether s can name a new table.
// Only lowercase letters, digits and hyphens are allowed, and s must not be empty.
func IsValidCollectionName(s string) bool {
	return s != "" && CollectionNameRegex.MatchString(s)
}

func IsValidColumnName(s string) bool {
	return ColumnNameRegex.MatchString(s)
}
