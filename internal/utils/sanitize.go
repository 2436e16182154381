package utils

import (
	"errors"
	"strings"
)

// ReadOnlyKeywords are the statements a generated query may start with.
var ReadOnlyKeywords = []string{"SELECT", "SHOW", "DESCRIBE", "WITH"}

var ErrEmptyQuery = errors.New("empty query")

// SanitizeSQL strips the markdown fence and quoting models like to wrap SQL in.
func SanitizeSQL(raw string) string {
	query := strings.TrimSpace(raw)

	if strings.HasPrefix(query, "```sql") {
		query = query[len("```sql"):]
	} else if strings.HasPrefix(query, "```") {
		query = query[len("```"):]
	}
	query = strings.TrimSuffix(query, "```")
	query = strings.TrimSpace(query)

	// a lone quote counts as an empty quoted string
	if len(query) == 1 && (query[0] == '\'' || query[0] == '"') {
		return ""
	}
	if len(query) >= 2 {
		first, last := query[0], query[len(query)-1]
		if first == last && (first == '\'' || first == '"') {
			query = query[1 : len(query)-1]
		}
	}
	return query
}

// IsReadOnlySQL reports whether the statement begins with an allowed keyword.
func IsReadOnlySQL(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	if upper == "" {
		return false
	}
	for _, keyword := range ReadOnlyKeywords {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

// ValidateReadOnlySQL returns ErrEmptyQuery for blank text and a non-nil
// error for anything outside the allow-list.
func ValidateReadOnlySQL(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if !IsReadOnlySQL(query) {
		return errors.New("query does not start with " + strings.Join(ReadOnlyKeywords, ", "))
	}
	return nil
}
