package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/edgardoc"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// formatFiledAt stores filing dates in the header's own layout so that they
// sort lexically. The zero time is stored as an empty string.
func formatFiledAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(edgardoc.FiledAsOfLayout)
}

func parseFiledAt(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(edgardoc.FiledAsOfLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse filed_at: %w", err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone gets LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
