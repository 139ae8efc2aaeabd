package repository

import (
	"database/sql"
	"time"
)

// dateLayout is the storage format for day-granularity schedule dates.
const dateLayout = "2006-01-02"

// parseDate parses a stored date string into UTC midnight. Stored values
// always come from formatDate, so a parse failure is a data bug; the
// zero time is returned rather than an error to keep scan paths simple.
func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// parseNullableTime parses a sql.NullString into a *time.Time using the
// given layout. Returns nil for NULL, empty, or unparseable values.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a SQLite-storable value,
// nil pointer mapping to SQL NULL.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableString maps the empty string to SQL NULL.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
