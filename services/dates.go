package services

import (
	"strings"
	"time"
)

// ParseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date. Bare
// dates resolve to midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, validationError("date is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, validationError("invalid date %q, expected RFC 3339 or YYYY-MM-DD", value)
}
