package utils

import (
	"fmt"
	"time"
)

// Layouts accepted at the API boundary. Values without an explicit zone are
// interpreted as UTC, never as server-local time.
var utcLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseUTCTime parses a timestamp with or without an explicit UTC marker
// and normalizes the result to UTC.
func ParseUTCTime(value string) (time.Time, error) {
	for _, layout := range utcLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
