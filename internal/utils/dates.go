package utils

import (
	"strings"
	"time"

	"biogram-server/internal/apperr"
)

const dateLayout = "2006-01-02"

var dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", dateLayout}

// ParseDate reads a YYYY-MM-DD (or RFC3339) value submitted as field. The
// result is the calendar day as written, at midnight UTC.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, apperr.Validation(field, "Enter a valid date (YYYY-MM-DD).")
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDateOrDefault returns def for an empty value.
func ParseDateOrDefault(field, value string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	return ParseDate(field, value)
}

// ParseDateTime accepts the layouts browsers and API clients send for a
// moment in time.
func ParseDateTime(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation(field, "Enter a valid date and time.")
}

// DateRangeQuery reads optional from/to query values.
func DateRangeQuery(from, to string) (start, end time.Time, err error) {
	if from != "" {
		if start, err = ParseDate("from", from); err != nil {
			return
		}
	}
	if to != "" {
		if end, err = ParseDate("to", to); err != nil {
			return
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		err = apperr.Validation("to", "End date must not be before start date.")
	}
	return
}
