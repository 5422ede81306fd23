// Package meritdate centralizes all Merit Aktiva date handling so the two
// wire formats the vendor uses stay consistent across the codebase.
package meritdate

import (
	"fmt"
	"time"
)

const (
	compactLayout   = "20060102"
	timestampLayout = "20060102150405"
)

// FormatError reports a date string that matches neither the vendor's
// compact YYYYMMDD form nor ISO-8601.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(
		"date string %q matches neither the YYYYMMDD form nor ISO-8601",
		e.Value,
	)
}

// FormatCompact renders a date the way the vendor's date parameters expect
// it (YYYYMMDD).
func FormatCompact(t time.Time) string {
	return t.Format(compactLayout)
}

// FormatTimestamp renders a signing timestamp (YYYYMMDDHHMMSS, always UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseCompact parses a YYYYMMDD date string into a UTC midnight time.
func ParseCompact(s string) (time.Time, error) {
	t, err := time.ParseInLocation(compactLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &FormatError{Value: s}
	}
	return t, nil
}

// Normalize converts a date string from either accepted input form (compact
// or ISO-8601, with or without fraction and zone) into the compact form.
// This is the single conversion point for incremental cursor values, which
// historically appear in both representations.
func Normalize(s string) (string, error) {
	if t, err := ParseCompact(s); err == nil {
		return FormatCompact(t), nil
	}
	t, err := parseISO(s)
	if err != nil {
		return "", &FormatError{Value: s}
	}
	return FormatCompact(t), nil
}

// NormalizePtr is Normalize for nullable cursor fields: nil passes through
// unchanged.
func NormalizePtr(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	normalized, err := Normalize(*s)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseISO(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 date: %q", s)
}

// Midnight truncates a time to its UTC midnight date.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultRange returns the extraction range used when the caller supplies
// none: one year back from now until now, both at UTC midnight.
func DefaultRange(now time.Time) (start, end time.Time) {
	end = Midnight(now)
	start = end.AddDate(0, 0, -365)
	return start, end
}
