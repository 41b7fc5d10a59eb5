package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form activities are stored with.
const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD string as midnight in loc. Full ISO
// timestamps ("2024-09-17T10:00:00Z") are accepted and keep their written
// date; anything else after the date is rejected.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.Local
	}
	if len(value) > len(DateLayout) {
		if !isTimestamp(value) {
			return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, value)
		}
		value = value[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, value)
	}
	return t, nil
}

var timestampLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func isTimestamp(value string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// StartOfDay zeroes the clock part of t, keeping its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// IsSameDay compares calendar days only.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
