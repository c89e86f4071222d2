package utils

import (
	"strings"
	"time"
)

// EmptyValue is printed wherever a document field has nothing to show
const EmptyValue = "—"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats the backend is known to emit.
// Values without a zone are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateFR renders a date as dd/mm/yyyy in loc.
func FormatDateFR(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return EmptyValue
	}
	return inLocation(t, loc).Format("02/01/2006")
}

// FormatTimeFR renders a time of day as HH:MM in loc.
func FormatTimeFR(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return EmptyValue
	}
	return inLocation(t, loc).Format("15:04")
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}
