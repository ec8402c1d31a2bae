// Package dates parses the loosely formatted timestamps collectors produce and
// formats them for display.
package dates

import (
	"strings"
	"time"
	// Embed tzdata for environments without zoneinfo.
	_ "time/tzdata"

	"github.com/araddon/dateparse"
)

const (
	// DefaultDisplayZone is the calendar used for link date suffixes and run timestamps.
	DefaultDisplayZone = "Asia/Kolkata"

	shortLayout = "02 Jan 2006"
	hoursPerDay = 24
)

// Parse returns the instant in UTC, or the zero time when s is empty or unparseable.
// Timestamps without a zone are treated as UTC.
func Parse(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}

	return t.UTC()
}

// Epoch is the stand-in for absent dates when ranking.
var Epoch = time.Unix(0, 0).UTC()

// OrEpoch maps an absent date to the Unix epoch so it ranks as the oldest possible.
func OrEpoch(t time.Time) time.Time {
	if t.IsZero() {
		return Epoch
	}

	return t
}

// WithinDays reports whether t falls within the last days days of now.
// Absent dates are never within the window.
func WithinDays(t time.Time, days int, now time.Time) bool {
	if t.IsZero() {
		return false
	}

	cutoff := now.Add(-time.Duration(days) * hoursPerDay * time.Hour)

	return !t.Before(cutoff)
}

// FormatShort renders t as "DD Mon YYYY" in loc, or "" when t is absent.
func FormatShort(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}

	if loc == nil {
		loc = time.UTC
	}

	return t.In(loc).Format(shortLayout)
}

// LoadLocation resolves a display zone name, falling back to UTC for unknown names.
func LoadLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		name = DefaultDisplayZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}

	return loc
}
