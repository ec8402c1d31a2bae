// Package schedule decides whether a run falls on the bi-weekly publishing slot.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
	// Embed tzdata for environments without zoneinfo.
	_ "time/tzdata"
)

// Defaults for the bi-weekly slot.
const (
	DefaultAnchor       = "2025-08-11"
	DefaultIntervalDays = 14
	anchorLayout        = "2006-01-02"
	hoursPerDay         = 24
)

// Error messages.
const (
	errFmtInvalidTimezone = "invalid timezone: %w"
	errFmtInvalidAnchor   = "invalid anchor date %q: %w"
)

// ErrAnchorNotMonday is returned when the anchor does not fall on the slot weekday.
var ErrAnchorNotMonday = errors.New("anchor date must be a Monday")

var timezoneAliases = map[string]string{
	"Asia/Calcutta": "Asia/Kolkata",
	"Asia/Nicosia":  "Europe/Nicosia",
}

// Biweekly is a slot on every IntervalDays-th day counted from Anchor, on Mondays only.
type Biweekly struct {
	Anchor       time.Time
	IntervalDays int
	Location     *time.Location
}

// NewBiweekly builds a slot from an ISO anchor date and an IANA timezone.
func NewBiweekly(anchor, timezone string) (Biweekly, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Biweekly{}, err
	}

	if strings.TrimSpace(anchor) == "" {
		anchor = DefaultAnchor
	}

	a, err := time.ParseInLocation(anchorLayout, strings.TrimSpace(anchor), loc)
	if err != nil {
		return Biweekly{}, fmt.Errorf(errFmtInvalidAnchor, anchor, err)
	}

	if a.Weekday() != time.Monday {
		return Biweekly{}, fmt.Errorf(errFmtInvalidAnchor, anchor, ErrAnchorNotMonday)
	}

	return Biweekly{Anchor: a, IntervalDays: DefaultIntervalDays, Location: loc}, nil
}

// Contains reports whether now falls on a slot day.
func (b Biweekly) Contains(now time.Time) bool {
	return InBiweeklyWindow(b.Anchor, now, b.Location, b.interval())
}

// Next returns the start of the first slot day on or after now.
func (b Biweekly) Next(now time.Time) time.Time {
	loc := b.location()
	day := dateOnly(now.In(loc))
	anchor := dateOnly(b.Anchor.In(loc))

	delta := daysBetween(anchor, day)
	rem := ((delta % b.interval()) + b.interval()) % b.interval()

	if rem == 0 {
		return day
	}

	return day.AddDate(0, 0, b.interval()-rem)
}

func (b Biweekly) interval() int {
	if b.IntervalDays <= 0 {
		return DefaultIntervalDays
	}

	return b.IntervalDays
}

func (b Biweekly) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}

	return b.Location
}

// InBiweeklyWindow reports whether now, seen in loc, is a Monday whose calendar
// distance from anchor is a whole multiple of intervalDays. Days before the anchor
// count backwards the same way.
func InBiweeklyWindow(anchor, now time.Time, loc *time.Location, intervalDays int) bool {
	if loc == nil {
		loc = time.UTC
	}

	if intervalDays <= 0 {
		intervalDays = DefaultIntervalDays
	}

	day := dateOnly(now.In(loc))
	if day.Weekday() != time.Monday {
		return false
	}

	return daysBetween(dateOnly(anchor.In(loc)), day)%intervalDays == 0
}

// LoadLocation resolves an IANA timezone name, mapping known aliases first.
// An empty name is UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = NormalizeTimezone(name)
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf(errFmtInvalidTimezone, err)
	}

	return loc, nil
}

// NormalizeTimezone maps known aliases to canonical IANA names.
func NormalizeTimezone(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if canonical, ok := timezoneAliases[value]; ok {
		return canonical
	}

	return value
}

// daysBetween counts calendar days from a to b. Both must be midnights in the same zone.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(ub.Sub(ua).Hours() / hoursPerDay)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
