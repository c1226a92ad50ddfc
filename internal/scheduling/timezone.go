// Package scheduling implements the daily scheduling and recommendation engine:
// slot generation, dynamic post recommendations, plan reconciliation and the
// timezone conversions they depend on. Everything in this package is a pure
// function of its inputs ("now" is always passed in); persistence and timers
// belong to the callers.
package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// LoadZone resolves an IANA zone name. Callers must not fall back to the host
// zone on error; a bad zone corrupts every displayed time downstream.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty zone name", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// IsValidZone reports whether name resolves to a known IANA zone. Used by the
// settings layer to reject bad zones at save time instead of during generation.
func IsValidZone(name string) bool {
	_, err := LoadZone(name)
	return err == nil
}

// TimeOfDayToInstant interprets hhmm ("HH:mm") as a wall-clock time in the
// named zone on the calendar day of reference (taken in that same zone) and
// returns the corresponding absolute instant in UTC.
func TimeOfDayToInstant(hhmm, zoneName string, reference time.Time) (time.Time, error) {
	loc, err := LoadZone(zoneName)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute, err := parseTimeOfDay(hhmm)
	if err != nil {
		return time.Time{}, err
	}

	ref := reference.In(loc)
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, loc).UTC(), nil
}

// FormatInstant renders an instant on a 12-hour clock in the named zone,
// optionally prefixed with the month and day ("Jan 2, 3:04 PM").
func FormatInstant(t time.Time, zoneName string, includeDate bool) (string, error) {
	loc, err := LoadZone(zoneName)
	if err != nil {
		return "", err
	}

	layout := "3:04 PM"
	if includeDate {
		layout = "Jan 2, 3:04 PM"
	}
	return t.In(loc).Format(layout), nil
}

func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// MinutesUntil returns the whole minutes from now until t, negative when t is
// already in the past.
func MinutesUntil(now, t time.Time) int {
	return int(t.Sub(now) / time.Minute)
}

func IsPast(now, t time.Time) bool {
	return t.Before(now)
}

// DateKey renders the calendar date of t in loc as YYYY-MM-DD, the key a
// daily plan is stored under.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// IsValidTimeOfDay reports whether hhmm parses as a 24-hour "HH:mm" string.
// Used to validate per-account base-time overrides at save time.
func IsValidTimeOfDay(hhmm string) bool {
	_, _, err := parseTimeOfDay(hhmm)
	return err == nil
}

func parseTimeOfDay(hhmm string) (hour, minute int, err error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, hhmm)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, hhmm)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, hhmm)
	}

	return hour, minute, nil
}
