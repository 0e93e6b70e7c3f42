// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// keyLayout is a fixed-width RFC3339 layout. RFC3339Nano trims trailing zeros,
// which breaks byte ordering of keys, so the fraction is always nine digits.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	secondsInAMinute = 60
	minutesInAnHour  = 60
	hoursInADay      = 24
)

// Epoch is the zero point of every prefix sum.
var Epoch = time.Unix(0, 0).UTC()

// ToKey converts a time value to a database key. Keys sort in time order.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}

// FromKey parses a key produced by ToKey.
func FromKey(b []byte) (time.Time, error) {
	return time.Parse(keyLayout, string(b))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// DayStart returns local midnight of now's day as a UTC timestamp.
func DayStart(now time.Time) time.Time {
	return RoundToStart(now).UTC()
}

// WeekStart returns the start of now's ISO week (Monday) as a UTC timestamp.
func WeekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7

	start := RoundToStart(now)

	return time.Date(
		start.Year(),
		start.Month(),
		start.Day()-offset,
		0,
		0,
		0,
		0,
		start.Location(),
	).UTC()
}

// MonthStart returns the first day of now's month as a UTC timestamp.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).UTC()
}

// YearStart returns the first day of now's year as a UTC timestamp.
func YearStart(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).UTC()
}

// FormatDuration renders a duration as "1d 2h 3m 4s", omitting leading empty
// units and whole-minute seconds. Zero and negative durations render as "--".
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	mins := secs / secondsInAMinute
	hours := mins / minutesInAnHour
	days := hours / hoursInADay

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}

	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours%hoursInADay))
	}

	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins%minutesInAnHour))
	}

	if secs > 0 && secs%secondsInAMinute != 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs%secondsInAMinute))
	}

	if len(parts) == 0 {
		return "--"
	}

	return strings.Join(parts, " ")
}

// FromStr parses an absolute or relative date expression such as
// "yesterday 9am" or "2 hours ago" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	d, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, errParsingDate.Fmt(s).Wrap(err)
	}

	return d.Time, nil
}
