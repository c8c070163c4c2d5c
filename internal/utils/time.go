package utils

import (
	"fmt"
	"time"

	"github.com/jstrand/planwise/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDate parses a date string (YYYY-MM-DD) at midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in the
// specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatDate renders a timestamp as a YYYY-MM-DD date string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseClockToMinutes parses a clock string (HH:MM) and returns the number
// of minutes from midnight.
func ParseClockToMinutes(clock string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutesAsClock renders minutes from midnight as an HH:MM string.
func FormatMinutesAsClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockOf returns the HH:MM clock string of a timestamp.
func ClockOf(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// CombineDateAndClock combines a date string (YYYY-MM-DD) and clock string
// (HH:MM) into a single time.Time in the specified timezone.
func CombineDateAndClock(dateStr, clock string, loc *time.Location) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	timeOfDay, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, loc), nil
}

// ClockRangesOverlap reports whether two half-open clock ranges overlap.
// Ranges with unparseable endpoints never overlap anything.
func ClockRangesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := ParseClockToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := ParseClockToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := ParseClockToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := ParseClockToMinutes(end2)
	if err != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}

// ClockRangeContains reports whether [innerStart, innerEnd) lies entirely
// inside [outerStart, outerEnd).
func ClockRangeContains(outerStart, outerEnd, innerStart, innerEnd string) bool {
	os, err := ParseClockToMinutes(outerStart)
	if err != nil {
		return false
	}
	oe, err := ParseClockToMinutes(outerEnd)
	if err != nil {
		return false
	}
	is, err := ParseClockToMinutes(innerStart)
	if err != nil {
		return false
	}
	ie, err := ParseClockToMinutes(innerEnd)
	if err != nil {
		return false
	}
	return os <= is && ie <= oe
}
