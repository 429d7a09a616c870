package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical storage form of an event date
const DateLayout = "02.01.2006"

// ParseInstant combines a DD.MM.YYYY date and an HH:MM clock into a point in
// local time. Seconds are always zero.
func ParseInstant(date, clock string) (time.Time, error) {
	return ParseInstantIn(date, clock, time.Local)
}

// ParseInstantIn is ParseInstant for an explicit location
func ParseInstantIn(date, clock string, loc *time.Location) (time.Time, error) {
	year, month, day, err := splitDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, minutes/60, minutes%60, 0, 0, loc), nil
}

// ParseDate returns local midnight of a DD.MM.YYYY date
func ParseDate(date string) (time.Time, error) {
	year, month, day, err := splitDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// ParseClock returns an HH:MM value as minutes since midnight
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q: want HH:MM", ErrMalformedTime, clock)
	}
	hour, ok := parseSegment(parts[0])
	if !ok || hour > 23 {
		return 0, fmt.Errorf("%w: %q: bad hour", ErrMalformedTime, clock)
	}
	minute, ok := parseSegment(parts[1])
	if !ok || minute > 59 {
		return 0, fmt.Errorf("%w: %q: bad minute", ErrMalformedTime, clock)
	}
	return hour*60 + minute, nil
}

// FormatDate renders t in the canonical DD.MM.YYYY form
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func splitDate(date string) (year, month, day int, err error) {
	parts := strings.Split(date, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q: want DD.MM.YYYY", ErrMalformedDate, date)
	}
	var ok [3]bool
	day, ok[0] = parseSegment(parts[0])
	month, ok[1] = parseSegment(parts[1])
	year, ok[2] = parseSegment(parts[2])
	if !ok[0] || !ok[1] || !ok[2] {
		return 0, 0, 0, fmt.Errorf("%w: %q: non-numeric segment", ErrMalformedDate, date)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("%w: %q: month out of range", ErrMalformedDate, date)
	}
	if day < 1 || day > daysIn(year, month) {
		return 0, 0, 0, fmt.Errorf("%w: %q: day out of range", ErrMalformedDate, date)
	}
	return year, month, day, nil
}

// parseSegment accepts only plain decimal digits, so signs and blanks are rejected
func parseSegment(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
