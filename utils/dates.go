package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates
	DateLayout = "2006-01-02"
	// LongDateLayout renders dates in empty-state messages, e.g. "March 15, 2024"
	LongDateLayout = "January 2, 2006"
)

var clockLayouts = []string{"15:04:05", "15:04"}

// Today returns the server's local calendar date, stamped at midnight UTC
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf strips the clock from t, keeping t's calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseClock parses a time of day given as "HH:MM:SS" or "HH:MM"
func ParseClock(value string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", value)
}

// ParseDateOrToday parses value, falling back to today when it is empty
func ParseDateOrToday(value string) (time.Time, error) {
	if value == "" {
		return Today(), nil
	}
	return ParseDate(value)
}

// FormatLongDate renders t like "March 15, 2024"
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}

// WeekBounds returns the Sunday starting t's week and the Saturday ending it
func WeekBounds(t time.Time) (start, end time.Time) {
	d := DateOf(t)
	start = d.AddDate(0, 0, -int(d.Weekday()))
	return start, start.AddDate(0, 0, 6)
}

// MonthBounds returns the first and last calendar dates of t's month
func MonthBounds(t time.Time) (start, end time.Time) {
	d := DateOf(t)
	start = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}
