package utils

import "time"

// DateLayout is the wire format for all medicine dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Midnight truncates t to its calendar date at midnight UTC, so that
// dates coming from different sources compare equal.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
