package establishment

import (
	"strings"
	"time"
)

// DateLayout is the display and storage layout for dates (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// parseLayout accepts one- or two-digit day and month.
const parseLayout = "2/1/2006"

// Inspection cadence and thresholds, in days.
const (
	InspectionIntervalDays = 365
	CurrentThresholdDays   = 90
	AttentionThresholdDays = 60
)

// Clock returns the current time. Services take one so "today" can be fixed in tests.
type Clock func() time.Time

// ParseDate parses a DD/MM/YYYY date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(parseLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatDate renders t as DD/MM/YYYY; the zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Day truncates t to its calendar date, in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextInspection returns the date the next inspection is due.
func NextInspection(last time.Time) time.Time {
	return Day(last).AddDate(0, 0, InspectionIntervalDays)
}

// DaysBetween counts calendar days from a to b; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Evaluate classifies an inspection date against today.
// Returns the status and the next inspection date.
func Evaluate(last, today time.Time) (Status, time.Time) {
	next := NextInspection(last)
	remaining := DaysBetween(today, next)

	switch {
	case remaining >= CurrentThresholdDays:
		return StatusCurrent, next
	case remaining >= AttentionThresholdDays:
		return StatusNeedsAttention, next
	default:
		return StatusExpired, next
	}
}

// ComputeStatus derives status and next inspection date from a stored last
// inspection date. Empty input is UNSET, unparseable input is FORMAT_ERROR;
// both return an empty next date.
func ComputeStatus(lastInspection string, today time.Time) (Status, string) {
	if strings.TrimSpace(lastInspection) == "" {
		return StatusUnset, ""
	}

	last, err := ParseDate(lastInspection)
	if err != nil {
		return StatusFormatError, ""
	}

	status, next := Evaluate(last, today)
	return status, FormatDate(next)
}
