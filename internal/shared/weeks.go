package shared

import (
	"fmt"
	"time"
)

// Airplay data is keyed by week, where a week is identified by its Monday.
// Series labels from the backend use the wire format below.

const weekWireFormat = "2006-01-02"

// MondayOf returns the Monday of the week containing d, truncated to midnight UTC.
func MondayOf(d time.Time) time.Time {
	d = d.UTC().Truncate(24 * time.Hour)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// ParseWeek parses a YYYY-MM-DD week label as produced by the backend.
func ParseWeek(value string) (time.Time, error) {
	t, err := time.Parse(weekWireFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad week %q: %v", ErrInvalidInput, value, err)
	}
	return t, nil
}

// FormatWeek renders a week start in the backend's wire format.
func FormatWeek(weekStart time.Time) string {
	return weekStart.Format(weekWireFormat)
}

// WeekLabelRange renders a human-readable Monday-to-Sunday range for display,
// e.g. "06/01/2025 - 12/01/2025".
func WeekLabelRange(weekStart time.Time) string {
	end := weekStart.AddDate(0, 0, 6)
	return fmt.Sprintf("%s - %s", weekStart.Format("02/01/2006"), end.Format("02/01/2006"))
}
