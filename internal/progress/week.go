package progress

import "time"

const dateLayout = "2006-01-02"

// DateKey returns the YYYY-MM-DD key for t. Day keys compare
// lexicographically in date order, so week windows are plain BETWEEN ranges.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key back into a time.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// WeekStart returns midnight of the most recent Sunday at or before t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekStartKey returns the day key of the most recent Sunday at or before t.
func WeekStartKey(t time.Time) string {
	return DateKey(WeekStart(t))
}
