// Package timeutil provides calendar-day utilities for the AcadBox engine.
// Every derivation in the engine (priority scoring, streak tracking, schedule
// bucketing) works on whole calendar days, so all helpers normalize to local
// midnight before comparing.
// No external dependencies - uses only standard library.
package timeutil

import "time"

// Location is the timezone used for all day-boundary math.
// Defaults to the process-local zone; the host may override it at startup
// before any state is loaded.
var Location = time.Local

// Now returns the current time in the engine timezone.
func Now() time.Time {
	return time.Now().In(Location)
}

// Today returns the current date normalized to midnight.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay returns the start of the day (00:00:00) in the engine timezone.
func StartOfDay(t time.Time) time.Time {
	local := t.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

// Date creates a midnight time with the given date in the engine timezone.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, Location)
}

// IsSameDay checks if two times fall on the same calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	a, b := t1.In(Location), t2.In(Location)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// CeilDaysUntil returns the number of days from today until t, rounded up.
// A midnight deadline today counts as 0, tomorrow as 1; overdue dates go
// negative. Deadlines are midnight-normalized on entry, so the fractional
// round-up only matters for raw timestamps.
func CeilDaysUntil(t, today time.Time) int {
	delta := t.Sub(StartOfDay(today))
	days := delta.Hours() / 24
	whole := int(days)
	if days > float64(whole) {
		whole++
	}
	return whole
}

// DaysBetween returns the absolute number of calendar days between two times.
func DaysBetween(t1, t2 time.Time) int {
	a := StartOfDay(t1)
	b := StartOfDay(t2)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// NextDay returns the midnight following the given time's day.
func NextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// Common date formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD), used for
	// deadlines, grade dates and streak history entries.
	FormatDate = "2006-01-02"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
)

// FormatDateStr formats a time as a date string (YYYY-MM-DD).
func FormatDateStr(t time.Time) string {
	return t.In(Location).Format(FormatDate)
}

// ParseDate parses a date string (YYYY-MM-DD) in the engine timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, Location)
}
