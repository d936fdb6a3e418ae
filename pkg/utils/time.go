package utils

import "time"

// GetDayStart returns the start (00:00:00 UTC) of the current day.
func GetDayStart() time.Time {
	return GetDayStartFrom(time.Now().UTC())
}

// GetDayStartFrom returns the start of the UTC day containing t. Used by
// the catalog generator to normalize "today" before iterating D
// consecutive days, so the iteration is stable regardless of the hour
// the generator happens to run at.
func GetDayStartFrom(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDuration renders |d| truncated to its two largest units, in
// time.Duration's own format ("45s", "5m30s", "2h15m0s", and "77h0m0s"
// for 3 days 5 hours).
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		if hours > 0 {
			return (time.Duration(days*24+hours) * time.Hour).String()
		}
		return (time.Duration(days*24) * time.Hour).String()
	}
	if hours > 0 {
		if minutes > 0 {
			return (time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute).String()
		}
		return (time.Duration(hours) * time.Hour).String()
	}
	if minutes > 0 {
		if seconds > 0 {
			return (time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second).String()
		}
		return (time.Duration(minutes) * time.Minute).String()
	}
	return (time.Duration(seconds) * time.Second).String()
}

// ToUTC normalizes t to UTC without changing the instant.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}
