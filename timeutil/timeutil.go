// Package timeutil handles the app's fixed-offset timezone (WIB, UTC+7 by
// default) and the date keys used to partition usage by day.
package timeutil

import (
	"fmt"
	"time"
)

// DefaultOffsetHours is the fixed timezone offset the app tracks days in.
const DefaultOffsetHours = 7

// Location returns a fixed-offset location for the given hour offset.
func Location(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// Now returns the current time in the app timezone.
func Now(offsetHours int) time.Time {
	return time.Now().In(Location(offsetHours))
}

// DateKey formats t as a YYYY-MM-DD key in the app timezone.
func DateKey(t time.Time, offsetHours int) string {
	return t.In(Location(offsetHours)).Format("2006-01-02")
}

// TodayKey returns today's date key in the app timezone.
func TodayKey(offsetHours int) string {
	return DateKey(time.Now(), offsetHours)
}

// NeedsReset reports whether the per-day counters must restart: true when the
// stored key is empty or belongs to a different calendar day than nowKey.
func NeedsReset(lastKey, nowKey string) bool {
	return lastKey != nowKey
}

// WeekDateKeys returns the date keys of the last seven days, oldest first.
func WeekDateKeys(offsetHours int) []string {
	keys := make([]string, 0, 7)
	today := Now(offsetHours)
	for i := 6; i >= 0; i-- {
		keys = append(keys, DateKey(today.AddDate(0, 0, -i), offsetHours))
	}
	return keys
}

// FormatCountdown renders fractional remaining minutes as a live MM:SS
// counter. Values at or below zero render as "00:00".
func FormatCountdown(minutes float64) string {
	if minutes <= 0 {
		return "00:00"
	}
	mins := int(minutes)
	secs := int((minutes - float64(mins)) * 60)
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// WholeMinutes rounds fractional minutes down for display.
func WholeMinutes(minutes float64) int {
	if minutes <= 0 {
		return 0
	}
	return int(minutes)
}
