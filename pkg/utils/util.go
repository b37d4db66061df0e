package utils

import "fmt"

// MinutesPerDay bounds a valid minutes-since-midnight offset (0-1439).
const MinutesPerDay = 24 * 60

// FormatClockMinutes renders a minutes-since-midnight offset as h:mm AM/PM,
// e.g. 540 -> "9:00 AM", 1020 -> "5:00 PM", 0 -> "12:00 AM".
func FormatClockMinutes(offset int) string {
	hour := (offset / 60) % 24
	minute := offset % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, minute, suffix)
}

// FormatWindow renders an open/close pair as "9:00 AM-5:00 PM".
func FormatWindow(openMinute, closeMinute int) string {
	return FormatClockMinutes(openMinute) + "-" + FormatClockMinutes(closeMinute)
}

// ValidClockMinutes reports whether offset is inside a single day.
func ValidClockMinutes(offset int) bool {
	return offset >= 0 && offset < MinutesPerDay
}
