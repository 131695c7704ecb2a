package domain

import (
	"strings"
	"time"
)

// WeekdayKey lower-case weekday name used in stored schedules ("monday")
func WeekdayKey(day time.Weekday) string {
	return strings.ToLower(day.String())
}

// ParseWeekday accepts full or three-letter weekday names in any case
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if s == full || s == full[:3] {
			return d, true
		}
	}
	return time.Sunday, false
}
