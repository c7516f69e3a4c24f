// Package calc holds the pure conversion, formatting, validation and date
// bucketing helpers shared by the engines. All functions are total over their
// documented domains and never allocate beyond their return value.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// MinutesPerAW converts Allocated Work units to time: 1 AW = 5 minutes.
const MinutesPerAW = 5

// AWToMinutes converts AW units to minutes.
func AWToMinutes(aw int) int {
	return aw * MinutesPerAW
}

// FormatTime renders minutes as "Xh Ym" with integer hours and minutes.
func FormatTime(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatDecimalHours renders minutes as decimal hours with two decimal places.
func FormatDecimalHours(minutes int) string {
	return strconv.FormatFloat(float64(minutes)/60, 'f', 2, 64)
}

// ValidateWIPNumber reports whether s is exactly 5 ASCII digits.
func ValidateWIPNumber(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateAW reports whether v is an integer value in [0, 100].
func ValidateAW(v float64) bool {
	return v == math.Trunc(v) && v >= 0 && v <= 100
}

const dayKeyLayout = "2006-01-02"

// DayKey returns the day bucket of an ISO-8601 timestamp: its first 10
// characters, taken as-is with no timezone normalization. Grouping by string
// prefix rather than a parsed date is deliberate and must stay consistent
// across the engines.
func DayKey(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

// MonthKey returns the "YYYY-MM" bucket of an ISO-8601 timestamp.
func MonthKey(ts string) string {
	if len(ts) < 7 {
		return ts
	}
	return ts[:7]
}

// DayKeyOf formats a time as a day key.
func DayKeyOf(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// WeekStart returns the day key of the Sunday starting the week that contains
// day. Malformed day keys are returned unchanged.
func WeekStart(day string) string {
	t, err := time.Parse(dayKeyLayout, day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, -int(t.Weekday())).Format(dayKeyLayout)
}

// ParseDayKey parses a day key into a UTC midnight time.
func ParseDayKey(day string) (time.Time, error) {
	return time.Parse(dayKeyLayout, day)
}
