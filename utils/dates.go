package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

var (
	datePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	time24Pattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	time12Pattern = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):([0-5]\d)\s?(AM|PM)$`)
)

// ParseLocalDate turns "YYYY-MM-DD" into local midnight of that day. The day
// is built from its components so the server's UTC offset never shifts it.
func ParseLocalDate(s string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, fmt.Errorf("date %q must be in YYYY-MM-DD format", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes 2025-02-30 into March; reject that.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("date %q is not a valid calendar day", s)
	}
	return t, nil
}

// DayBounds returns local 00:00:00.000 and 23:59:59.999 of t's calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// StartOfToday is local midnight of the current day.
func StartOfToday(now time.Time) time.Time {
	start, _ := DayBounds(now.In(time.Local))
	return start
}

// FormatDate renders the local calendar day of t in DateLayout. Stored dates
// come back from the driver in UTC, so the local zone is applied first.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// NormalizeClockTime accepts "HH:MM" or "h:MM AM/PM" and returns "HH:MM".
func NormalizeClockTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if time24Pattern.MatchString(s) {
		return s, nil
	}
	m := time12Pattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("time %q must be in HH:MM or HH:MM AM/PM format", s)
	}
	hour, _ := strconv.Atoi(m[1])
	pm := strings.EqualFold(m[3], "PM")
	switch {
	case pm && hour != 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}
	return fmt.Sprintf("%02d:%s", hour, m[2]), nil
}
