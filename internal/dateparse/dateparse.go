// Package dateparse resolves natural date phrases against a reference time.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var inDaysPattern = regexp.MustCompile(`^in\s+(\S+)\s+days?$`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Layouts tried, in order, when the phrase is not a relative expression.
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 3:04pm",
	"1/2/2006 15:04",
	"1/2/2006",
	"Jan 2, 2006 3:04pm",
	"Jan 2 2006 3:04pm",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006 3:04pm",
	"January 2, 2006",
	"January 2 2006",
	"Monday, Jan 2, 2006",
	"Mon Jan 2 2006",
	"2 Jan 2006",
}

// Parse converts text into an absolute time relative to ref. It recognizes
// "today", "tomorrow", "in N days", weekday names with an optional "next "
// prefix, and a fixed set of absolute layouts. Relative forms resolve to
// midnight; absolute forms keep their time of day.
func Parse(text string, ref time.Time) (time.Time, bool) {
	phrase := strings.ToLower(strings.TrimSpace(text))
	if phrase == "" {
		return time.Time{}, false
	}
	switch phrase {
	case "today":
		return StartOfDay(ref), true
	case "tomorrow":
		return dayOffset(ref, 1), true
	}

	if m := inDaysPattern.FindStringSubmatch(phrase); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return time.Time{}, false
		}
		return dayOffset(ref, n), true
	}

	next := false
	name := phrase
	if rest, ok := strings.CutPrefix(phrase, "next "); ok {
		next = true
		name = strings.TrimSpace(rest)
	}
	if target, ok := weekdays[name]; ok {
		daysToAdd := int(target) - int(ref.Weekday())
		// A bare weekday equal to today's resolves a week out.
		if daysToAdd <= 0 || next {
			daysToAdd += 7
		}
		return dayOffset(ref, daysToAdd), true
	}

	return parseAbsolute(strings.TrimSpace(text), ref.Location())
}

func parseAbsolute(text string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, true
		}
	}
	// Lowercase meridiem is the only form time.Parse accepts for "pm" layouts.
	lowered := strings.ReplaceAll(strings.ReplaceAll(text, "PM", "pm"), "AM", "am")
	if lowered != text {
		return parseAbsolute(lowered, loc)
	}
	return time.Time{}, false
}

// AddDays offsets t by exactly n*24 hours.
func AddDays(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * 24 * time.Hour)
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOffset is midnight n calendar days after t.
func dayOffset(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight of the most recent Sunday at or before t.
func WeekStart(t time.Time) time.Time {
	return dayOffset(t, -int(t.Weekday()))
}

// FormatDate renders t as "Wednesday, Nov 5, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Monday, Jan 2, 2006")
}

// FormatTime renders t on a 12-hour clock, e.g. "3:04pm".
func FormatTime(t time.Time) string {
	return t.Format("3:04pm")
}

// FormatDateTime composes FormatDate and FormatTime.
func FormatDateTime(t time.Time) string {
	return FormatDate(t) + " at " + FormatTime(t)
}
