package scheduling

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParsePreferredTime maps a caller phrase like "tomorrow morning" or
// "friday at 2pm" onto a concrete instant relative to ref. The second return
// is false when the phrase carried no usable signal at all.
func ParsePreferredTime(text string, ref time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	matched := false

	target := ref
	switch {
	case strings.Contains(lower, "today"):
		matched = true
	case strings.Contains(lower, "tomorrow"):
		target = ref.AddDate(0, 0, 1)
		matched = true
	default:
		for name, weekday := range weekdayNames {
			if strings.Contains(lower, name) {
				target = nextWeekday(ref, weekday)
				matched = true
				break
			}
		}
	}

	hour, minute := 9, 0
	switch {
	case strings.Contains(lower, "morning"):
		hour = 9
		matched = true
	case strings.Contains(lower, "afternoon"):
		hour = 14
		matched = true
	case strings.Contains(lower, "evening"):
		hour = 17
		matched = true
	default:
		if m := clockPattern.FindStringSubmatch(lower); m != nil {
			h, _ := strconv.Atoi(m[1])
			if m[2] != "" {
				minute, _ = strconv.Atoi(m[2])
			}
			switch {
			case m[3] == "pm" && h < 12:
				h += 12
			case m[3] == "am" && h == 12:
				h = 0
			}
			if h >= 0 && h <= 23 && minute >= 0 && minute <= 59 {
				hour = h
				matched = true
			}
		}
	}

	if !matched {
		return time.Time{}, false
	}
	return time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, ref.Location()), true
}

// nextWeekday returns the next occurrence of the weekday strictly after ref's day.
func nextWeekday(ref time.Time, weekday time.Weekday) time.Time {
	days := int(weekday) - int(ref.Weekday())
	if days <= 0 {
		days += 7
	}
	return ref.AddDate(0, 0, days)
}
