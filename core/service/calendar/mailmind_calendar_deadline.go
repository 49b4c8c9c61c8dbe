package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayMonthPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
	isoDatePattern  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	timePattern     = regexp.MustCompile(`(?i)\b(\d{1,2}):?(\d{2})?\s*(am|pm)?\b`)
)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseDeadline finds a due date in free text. Relative phrases are
// resolved against now; "this week" means the coming Sunday. Returns
// false when the text carries no recognizable date.
func ParseDeadline(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "today"):
		return now, true
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1), true
	case strings.Contains(lower, "this week"):
		return now.AddDate(0, 0, 7-int(now.Weekday())), true
	case strings.Contains(lower, "next week"):
		return now.AddDate(0, 0, 7), true
	}

	if m := dayMonthPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthIndex[strings.ToLower(m[2])]
		return time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location()), true
	}

	if m := isoDatePattern.FindString(text); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ExtractTime finds a clock time in free text and normalizes it to
// 24-hour "HH:MM". Accepts "2:00 PM", "14:00" and "2pm" forms.
func ExtractTime(text string) (string, bool) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hours < 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes), true
}
