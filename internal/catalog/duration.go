package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	nightsDaysPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*N\s*/\s*(\d+)\s*D\s*$`)
	daysPattern       = regexp.MustCompile(`(?i)(\d+)\s*(?:days?|d)(?:[^a-z]|$)`)
	firstIntPattern   = regexp.MustCompile(`\d+`)
)

// ParseDurationDays extracts a day count from a free-form duration label.
//
// Accepted forms, in order of precedence:
//   - "4N/5D" shorthand, yielding the day count (5)
//   - an integer followed by D, Day or Days ("10 Days, 9 Nights" is 10)
//   - the first integer anywhere in the label
//
// A label without digits yields 0, meaning unknown duration.
func ParseDurationDays(s string) int {
	if m := nightsDaysPattern.FindStringSubmatch(s); m != nil {
		return atoi(m[2])
	}
	if m := daysPattern.FindStringSubmatch(s); m != nil {
		return atoi(m[1])
	}
	if m := firstIntPattern.FindString(s); m != "" {
		return atoi(m)
	}
	return 0
}

// FormatDuration renders the "4N/5D" shorthand as "5 Days, 4 Nights".
// Other labels are returned trimmed.
func FormatDuration(s string) string {
	m := nightsDaysPattern.FindStringSubmatch(s)
	if m == nil {
		return strings.TrimSpace(s)
	}
	nights, days := atoi(m[1]), atoi(m[2])
	return fmt.Sprintf("%d %s, %d %s", days, plural(days, "Day"), nights, plural(nights, "Night"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// atoi never fails for regexp digit groups except on overflow, which we
// treat as unknown.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
