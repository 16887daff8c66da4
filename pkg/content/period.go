package content

import (
	"strconv"
	"strings"
	"time"
)

// UnknownPeriodStart is returned for periods that cannot be parsed. It sorts
// after every real date in descending order.
var UnknownPeriodStart = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var months = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		months[name] = m
		months[name[:3]] = m
	}
}

var startLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"2006-01",
	"2006",
}

// ParsePeriodStart returns the start of a period such as "March 2020 - Present".
//
// A leading "<Month> <YYYY>" (full or three letter month name, any case)
// yields the first day of that month. Otherwise the start token is tried
// against a small set of common date layouts. Anything else yields
// UnknownPeriodStart.
func ParsePeriodStart(period string) time.Time {
	start, _, _ := strings.Cut(period, " - ")
	start = strings.TrimSpace(start)
	if start == "" {
		return UnknownPeriodStart
	}

	if fields := strings.Fields(start); len(fields) == 2 {
		if m, ok := months[strings.ToLower(strings.TrimSuffix(fields[0], "."))]; ok {
			if isYear(fields[1]) {
				year, _ := strconv.Atoi(fields[1])
				return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
			}
		}
	}

	for _, layout := range startLayouts {
		// time.Parse accepts a signed year, so "+202" would read as 0202.
		if t, err := time.Parse(layout, start); err == nil && t.Year() >= 1000 {
			return t.UTC()
		}
	}
	return UnknownPeriodStart
}

// isYear reports whether s is exactly four ASCII digits.
func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
