package app

import (
	"fmt"
	"strings"
	"time"
)

// ParseDay resolves a user-supplied date argument. Accepts "today",
// "tomorrow", an ISO date (2006-01-02), or empty for today. The returned
// time is truncated to midnight in now's location.
func ParseDay(arg string, now time.Time) (time.Time, error) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return day(now), nil
	case "tomorrow":
		return day(now.AddDate(0, 0, 1)), nil
	}

	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(arg), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use today, tomorrow or YYYY-MM-DD", arg)
	}
	return t, nil
}
