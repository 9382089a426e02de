package task

import (
	"fmt"
	"time"
)

// FormatAge renders how long ago t was, for task rows: "now", "5 mins",
// "1 hour", "3 days", then the calendar date ("Jan 2") from a week on.
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	mins := int(d / time.Minute)
	if mins < 1 {
		return "now"
	}
	if mins < 60 {
		return plural(mins, "min")
	}
	hours := mins / 60
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := hours / 24
	if days < 7 {
		return plural(days, "day")
	}
	return t.Local().Format("Jan 2")
}

// FormatAgeShort is the compact form used where columns are scarce:
// "now", "5m", "3h", "2d", "Jan 2".
func FormatAgeShort(t, now time.Time) string {
	d := now.Sub(t)
	mins := int(d / time.Minute)
	switch {
	case mins < 1:
		return "now"
	case mins < 60:
		return fmt.Sprintf("%dm", mins)
	case mins < 24*60:
		return fmt.Sprintf("%dh", mins/60)
	case mins < 7*24*60:
		return fmt.Sprintf("%dd", mins/(24*60))
	}
	return t.Local().Format("Jan 2")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
