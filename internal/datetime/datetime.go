package datetime

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var localLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ParseLocal joins a segment's date and clock fields and parses them as a
// naive local timestamp. Both parts are required.
func ParseLocal(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, &time.ParseError{
			Value:   date + " " + clock,
			Message: ": missing date or time",
		}
	}

	value := date + " " + clock
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   value,
		Message: ": unable to parse local timestamp",
	}
}

// DaysBetween returns the number of calendar days from one date to another.
// ok is false when either date does not parse.
func DaysBetween(from, to string) (int, bool) {
	start, err := ParseDate(from)
	if err != nil {
		return 0, false
	}
	end, err := ParseDate(to)
	if err != nil {
		return 0, false
	}
	return int(end.Sub(start).Hours() / 24), true
}

// FormatDuration renders whole minutes as "{H}h {M}m".
func FormatDuration(totalMinutes int) string {
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}
