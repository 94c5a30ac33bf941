package timeutil

import "time"

// ClockLayout is the wall-clock format of the board's "last updated" label.
const ClockLayout = "03:04:05 PM"

// ResolveLocation loads name, falling back to UTC when it is empty or unknown.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatClock renders t in loc using ClockLayout. A nil loc keeps t's location.
func FormatClock(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(ClockLayout)
}
