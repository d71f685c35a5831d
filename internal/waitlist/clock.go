package waitlist

import (
	"fmt"
	"time"
)

// WeekClock maps wall-clock time to ISO-week capacity buckets and computes
// the next capacity window opening. The now source is overridable in tests.
type WeekClock struct {
	now func() time.Time
}

// NewWeekClock creates a clock backed by time.Now
func NewWeekClock() *WeekClock {
	return &WeekClock{now: time.Now}
}

func newWeekClockAt(now func() time.Time) *WeekClock {
	return &WeekClock{now: now}
}

// WeekKeyFor derives the ISO-8601 week key for a timestamp, e.g. "2026-W35".
// Weeks start on Monday and week 1 is the week containing the first Thursday
// of the year, so the ISO year can differ from the calendar year around
// January 1st.
func WeekKeyFor(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// CurrentWeekKey returns the week key for the current time
func (c *WeekClock) CurrentWeekKey() string {
	return WeekKeyFor(c.now())
}

// NextWindowOpen returns next Monday at hour:minute local time, computed
// from the start of the current ISO week plus seven days. The result is
// stable for repeated calls within one week and always in the future
// relative to the current week's start.
func (c *WeekClock) NextWindowOpen(hour, minute int) time.Time {
	now := c.now()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	weekStart := time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, now.Location())
	next := weekStart.AddDate(0, 0, 7)
	return time.Date(next.Year(), next.Month(), next.Day(), hour, minute, 0, 0, next.Location())
}

// FormatHuman renders a timestamp for display, spelling out the year only
// when it differs from the current one.
func (c *WeekClock) FormatHuman(t time.Time) string {
	if t.Year() != c.now().Year() {
		return t.Format("Mon, Jan 02, 2006 03:04 PM")
	}
	return t.Format("Mon, Jan 02 03:04 PM")
}
