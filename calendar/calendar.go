// Package calendar enumerates schedulable business days and the
// operating-hour boundaries that apply to each of them.
package calendar

import "time"

// Calendar knows the site's holiday set and daily operating hours.
// It is an immutable snapshot for the duration of a run.
type Calendar struct {
	holidays           map[string]struct{}
	openOffset         int
	closeOffsetRegular int
	closeOffsetFriday  int
}

// New builds a Calendar from the holiday set and the opening/closing
// offsets (minutes from midnight). The regular closing offset applies
// Monday through Thursday; Fridays close early.
func New(holidays []time.Time, openOffset, closeOffsetRegular, closeOffsetFriday int) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[dateKey(h)] = struct{}{}
	}
	return &Calendar{
		holidays:           set,
		openOffset:         openOffset,
		closeOffsetRegular: closeOffsetRegular,
		closeOffsetFriday:  closeOffsetFriday,
	}
}

// BusinessDays returns every Monday-Friday date in [open, close] that is
// not a holiday, in ascending order. The result is empty when the range
// is inverted or entirely excluded.
func (c *Calendar) BusinessDays(open, close time.Time) []time.Time {
	var days []time.Time
	for d := truncate(open); !d.After(truncate(close)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if c.IsHoliday(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// IsHoliday reports whether the date is in the holiday set.
func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.holidays[dateKey(date)]
	return ok
}

// OpeningOffset returns the site opening time, constant across all days.
func (c *Calendar) OpeningOffset() int {
	return c.openOffset
}

// ClosingOffset returns the closing time for the given date: the early
// offset on Fridays, the regular offset otherwise.
func (c *Calendar) ClosingOffset(date time.Time) int {
	if date.Weekday() == time.Friday {
		return c.closeOffsetFriday
	}
	return c.closeOffsetRegular
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
