package scheduler

import (
	"github.com/karankamboj/scheduling-shows/models"
)

// Checker evaluates whether a candidate placement is legal against the
// current ledger state. All checks are pure reads; nothing is mutated.
type Checker struct {
	ledger      *Ledger
	breakLength int
}

// NewChecker builds a Checker over the ledger with the configured break
// length between different activities in the same pod.
func NewChecker(ledger *Ledger, breakLength int) *Checker {
	return &Checker{ledger: ledger, breakLength: breakLength}
}

// CanPlace reports whether a show of showLength minutes may start at
// the offset in the pod on the day, given the closing offset for that
// date. The rules, in evaluation order:
//
//  1. No booking in the same ops group on the same day may share the
//     start offset or the end offset.
//  2. The show must end by closing.
//  3. Against each existing booking in the same pod that day: a booking
//     of the same (course, activity) only forbids direct overlap; a
//     booking of a different activity additionally requires the break
//     length of clearance on both sides.
func (c *Checker) CanPlace(day string, pod models.Pod, start, showLength int, course, activity string, closingOffset int) bool {
	end := start + showLength

	if c.ledger.TeamStartUsed(day, pod.OpsGroup, start) {
		return false
	}
	if c.ledger.TeamEndUsed(day, pod.OpsGroup, end) {
		return false
	}

	if end > closingOffset {
		return false
	}

	for _, existing := range c.ledger.PodBookings(day, pod.ID) {
		sameActivity := existing.Course == course && existing.Activity == activity
		if sameActivity {
			if start < existing.End && end > existing.Start {
				return false
			}
			continue
		}
		// Different activity: insufficient gap in either direction also
		// covers overlap.
		if start < existing.End+c.breakLength && end > existing.Start {
			return false
		}
		if existing.Start < end+c.breakLength && existing.End > start {
			return false
		}
	}

	return true
}
