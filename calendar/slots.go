package calendar

import "time"

// CandidateStarts returns the ordered start offsets a show of the given
// length could occupy on the date: from the opening offset up to
// closing minus showLength inclusive, stepped by the grid increment.
// The result is empty when the show does not fit in the day at all.
func (c *Calendar) CandidateStarts(date time.Time, showLength, step int) []int {
	lastStart := c.ClosingOffset(date) - showLength
	if lastStart < c.openOffset {
		return nil
	}
	starts := make([]int, 0, (lastStart-c.openOffset)/step+1)
	for s := c.openOffset; s <= lastStart; s += step {
		starts = append(starts, s)
	}
	return starts
}
