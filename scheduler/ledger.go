// Package scheduler places shows into pods over a demand window's date
// range, subject to pod exclusivity, shared ops-team timing, break
// spacing, and site operating hours.
package scheduler

import (
	"github.com/karankamboj/scheduling-shows/models"
)

type teamKey struct {
	day  string
	team string
}

type podKey struct {
	day string
	pod string
}

// Ledger owns all allocation state for one run: the placed bookings,
// the start/end offsets already claimed per (day, ops group), and the
// per-pod usage counters used as a load-spreading tie-break. It is
// append-only; Place is the sole mutator and assumes the caller has
// already validated legality.
type Ledger struct {
	bookings   []models.Booking
	byPod      map[podKey][]int // indexes into bookings
	teamStarts map[teamKey]map[int]struct{}
	teamEnds   map[teamKey]map[int]struct{}
	usage      map[string]int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		byPod:      make(map[podKey][]int),
		teamStarts: make(map[teamKey]map[int]struct{}),
		teamEnds:   make(map[teamKey]map[int]struct{}),
		usage:      make(map[string]int),
	}
}

// Place records the booking and updates the ops-team slot usage and the
// pod's usage counter.
func (l *Ledger) Place(b models.Booking, opsGroup string) {
	day := b.DateKey()

	idx := len(l.bookings)
	l.bookings = append(l.bookings, b)

	pk := podKey{day: day, pod: b.Pod}
	l.byPod[pk] = append(l.byPod[pk], idx)

	tk := teamKey{day: day, team: opsGroup}
	if l.teamStarts[tk] == nil {
		l.teamStarts[tk] = make(map[int]struct{})
	}
	l.teamStarts[tk][b.Start] = struct{}{}
	if l.teamEnds[tk] == nil {
		l.teamEnds[tk] = make(map[int]struct{})
	}
	l.teamEnds[tk][b.End] = struct{}{}

	l.usage[b.Pod]++
}

// PodBookings returns the bookings already placed in a pod on a day,
// in placement order.
func (l *Ledger) PodBookings(day, pod string) []models.Booking {
	idxs := l.byPod[podKey{day: day, pod: pod}]
	out := make([]models.Booking, len(idxs))
	for i, idx := range idxs {
		out[i] = l.bookings[idx]
	}
	return out
}

// TeamStartUsed reports whether any booking in the ops group already
// starts at the offset on the day, regardless of pod.
func (l *Ledger) TeamStartUsed(day, team string, start int) bool {
	_, ok := l.teamStarts[teamKey{day: day, team: team}][start]
	return ok
}

// TeamEndUsed reports whether any booking in the ops group already ends
// at the offset on the day, regardless of pod.
func (l *Ledger) TeamEndUsed(day, team string, end int) bool {
	_, ok := l.teamEnds[teamKey{day: day, team: team}][end]
	return ok
}

// Usage returns how many bookings the pod has received so far.
func (l *Ledger) Usage(pod string) int {
	return l.usage[pod]
}

// Bookings returns all placed bookings in placement order.
func (l *Ledger) Bookings() []models.Booking {
	out := make([]models.Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}
