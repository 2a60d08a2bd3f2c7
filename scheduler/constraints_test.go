package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karankamboj/scheduling-shows/models"
	"github.com/karankamboj/scheduling-shows/scheduler"
)

const (
	day     = "2026-01-20"
	closing = 17 * 60
)

var (
	pod3 = models.Pod{ID: "CRTVC 3", Capacity: 24, OpsGroup: "A"}
	pod4 = models.Pod{ID: "CRTVC 4", Capacity: 24, OpsGroup: "A"}
	pod5 = models.Pod{ID: "CRTVC 5", Capacity: 28, OpsGroup: "B"}
)

// ledgerWith places one Bio 181 M1 A1 booking at 10:00-10:30 in CRTVC 3
// and returns the ledger and a checker with a 10-minute break rule.
func ledgerWith(t *testing.T) (*scheduler.Ledger, *scheduler.Checker) {
	t.Helper()
	ledger := scheduler.NewLedger()
	ledger.Place(models.Booking{
		Date:        date(2026, 1, 20),
		Pod:         pod3.ID,
		PodCapacity: pod3.Capacity,
		Start:       600,
		End:         630,
		Course:      "Bio 181",
		Activity:    "M1 A1",
		ShowLength:  30,
	}, pod3.OpsGroup)
	return ledger, scheduler.NewChecker(ledger, 10)
}

func TestCanPlaceTeamSlotExclusivity(t *testing.T) {
	_, checker := ledgerWith(t)

	tests := map[string]struct {
		pod        models.Pod
		start      int
		showLength int
		expected   bool
	}{
		// CRTVC 4 shares ops group A with the existing 600-630 booking.
		"SameTeamSameStart":     {pod: pod4, start: 600, showLength: 30, expected: false},
		"SameTeamSameEnd":       {pod: pod4, start: 610, showLength: 20, expected: false},
		"SameTeamDistinctSlots": {pod: pod4, start: 700, showLength: 30, expected: true},
		// CRTVC 5 is in ops group B, so identical offsets are fine.
		"OtherTeamSameStart": {pod: pod5, start: 600, showLength: 30, expected: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := checker.CanPlace(day, tc.pod, tc.start, tc.showLength, "Bio 181", "M1 A1", closing)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCanPlaceRejectsDuplicateTeamEnd(t *testing.T) {
	_, checker := ledgerWith(t)

	// Existing booking ends at 630; a 20-minute show starting at 610 in
	// another pod of the same team would also end at 630.
	assert.False(t, checker.CanPlace(day, pod4, 610, 20, "CHM 113", "CHM M1 A1", closing))
	// In the other team the same end offset is allowed.
	assert.True(t, checker.CanPlace(day, pod5, 610, 20, "CHM 113", "CHM M1 A1", closing))
}

func TestCanPlaceClosingBound(t *testing.T) {
	ledger := scheduler.NewLedger()
	checker := scheduler.NewChecker(ledger, 10)

	// Ends exactly at closing: allowed. One minute later: rejected.
	assert.True(t, checker.CanPlace(day, pod3, closing-30, 30, "Bio 181", "M1 A1", closing))
	assert.False(t, checker.CanPlace(day, pod3, closing-29, 30, "Bio 181", "M1 A1", closing))
}

func TestCanPlaceSamePodSpacing(t *testing.T) {
	tests := map[string]struct {
		start    int
		course   string
		activity string
		expected bool
	}{
		// Existing booking: Bio 181 M1 A1, 600-630, in CRTVC 3.
		"SameActivityOverlap":      {start: 615, course: "Bio 181", activity: "M1 A1", expected: false},
		"SameActivityAbutsAfter":   {start: 630, course: "Bio 181", activity: "M1 A1", expected: true},
		"SameActivityAbutsBefore":  {start: 570, course: "Bio 181", activity: "M1 A1", expected: true},
		"OtherActivityOverlap":     {start: 615, course: "CHM 113", activity: "CHM M1 A1", expected: false},
		"OtherActivityNoGapAfter":  {start: 630, course: "CHM 113", activity: "CHM M1 A1", expected: false},
		"OtherActivityShortGap":    {start: 635, course: "CHM 113", activity: "CHM M1 A1", expected: false},
		"OtherActivityFullGap":     {start: 640, course: "CHM 113", activity: "CHM M1 A1", expected: true},
		"OtherActivityGapBefore":   {start: 560, course: "CHM 113", activity: "CHM M1 A1", expected: true},
		"OtherActivityTightBefore": {start: 565, course: "CHM 113", activity: "CHM M1 A1", expected: false},
		"SameCourseOtherActivity":  {start: 635, course: "Bio 181", activity: "M1 A2", expected: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, checker := ledgerWith(t)
			got := checker.CanPlace(day, pod3, tc.start, 30, tc.course, tc.activity, closing)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestLedgerState(t *testing.T) {
	ledger, _ := ledgerWith(t)

	assert.True(t, ledger.TeamStartUsed(day, "A", 600))
	assert.True(t, ledger.TeamEndUsed(day, "A", 630))
	assert.False(t, ledger.TeamStartUsed(day, "B", 600))
	assert.False(t, ledger.TeamStartUsed("2026-01-21", "A", 600))

	assert.Equal(t, 1, ledger.Usage(pod3.ID))
	assert.Equal(t, 0, ledger.Usage(pod4.ID))

	assert.Len(t, ledger.PodBookings(day, pod3.ID), 1)
	assert.Empty(t, ledger.PodBookings(day, pod4.ID))
	assert.Len(t, ledger.Bookings(), 1)
}
