package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karankamboj/scheduling-shows/models"
	"github.com/karankamboj/scheduling-shows/scheduler"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildWindows(t *testing.T) {
	rows := []models.DemandRow{
		{Course: "Bio 181", Activity: "M1 A1", OpenDate: date(2026, 1, 20), CloseDate: date(2026, 1, 26)},
		{Course: "Bio 100", Activity: "M1 A1", OpenDate: date(2026, 1, 16), CloseDate: date(2026, 1, 28)},
		// Duplicate pair with a wider range on both sides: the merged
		// window takes the earliest open and the latest close.
		{Course: "Bio 181", Activity: "M1 A1", OpenDate: date(2026, 1, 16), CloseDate: date(2026, 1, 28)},
		{Course: "CHM 113", Activity: "CHM M1 A1", OpenDate: date(2026, 1, 20), CloseDate: date(2026, 2, 2)},
	}
	students := map[string]int{"Bio 181": 576, "Bio 100": 350}

	windows := scheduler.BuildWindows(rows, students, 200, 0.10)
	require.Len(t, windows, 3)

	// Order: close ascending, then open, then course for exact ties.
	assert.Equal(t, "Bio 100", windows[0].Course)
	assert.Equal(t, "Bio 181", windows[1].Course)
	assert.Equal(t, "CHM 113", windows[2].Course)

	merged := windows[1]
	assert.Equal(t, date(2026, 1, 16), merged.Open)
	assert.Equal(t, date(2026, 1, 28), merged.Close)
	assert.Equal(t, 576, merged.Students)
	assert.Equal(t, 634, merged.SeatsRequired) // ceil(576 * 1.10)

	// Unmapped course uses the default student count.
	assert.Equal(t, 200, windows[2].Students)
	assert.Equal(t, 220, windows[2].SeatsRequired)
}

func TestBuildWindowsOrdersByOpenOnCloseTie(t *testing.T) {
	rows := []models.DemandRow{
		{Course: "Bio 181", Activity: "M1 A1", OpenDate: date(2026, 1, 20), CloseDate: date(2026, 1, 28)},
		{Course: "Bio 100", Activity: "M1 A1", OpenDate: date(2026, 1, 16), CloseDate: date(2026, 1, 28)},
	}

	windows := scheduler.BuildWindows(rows, nil, 200, 0.10)
	require.Len(t, windows, 2)
	assert.Equal(t, "Bio 100", windows[0].Course)
	assert.Equal(t, "Bio 181", windows[1].Course)
}

func TestSeatsRequired(t *testing.T) {
	tests := map[string]struct {
		students int
		buffer   float64
		expected int
	}{
		"RoundsUp":   {students: 576, buffer: 0.10, expected: 634},
		"ExactValue": {students: 100, buffer: 0.10, expected: 110},
		"ZeroBuffer": {students: 250, buffer: 0, expected: 250},
		"NoStudents": {students: 0, buffer: 0.10, expected: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, scheduler.SeatsRequired(tc.students, tc.buffer))
		})
	}
}
