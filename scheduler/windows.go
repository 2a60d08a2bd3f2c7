package scheduler

import (
	"math"
	"sort"

	"github.com/karankamboj/scheduling-shows/models"
)

// BuildWindows reduces raw demand rows to one window per distinct
// (course, activity) pair, taking the earliest open date and the latest
// close date when duplicates exist, and derives each window's seat
// requirement from the student count and buffer.
//
// Windows are returned in the order the allocator must process them:
// close date ascending, then open date, then course and activity so
// that exact date ties stay deterministic.
func BuildWindows(rows []models.DemandRow, students map[string]int, defaultStudents int, bufferPct float64) []models.DemandWindow {
	type pairKey struct {
		course   string
		activity string
	}

	merged := make(map[pairKey]*models.DemandWindow)
	var order []pairKey
	for _, row := range rows {
		key := pairKey{course: row.Course, activity: row.Activity}
		w, ok := merged[key]
		if !ok {
			merged[key] = &models.DemandWindow{
				Course:   row.Course,
				Activity: row.Activity,
				Open:     row.OpenDate,
				Close:    row.CloseDate,
			}
			order = append(order, key)
			continue
		}
		if row.OpenDate.Before(w.Open) {
			w.Open = row.OpenDate
		}
		if row.CloseDate.After(w.Close) {
			w.Close = row.CloseDate
		}
	}

	windows := make([]models.DemandWindow, 0, len(order))
	for _, key := range order {
		w := *merged[key]
		n, ok := students[w.Course]
		if !ok {
			n = defaultStudents
		}
		w.Students = n
		w.SeatsRequired = SeatsRequired(n, bufferPct)
		windows = append(windows, w)
	}

	sort.SliceStable(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if !a.Close.Equal(b.Close) {
			return a.Close.Before(b.Close)
		}
		if !a.Open.Equal(b.Open) {
			return a.Open.Before(b.Open)
		}
		if a.Course != b.Course {
			return a.Course < b.Course
		}
		return a.Activity < b.Activity
	})

	return windows
}

// SeatsRequired applies the buffer to a student count and rounds up.
func SeatsRequired(students int, bufferPct float64) int {
	return int(math.Ceil(float64(students) * (1.0 + bufferPct)))
}
