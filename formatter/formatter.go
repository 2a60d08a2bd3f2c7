// Package formatter renders a finished schedule as text, JSON, or CSV.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/karankamboj/scheduling-shows/models"
)

// scheduleRow is the flattened booking used by the JSON encoder.
type scheduleRow struct {
	Course      string `json:"course"`
	Activity    string `json:"activity"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Pod         string `json:"pod"`
	PodCapacity int    `json:"pod_capacity"`
	ShowLength  int    `json:"show_length"`
}

type summaryRow struct {
	Course         string  `json:"course"`
	Activity       string  `json:"activity"`
	Students       int     `json:"students"`
	BufferPct      float64 `json:"buffer_pct"`
	SeatsRequired  int     `json:"seats_required"`
	SeatsScheduled int     `json:"seats_scheduled"`
	Shows          int     `json:"shows_scheduled"`
	ShowLength     int     `json:"show_length"`
	Open           string  `json:"open"`
	Close          string  `json:"close"`
}

type report struct {
	Summary  []summaryRow  `json:"summary"`
	Schedule []scheduleRow `json:"schedule"`
}

// Chronological returns the bookings ordered by (date, start, pod), the
// order used for the main schedule listing.
func Chronological(bookings []models.Booking) []models.Booking {
	out := make([]models.Booking, len(bookings))
	copy(out, bookings)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Pod < b.Pod
	})
	return out
}

// ByWindow returns the bookings ordered by (course, activity, date,
// start), the order used for per-window grouping.
func ByWindow(bookings []models.Booking) []models.Booking {
	out := make([]models.Booking, len(bookings))
	copy(out, bookings)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Course != b.Course {
			return a.Course < b.Course
		}
		if a.Activity != b.Activity {
			return a.Activity < b.Activity
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Start < b.Start
	})
	return out
}

// SummariesByWindow returns the window summaries ordered by (course,
// activity), the order used for summary reporting.
func SummariesByWindow(summaries []models.WindowSummary) []models.WindowSummary {
	out := make([]models.WindowSummary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Course != out[j].Course {
			return out[i].Course < out[j].Course
		}
		return out[i].Activity < out[j].Activity
	})
	return out
}

// FormatDurations renders the show-length-by-prefix mapping shown at
// the top of the text report.
func FormatDurations(byPrefix map[string]int, defaultLength int) string {
	prefixes := make([]string, 0, len(byPrefix))
	for p := range byPrefix {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	var sb strings.Builder
	sb.WriteString("=== SHOW LENGTH MAPPING ===\n")
	for _, p := range prefixes {
		fmt.Fprintf(&sb, "%s -> %d mins\n", p, byPrefix[p])
	}
	fmt.Fprintf(&sb, "Default -> %d mins\n", defaultLength)
	return sb.String()
}

// FormatText returns the full human-readable report: summary table,
// chronological schedule, and a section per (course, activity) window.
func FormatText(s *models.Schedule) string {
	var sb strings.Builder

	sb.WriteString("=== SUMMARY ===\n")
	for _, sum := range SummariesByWindow(s.Summaries) {
		fmt.Fprintf(&sb, "%s | %s : students=%d buffer=%.0f%% required=%d scheduled=%d shows=%d length=%dmin window=%s..%s\n",
			sum.Course, sum.Activity, sum.Students, sum.BufferPct*100,
			sum.SeatsRequired, sum.SeatsScheduled, sum.Shows, sum.ShowLength,
			sum.Open.Format("2006-01-02"), sum.Close.Format("2006-01-02"))
	}

	sb.WriteString("\n=== SCHEDULE ===\n")
	for _, b := range Chronological(s.Bookings) {
		fmt.Fprintf(&sb, "%s %s-%s %-8s cap=%-3d %s | %s\n",
			b.DateKey(), b.StartClock(), b.EndClock(), b.Pod, b.PodCapacity, b.Course, b.Activity)
	}

	grouped := ByWindow(s.Bookings)
	var lastCourse, lastActivity string
	for _, b := range grouped {
		if b.Course != lastCourse || b.Activity != lastActivity {
			fmt.Fprintf(&sb, "\n===== %s | %s =====\n", b.Course, b.Activity)
			lastCourse, lastActivity = b.Course, b.Activity
		}
		fmt.Fprintf(&sb, "%s %s-%s %-8s cap=%-3d length=%dmin\n",
			b.DateKey(), b.StartClock(), b.EndClock(), b.Pod, b.PodCapacity, b.ShowLength)
	}

	fmt.Fprintf(&sb, "\nScheduled %d shows across %d windows.\n", len(s.Bookings), len(s.Summaries))
	return sb.String()
}

// FormatJSON returns the JSON representation of the schedule.
func FormatJSON(s *models.Schedule) string {
	r := report{
		Summary:  make([]summaryRow, 0, len(s.Summaries)),
		Schedule: make([]scheduleRow, 0, len(s.Bookings)),
	}
	for _, sum := range SummariesByWindow(s.Summaries) {
		r.Summary = append(r.Summary, summaryRow{
			Course:         sum.Course,
			Activity:       sum.Activity,
			Students:       sum.Students,
			BufferPct:      sum.BufferPct,
			SeatsRequired:  sum.SeatsRequired,
			SeatsScheduled: sum.SeatsScheduled,
			Shows:          sum.Shows,
			ShowLength:     sum.ShowLength,
			Open:           sum.Open.Format("2006-01-02"),
			Close:          sum.Close.Format("2006-01-02"),
		})
	}
	for _, b := range Chronological(s.Bookings) {
		r.Schedule = append(r.Schedule, scheduleRow{
			Course:      b.Course,
			Activity:    b.Activity,
			Date:        b.DateKey(),
			Start:       b.StartClock(),
			End:         b.EndClock(),
			Pod:         b.Pod,
			PodCapacity: b.PodCapacity,
			ShowLength:  b.ShowLength,
		})
	}
	jsonBytes, _ := json.MarshalIndent(r, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the schedule.
func FormatCSV(s *models.Schedule) string {
	var sb strings.Builder
	_ = WriteScheduleCSV(&sb, s)
	return sb.String()
}

// WriteScheduleCSV writes the chronological schedule as CSV.
func WriteScheduleCSV(w io.Writer, s *models.Schedule) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{
		"Course", "Mod/Act", "Date", "Start", "End", "Pod", "Pod Capacity", "Show Length",
	}); err != nil {
		return err
	}
	for _, b := range Chronological(s.Bookings) {
		if err := writer.Write([]string{
			b.Course,
			b.Activity,
			b.DateKey(),
			b.StartClock(),
			b.EndClock(),
			b.Pod,
			fmt.Sprintf("%d", b.PodCapacity),
			fmt.Sprintf("%d", b.ShowLength),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummaryCSV writes one row per window as CSV.
func WriteSummaryCSV(w io.Writer, s *models.Schedule) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{
		"Course", "Mod/Act", "Students", "Buffer%", "Seats Required",
		"Scheduled Seats", "Shows Scheduled", "Show Length", "Open", "Close",
	}); err != nil {
		return err
	}
	for _, sum := range SummariesByWindow(s.Summaries) {
		if err := writer.Write([]string{
			sum.Course,
			sum.Activity,
			fmt.Sprintf("%d", sum.Students),
			fmt.Sprintf("%g", sum.BufferPct),
			fmt.Sprintf("%d", sum.SeatsRequired),
			fmt.Sprintf("%d", sum.SeatsScheduled),
			fmt.Sprintf("%d", sum.Shows),
			fmt.Sprintf("%d", sum.ShowLength),
			sum.Open.Format("2006-01-02"),
			sum.Close.Format("2006-01-02"),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
