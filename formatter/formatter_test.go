package formatter_test

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karankamboj/scheduling-shows/formatter"
	"github.com/karankamboj/scheduling-shows/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleSchedule() *models.Schedule {
	return &models.Schedule{
		Bookings: []models.Booking{
			{Date: date(2026, 1, 20), Pod: "CRTVC 5", PodCapacity: 28, Start: 600, End: 630, Course: "CHM 113", Activity: "CHM M1 A1", ShowLength: 30},
			{Date: date(2026, 1, 16), Pod: "CRTVC 3", PodCapacity: 24, Start: 540, End: 570, Course: "Bio 181", Activity: "M1 A1", ShowLength: 30},
			{Date: date(2026, 1, 16), Pod: "CRTVC 5", PodCapacity: 28, Start: 545, End: 575, Course: "Bio 181", Activity: "M1 A1", ShowLength: 30},
		},
		Summaries: []models.WindowSummary{
			{Course: "CHM 113", Activity: "CHM M1 A1", Students: 200, BufferPct: 0.10, SeatsRequired: 220, SeatsScheduled: 224, Shows: 8, ShowLength: 30, Open: date(2026, 1, 20), Close: date(2026, 2, 2)},
			{Course: "Bio 181", Activity: "M1 A1", Students: 576, BufferPct: 0.10, SeatsRequired: 634, SeatsScheduled: 648, Shows: 24, ShowLength: 30, Open: date(2026, 1, 16), Close: date(2026, 1, 28)},
		},
	}
}

func TestChronological(t *testing.T) {
	ordered := formatter.Chronological(sampleSchedule().Bookings)
	require.Len(t, ordered, 3)
	assert.Equal(t, "CRTVC 3", ordered[0].Pod)
	assert.Equal(t, 545, ordered[1].Start)
	assert.Equal(t, "2026-01-20", ordered[2].DateKey())
}

func TestByWindow(t *testing.T) {
	ordered := formatter.ByWindow(sampleSchedule().Bookings)
	require.Len(t, ordered, 3)
	assert.Equal(t, "Bio 181", ordered[0].Course)
	assert.Equal(t, "Bio 181", ordered[1].Course)
	assert.Equal(t, "CHM 113", ordered[2].Course)
}

func TestFormatText(t *testing.T) {
	out := formatter.FormatText(sampleSchedule())

	assert.Contains(t, out, "=== SUMMARY ===")
	assert.Contains(t, out, "=== SCHEDULE ===")
	assert.Contains(t, out, "===== Bio 181 | M1 A1 =====")
	assert.Contains(t, out, "===== CHM 113 | CHM M1 A1 =====")
	assert.Contains(t, out, "Scheduled 3 shows across 2 windows.")

	// Summaries are ordered by course, so Bio comes before CHM.
	assert.Less(t, strings.Index(out, "Bio 181 | M1 A1 : students=576"),
		strings.Index(out, "CHM 113 | CHM M1 A1 : students=200"))
}

func TestFormatDurations(t *testing.T) {
	out := formatter.FormatDurations(map[string]int{"Bio": 30, "Scm": 20}, 20)

	assert.Contains(t, out, "Bio -> 30 mins")
	assert.Contains(t, out, "Scm -> 20 mins")
	assert.Contains(t, out, "Default -> 20 mins")
}

func TestFormatJSON(t *testing.T) {
	out := formatter.FormatJSON(sampleSchedule())

	var decoded struct {
		Summary []struct {
			Course        string `json:"course"`
			SeatsRequired int    `json:"seats_required"`
			Open          string `json:"open"`
		} `json:"summary"`
		Schedule []struct {
			Date  string `json:"date"`
			Start string `json:"start"`
			Pod   string `json:"pod"`
		} `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	require.Len(t, decoded.Summary, 2)
	assert.Equal(t, "Bio 181", decoded.Summary[0].Course)
	assert.Equal(t, 634, decoded.Summary[0].SeatsRequired)
	assert.Equal(t, "2026-01-16", decoded.Summary[0].Open)

	require.Len(t, decoded.Schedule, 3)
	assert.Equal(t, "2026-01-16", decoded.Schedule[0].Date)
	assert.Equal(t, "09:00", decoded.Schedule[0].Start)
	assert.Equal(t, "CRTVC 3", decoded.Schedule[0].Pod)
}

func TestFormatCSV(t *testing.T) {
	out := formatter.FormatCSV(sampleSchedule())

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 bookings

	assert.Equal(t, []string{"Course", "Mod/Act", "Date", "Start", "End", "Pod", "Pod Capacity", "Show Length"}, records[0])
	assert.Equal(t, []string{"Bio 181", "M1 A1", "2026-01-16", "09:00", "09:30", "CRTVC 3", "24", "30"}, records[1])
}

func TestWriteSummaryCSV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, formatter.WriteSummaryCSV(&sb, sampleSchedule()))

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 windows

	assert.Equal(t, "Bio 181", records[1][0])
	assert.Equal(t, "634", records[1][4])
	assert.Equal(t, "0.1", records[1][3])
	assert.Equal(t, "2026-01-28", records[1][9])
}
