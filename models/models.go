package models

import (
	"fmt"
	"time"
)

// Pod represents a presentation station with fixed seating capacity.
// Pods in the same ops group share a staffing team, which restricts
// when their shows may start and end relative to each other.
type Pod struct {
	ID       string `yaml:"pod"`
	Capacity int    `yaml:"capacity"`
	OpsGroup string `yaml:"ops_group"`
}

// DemandRow is one raw scheduling request as it appears in the input:
// a course/activity pair with the dates its shows may run.
// Duplicate (course, activity) rows are merged by BuildWindows.
type DemandRow struct {
	Course    string
	Activity  string
	OpenDate  time.Time
	CloseDate time.Time
}

// DemandWindow is the reduced demand unit the allocator works from:
// one per distinct (course, activity) pair, with the widest date range
// seen across its rows and the seat requirement already derived.
type DemandWindow struct {
	Course        string
	Activity      string
	Open          time.Time
	Close         time.Time
	Students      int
	SeatsRequired int
}

// Booking is a single placed show. Bookings are created exactly once by
// the allocator and never mutated or removed afterward.
type Booking struct {
	Date        time.Time `json:"date"`
	Pod         string    `json:"pod"`
	PodCapacity int       `json:"pod_capacity"`
	Start       int       `json:"start_min"` // minutes from midnight
	End         int       `json:"end_min"`
	Course      string    `json:"course"`
	Activity    string    `json:"activity"`
	ShowLength  int       `json:"show_length"`
}

// DateKey returns the booking date as YYYY-MM-DD.
func (b Booking) DateKey() string {
	return b.Date.Format("2006-01-02")
}

// StartClock returns the start offset as HH:MM.
func (b Booking) StartClock() string {
	return ClockTime(b.Start)
}

// EndClock returns the end offset as HH:MM.
func (b Booking) EndClock() string {
	return ClockTime(b.End)
}

// WindowSummary is the per-window accounting row emitted alongside the
// schedule: how many seats were required, how many got scheduled, and in
// how many shows.
type WindowSummary struct {
	Course         string    `json:"course"`
	Activity       string    `json:"activity"`
	Students       int       `json:"students"`
	BufferPct      float64   `json:"buffer_pct"`
	SeatsRequired  int       `json:"seats_required"`
	SeatsScheduled int       `json:"seats_scheduled"`
	Shows          int       `json:"shows_scheduled"`
	ShowLength     int       `json:"show_length"`
	Open           time.Time `json:"open"`
	Close          time.Time `json:"close"`
}

// Schedule is the full output of one allocation run.
type Schedule struct {
	Bookings  []Booking       `json:"bookings"`
	Summaries []WindowSummary `json:"summaries"`
}

// ClockTime renders minutes-from-midnight as HH:MM.
func ClockTime(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
