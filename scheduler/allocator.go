package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/karankamboj/scheduling-shows/calendar"
	"github.com/karankamboj/scheduling-shows/config"
	"github.com/karankamboj/scheduling-shows/errors"
	"github.com/karankamboj/scheduling-shows/metrics"
	"github.com/karankamboj/scheduling-shows/models"
)

// Allocator runs the two-pass greedy placement over a sequence of
// demand windows. Windows must be supplied in (close asc, open asc)
// order; that order decides which window gets first claim on contended
// pods and ops-team slots, so reordering changes the schedule.
type Allocator struct {
	cfg     *config.Config
	cal     *calendar.Calendar
	ledger  *Ledger
	checker *Checker
	logger  zerolog.Logger
}

// New builds an Allocator with a fresh ledger. One Allocator serves one
// run; all state lives on the ledger, never in package globals.
func New(cfg *config.Config, logger zerolog.Logger) *Allocator {
	ledger := NewLedger()
	return &Allocator{
		cfg:     cfg,
		cal:     calendar.New(cfg.HolidayDates(), cfg.OpenOffset, cfg.CloseOffsetRegular, cfg.CloseOffsetFriday),
		ledger:  ledger,
		checker: NewChecker(ledger, cfg.BreakLength),
		logger:  logger.With().Str("component", "allocator").Logger(),
	}
}

// Run processes every window in order and returns the full booking set
// plus one summary per window. The first unsatisfiable window aborts
// the run: *errors.ConfigurationError when a window has no business
// days, *errors.CapacityExhaustedError when both passes leave the seat
// requirement unmet.
func (a *Allocator) Run(windows []models.DemandWindow) (*models.Schedule, error) {
	metrics.ResetRunGauges()
	started := time.Now()

	summaries := make([]models.WindowSummary, 0, len(windows))
	for _, w := range windows {
		summary, err := a.allocateWindow(w)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)

		metrics.SeatsRequiredTotal.Add(float64(summary.SeatsRequired))
		metrics.SeatsScheduledTotal.Add(float64(summary.SeatsScheduled))
		metrics.ShowsScheduledTotal.Add(float64(summary.Shows))
	}

	metrics.WindowsProcessed.Set(float64(len(windows)))
	metrics.AllocationDurationSeconds.Observe(time.Since(started).Seconds())

	return &models.Schedule{
		Bookings:  a.ledger.Bookings(),
		Summaries: summaries,
	}, nil
}

func (a *Allocator) allocateWindow(w models.DemandWindow) (models.WindowSummary, error) {
	showLength := a.cfg.ShowLength(w.Course)

	days := a.cal.BusinessDays(w.Open, w.Close)
	if len(days) == 0 {
		return models.WindowSummary{}, &errors.ConfigurationError{
			Course:   w.Course,
			Activity: w.Activity,
			Open:     w.Open,
			Close:    w.Close,
		}
	}

	a.logger.Info().
		Str("course", w.Course).
		Str("activity", w.Activity).
		Int("students", w.Students).
		Int("seats_required", w.SeatsRequired).
		Int("show_length", showLength).
		Int("business_days", len(days)).
		Msg("allocating window")

	seatsScheduled := 0
	showsScheduled := 0

	// Pass 1: distributed fill. Day i (1-indexed) carries weight i, so
	// daily targets ramp toward the close date instead of front-loading
	// the window's first days.
	totalWeight := len(days) * (len(days) + 1) / 2
	for i, day := range days {
		if seatsScheduled >= w.SeatsRequired {
			break
		}
		target := int(math.Ceil(float64((i+1)*w.SeatsRequired) / float64(totalWeight)))
		dailySeats := 0
		showsScheduled += a.fillDay(day, w, showLength, func() bool {
			return dailySeats < target && seatsScheduled < w.SeatsRequired
		}, &dailySeats, &seatsScheduled)
	}

	// Pass 2: catch-up. Relax the daily quota and scavenge any legal
	// slot, latest day first since earlier days saturate first.
	if seatsScheduled < w.SeatsRequired {
		metrics.CatchupPassesTotal.Inc()
		a.logger.Debug().
			Str("course", w.Course).
			Str("activity", w.Activity).
			Int("seats_scheduled", seatsScheduled).
			Msg("pass 1 underfilled, running catch-up pass")

		for i := len(days) - 1; i >= 0; i-- {
			if seatsScheduled >= w.SeatsRequired {
				break
			}
			dailySeats := 0
			showsScheduled += a.fillDay(days[i], w, showLength, func() bool {
				return seatsScheduled < w.SeatsRequired
			}, &dailySeats, &seatsScheduled)
		}
	}

	if seatsScheduled < w.SeatsRequired {
		metrics.ShortfallSeats.Add(float64(w.SeatsRequired - seatsScheduled))
		return models.WindowSummary{}, &errors.CapacityExhaustedError{
			Course:         w.Course,
			Activity:       w.Activity,
			SeatsRequired:  w.SeatsRequired,
			SeatsScheduled: seatsScheduled,
		}
	}

	a.logger.Info().
		Str("course", w.Course).
		Str("activity", w.Activity).
		Int("seats_scheduled", seatsScheduled).
		Int("shows", showsScheduled).
		Msg("window satisfied")

	return models.WindowSummary{
		Course:         w.Course,
		Activity:       w.Activity,
		Students:       w.Students,
		BufferPct:      a.cfg.BufferPct,
		SeatsRequired:  w.SeatsRequired,
		SeatsScheduled: seatsScheduled,
		Shows:          showsScheduled,
		ShowLength:     showLength,
		Open:           w.Open,
		Close:          w.Close,
	}, nil
}

// fillDay walks the day's candidate starts in ascending order and, for
// each start, the pods in slot preference order, placing at most one
// show per start. It advances dailySeats and windowSeats in place and
// stops as soon as more() says the day is done. It returns the number
// of shows placed.
func (a *Allocator) fillDay(day time.Time, w models.DemandWindow, showLength int, more func() bool, dailySeats, windowSeats *int) int {
	dayKey := day.Format("2006-01-02")
	closing := a.cal.ClosingOffset(day)

	shows := 0
	for _, start := range a.cal.CandidateStarts(day, showLength, a.cfg.StepMinutes) {
		if !more() {
			break
		}
		for _, pod := range a.podsBySlotPreference() {
			if !a.checker.CanPlace(dayKey, pod, start, showLength, w.Course, w.Activity, closing) {
				continue
			}

			booking := models.Booking{
				Date:        day,
				Pod:         pod.ID,
				PodCapacity: pod.Capacity,
				Start:       start,
				End:         start + showLength,
				Course:      w.Course,
				Activity:    w.Activity,
				ShowLength:  showLength,
			}
			a.ledger.Place(booking, pod.OpsGroup)
			metrics.ShowsPerPod.WithLabelValues(pod.ID).Inc()

			a.logger.Debug().
				Str("course", w.Course).
				Str("activity", w.Activity).
				Str("date", dayKey).
				Str("pod", pod.ID).
				Str("start", booking.StartClock()).
				Str("end", booking.EndClock()).
				Msg("placed show")

			shows++
			*dailySeats += pod.Capacity
			*windowSeats += pod.Capacity
			break
		}
	}
	return shows
}

// podsBySlotPreference orders pods by capacity descending, then by
// usage count ascending to spread load. The sort is stable so equal
// pods keep their configured order, which keeps runs reproducible.
func (a *Allocator) podsBySlotPreference() []models.Pod {
	pods := make([]models.Pod, len(a.cfg.Pods))
	copy(pods, a.cfg.Pods)
	sort.SliceStable(pods, func(i, j int) bool {
		if pods[i].Capacity != pods[j].Capacity {
			return pods[i].Capacity > pods[j].Capacity
		}
		return a.ledger.Usage(pods[i].ID) < a.ledger.Usage(pods[j].ID)
	})
	return pods
}
