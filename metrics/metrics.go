// Package metrics provides Prometheus observability metrics for the show
// scheduler: business-facing seat accounting plus operational timings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// SeatsRequiredTotal tracks the total buffered seat demand across all windows.
var SeatsRequiredTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "seats_required_total",
	Help:      "Total seats required (students plus buffer) across all demand windows",
})

// SeatsScheduledTotal tracks the total pod capacity booked across all windows.
var SeatsScheduledTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "seats_scheduled_total",
	Help:      "Total pod seats booked across all demand windows",
})

// ShowsScheduledTotal tracks the number of show instances placed.
var ShowsScheduledTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "shows_scheduled_total",
	Help:      "Total number of show instances placed into pods",
})

// ShortfallSeats tracks seats that could not be placed when a run aborts.
// Non-zero values are capacity-planning signals, not bugs.
var ShortfallSeats = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "shortfall_seats",
	Help:      "Seats still needed when allocation aborted with exhausted capacity",
})

// WindowsProcessed tracks how many demand windows the run completed.
var WindowsProcessed = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "windows_processed",
	Help:      "Number of demand windows fully allocated in the run",
})

// CatchupPassesTotal counts windows where pass 1 underfilled and the
// descending catch-up pass had to run.
var CatchupPassesTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "catchup_passes_total",
	Help:      "Count of windows that needed the catch-up placement pass",
})

// ShowsPerPod tracks placed shows by pod, for load-spread visibility.
var ShowsPerPod = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "scheduler",
	Name:      "shows_per_pod",
	Help:      "Shows placed per pod in the current run",
}, []string{"pod"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total demand records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse the demand input",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// AllocationDurationSeconds tracks time to allocate all windows.
var AllocationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "duration_seconds",
	Help:      "Time taken to allocate all demand windows",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetRunGauges resets all per-run gauges before a new allocation run.
// Call this at the start of Allocator.Run.
func ResetRunGauges() {
	SeatsRequiredTotal.Set(0)
	SeatsScheduledTotal.Set(0)
	ShowsScheduledTotal.Set(0)
	ShortfallSeats.Set(0)
	WindowsProcessed.Set(0)
	ShowsPerPod.Reset()
}
