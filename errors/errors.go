package errors

import (
	"fmt"
	"time"
)

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrInvalidOpenDate   = fmt.Errorf("invalid open date")
	ErrInvalidCloseDate  = fmt.Errorf("invalid close date")
	ErrInvalidStudents   = fmt.Errorf("invalid student count")
	ErrInvalidHoliday    = fmt.Errorf("invalid holiday date")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)

// ConfigurationError reports a demand window whose open/close range
// contains no business days after weekend and holiday exclusion. It
// signals bad input data, not a scheduling failure.
type ConfigurationError struct {
	Course   string
	Activity string
	Open     time.Time
	Close    time.Time
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no business days in window for (%s, %s) between %s and %s",
		e.Course, e.Activity, e.Open.Format("2006-01-02"), e.Close.Format("2006-01-02"))
}

// CapacityExhaustedError reports a window whose seat requirement could
// not be met after both placement passes. This is a capacity-planning
// fact about the pod inventory, not a bug.
type CapacityExhaustedError struct {
	Course         string
	Activity       string
	SeatsRequired  int
	SeatsScheduled int
}

func (e *CapacityExhaustedError) Error() string {
	return fmt.Sprintf("not enough capacity to schedule (%s, %s) under current constraints: scheduled %d of %d seats (short %d)",
		e.Course, e.Activity, e.SeatsScheduled, e.SeatsRequired, e.Shortfall())
}

// Shortfall returns the number of seats still needed.
func (e *CapacityExhaustedError) Shortfall() int {
	return e.SeatsRequired - e.SeatsScheduled
}
