// Package parser reads scheduling input: demand rows, per-course student
// counts, and holiday dates, from CSV files or an xlsx workbook.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/karankamboj/scheduling-shows/errors"
	"github.com/karankamboj/scheduling-shows/metrics"
	"github.com/karankamboj/scheduling-shows/models"
)

// dateLayouts are tried in order when parsing a date cell. The long
// form matches the planning spreadsheet ("Friday, January 16, 2026").
var dateLayouts = []string{
	"Monday, January 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
}

// ParseDemand reads demand rows from CSV. Each record is
// (course, activity, open date, close date); lines starting with '#'
// are headers/comments and are skipped.
func ParseDemand(r io.Reader) ([]models.DemandRow, error) {
	started := time.Now()
	defer func() {
		metrics.ParserDurationSeconds.Observe(time.Since(started).Seconds())
	}()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows []models.DemandRow
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if isCommentOrBlank(record) {
			continue
		}

		if len(record) != 4 {
			metrics.ParserErrorsTotal.WithLabelValues("field_count").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		row := models.DemandRow{
			Course:   strings.TrimSpace(record[0]),
			Activity: strings.TrimSpace(record[1]),
		}

		row.OpenDate, err = ParseDate(record[2])
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("open_date").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", errors.ErrInvalidOpenDate, err),
			}
		}

		row.CloseDate, err = ParseDate(record[3])
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("close_date").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", errors.ErrInvalidCloseDate, err),
			}
		}

		metrics.ParserRecordsTotal.Inc()
		rows = append(rows, row)
	}

	return rows, nil
}

// ParseStudents reads (course, student count) records from CSV, with
// '#' comment lines skipped.
func ParseStudents(r io.Reader) (map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	students := make(map[string]int)
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if isCommentOrBlank(record) {
			continue
		}

		if len(record) != 2 {
			metrics.ParserErrorsTotal.WithLabelValues("field_count").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		count, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || count < 0 {
			metrics.ParserErrorsTotal.WithLabelValues("students").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %q", errors.ErrInvalidStudents, record[1]),
			}
		}

		students[strings.TrimSpace(record[0])] = count
	}

	return students, nil
}

// ParseHolidays reads one holiday date per record, with '#' comment
// lines skipped.
func ParseHolidays(r io.Reader) ([]time.Time, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var holidays []time.Time
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if isCommentOrBlank(record) {
			continue
		}

		d, err := ParseDate(record[0])
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues("holiday").Inc()
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", errors.ErrInvalidHoliday, err),
			}
		}
		holidays = append(holidays, d)
	}

	return holidays, nil
}

// ParseDate parses a date cell against the supported layouts, returning
// the date at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isCommentOrBlank(record []string) bool {
	if len(record) == 0 {
		return true
	}
	first := strings.TrimSpace(record[0])
	if strings.HasPrefix(first, "#") {
		return true
	}
	if len(record) == 1 && first == "" {
		return true
	}
	return false
}
