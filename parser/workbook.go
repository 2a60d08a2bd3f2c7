package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/karankamboj/scheduling-shows/models"
)

// modActRE matches activity labels like "M1 A1" or "m12 a3".
var (
	modActRE      = regexp.MustCompile(`(?i)^M\d+\s*A\d+`)
	modActLabelRE = regexp.MustCompile(`(?i)mod/act`)
)

// WorkbookData is everything extracted from a planning workbook.
type WorkbookData struct {
	Rows     []models.DemandRow
	Students map[string]int
	Holidays []string // YYYY-MM-DD, parse with ParseDate
}

// ParseWorkbook extracts demand rows, course student caps, and holidays
// from the planning workbook. Only sheets whose name contains
// "Highlevel and Academi" are scanned.
//
// Layout conventions, carried over from the planning spreadsheet:
//   - A subject header row has "Mod/Act" in its first cell, with the
//     subject name around it (e.g. "Bio 181 Mod/Act").
//   - Data rows under a subject start with the activity label ("M1 A1")
//     and carry open/close dates in the third and fourth columns; rows
//     with neither date are skipped.
//   - A course-cap table is located by a header row containing "Course"
//     and a column whose header mentions "cap".
//   - Holidays are listed downward from a cell titled "HOLIDAYS".
func ParseWorkbook(path string) (*WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	data := &WorkbookData{Students: make(map[string]int)}

	for _, sheet := range f.GetSheetList() {
		if !strings.Contains(sheet, "Highlevel and Academi") {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		if err := extractDemand(rows, data); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		extractCourseCaps(rows, data.Students)
		extractHolidays(rows, data)
	}

	return data, nil
}

func extractDemand(rows [][]string, data *WorkbookData) error {
	currentSubject := ""

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		first := strings.TrimSpace(row[0])

		// Subject header row, e.g. "Bio 181 Mod/Act".
		if strings.Contains(strings.ToLower(first), "mod/act") {
			cleaned := strings.ReplaceAll(first, "\n", " ")
			cleaned = modActLabelRE.ReplaceAllString(cleaned, "")
			currentSubject = strings.Join(strings.Fields(cleaned), " ")
			continue
		}

		if currentSubject == "" || !modActRE.MatchString(first) {
			continue
		}

		openCell := cell(row, 2)
		closeCell := cell(row, 3)
		if openCell == "" && closeCell == "" {
			continue
		}

		openDate, err := ParseDate(openCell)
		if err != nil {
			return fmt.Errorf("subject %q activity %q: open date %q: %w", currentSubject, first, openCell, err)
		}
		closeDate, err := ParseDate(closeCell)
		if err != nil {
			return fmt.Errorf("subject %q activity %q: close date %q: %w", currentSubject, first, closeCell, err)
		}

		data.Rows = append(data.Rows, models.DemandRow{
			Course:    currentSubject,
			Activity:  first,
			OpenDate:  openDate,
			CloseDate: closeDate,
		})
	}
	return nil
}

func extractCourseCaps(rows [][]string, students map[string]int) {
	headerIdx := -1
	courseCol := -1
	capCol := -1

	for i, row := range rows {
		for j, v := range row {
			v = strings.TrimSpace(v)
			if v == "Course" {
				courseCol = j
			}
			if strings.Contains(strings.ToLower(v), "cap") && capCol == -1 {
				capCol = j
			}
		}
		if courseCol >= 0 && capCol >= 0 {
			headerIdx = i
			break
		}
		courseCol, capCol = -1, -1
	}
	if headerIdx < 0 {
		return
	}

	started := false
	for _, row := range rows[headerIdx+1:] {
		course := cell(row, courseCol)
		if course == "" {
			// Blank course cell ends the table, but only once it has
			// started; spacer rows under the header are skipped.
			if started {
				break
			}
			continue
		}
		started = true
		capValue := cell(row, capCol)
		n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(capValue, ",", "")))
		if err != nil {
			continue
		}
		students[course] = n
	}
}

func extractHolidays(rows [][]string, data *WorkbookData) {
	for i, row := range rows {
		for j, v := range row {
			if !strings.EqualFold(strings.TrimSpace(v), "holidays") {
				continue
			}
			// Read dates below the label until blank, skipping any
			// spacer rows between the label and the first date.
			started := false
			for _, below := range rows[i+1:] {
				value := cell(below, j)
				if value == "" {
					if started {
						return
					}
					continue
				}
				started = true
				if d, err := ParseDate(value); err == nil {
					data.Holidays = append(data.Holidays, d.Format("2006-01-02"))
				}
			}
			return
		}
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
