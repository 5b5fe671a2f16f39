package reconcile

import (
	"fmt"
	"strings"

	"attendance-reconciler/core/loader"
	"attendance-reconciler/core/utils"
	"attendance-reconciler/feature/attendance/models"
	"attendance-reconciler/feature/attendance/schema"
)

// NormalizeResult is the outcome of normalizing one raw table.
type NormalizeResult struct {
	// Table holds the normalized records, read-only from here on.
	Table *models.Table

	// Warnings lists duplicate keys, skipped rows and unreadable dates.
	Warnings []Warning

	// TotalRows is the number of data rows inspected.
	TotalRows int

	// SkippedRows counts rows (or row-cells in wide layouts) that were
	// dropped. The caller owns the policy for how many skips are too many.
	SkippedRows int
}

// SkipRatio returns the fraction of rows that were skipped.
func (r NormalizeResult) SkipRatio() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return float64(r.SkippedRows) / float64(r.TotalRows)
}

// Normalize turns a raw table plus its resolved layout into a normalized
// attendance table keyed by (employee_id, date).
//
// Employee ids are trimmed and case-folded so the two sources join on the
// same key form. Duplicate keys within the table follow last-write-wins
// by row order, with a warning per replacement. Blank rows, rows with a
// blank identifier and rows with unreadable dates are skipped and
// counted, never silently dropped.
func Normalize(raw *loader.RawTable, layout schema.Layout, source models.Source, dateLayouts []string) NormalizeResult {
	result := NormalizeResult{Table: models.NewTable(source)}

	for _, header := range layout.SkippedHeaders {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnBadHeader,
			Message: fmt.Sprintf("column %q looks like a date column but its date is unreadable; column ignored", header),
		})
	}

	switch layout.Kind {
	case schema.LayoutWide:
		normalizeWide(raw, layout, &result)
	default:
		normalizeLong(raw, layout, dateLayouts, &result)
	}

	return result
}

func normalizeLong(raw *loader.RawTable, layout schema.Layout, dateLayouts []string, result *NormalizeResult) {
	cols := layout.Columns
	for i, row := range raw.Rows {
		rowNum := i + 2 // 1-indexed, counting the header row
		result.TotalRows++

		if utils.AllBlank(row) {
			result.SkippedRows++
			continue
		}

		id := foldID(cell(row, cols.EmployeeID))
		if id == "" {
			result.SkippedRows++
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnSkippedRow,
				Row:     rowNum,
				Message: fmt.Sprintf("row %d: blank employee id", rowNum),
			})
			continue
		}

		rawDate := cell(row, cols.Date)
		date, err := schema.ParseDate(rawDate, dateLayouts)
		if err != nil {
			result.SkippedRows++
			perr := &DateParseError{Raw: rawDate, Row: rowNum}
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnBadDate,
				Row:     rowNum,
				Message: perr.Error(),
			})
			continue
		}

		putRecord(result, models.Record{
			EmployeeID:   id,
			EmployeeName: utils.CollapseSpace(cell(row, cols.EmployeeName)),
			Date:         date,
			Value:        strings.TrimSpace(cell(row, cols.Value)),
			Source:       result.Table.Source(),
		}, rowNum)
	}
}

// normalizeWide melts one row per employee with per-date columns into one
// record per (employee, date). Each date cell counts as a row for the
// skip-ratio bookkeeping, since that is the unit being ingested.
func normalizeWide(raw *loader.RawTable, layout schema.Layout, result *NormalizeResult) {
	cols := layout.Columns
	for i, row := range raw.Rows {
		rowNum := i + 2

		if utils.AllBlank(row) {
			result.TotalRows++
			result.SkippedRows++
			continue
		}

		id := foldID(cell(row, cols.EmployeeID))
		if id == "" {
			result.TotalRows += len(layout.DateColumns)
			result.SkippedRows += len(layout.DateColumns)
			result.Warnings = append(result.Warnings, Warning{
				Kind:    WarnSkippedRow,
				Row:     rowNum,
				Message: fmt.Sprintf("row %d: blank employee id", rowNum),
			})
			continue
		}

		name := utils.CollapseSpace(cell(row, cols.EmployeeName))
		for _, dc := range layout.DateColumns {
			result.TotalRows++
			putRecord(result, models.Record{
				EmployeeID:   id,
				EmployeeName: name,
				Date:         dc.Date,
				Value:        strings.TrimSpace(cell(row, dc.Index)),
				Source:       result.Table.Source(),
			}, rowNum)
		}
	}
}

func putRecord(result *NormalizeResult, rec models.Record, rowNum int) {
	if replaced := result.Table.Put(rec); replaced {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    WarnDuplicateKey,
			Row:     rowNum,
			Key:     rec.Key().String(),
			Message: fmt.Sprintf("row %d: duplicate key %s, keeping the later row", rowNum, rec.Key()),
		})
	}
}

// foldID normalizes an employee identifier for use as a join key.
func foldID(s string) string {
	return utils.Fold(s)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
