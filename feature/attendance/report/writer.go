package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"attendance-reconciler/feature/attendance/reconcile"

	"github.com/xuri/excelize/v2"
)

// Columns is the fixed report schema, in order. "Qandle" is the backend
// export's column per the established report format.
var Columns = []string{"Emp ID", "Emp Name", "Date", "Manual", "Qandle", "Mismatch"}

const (
	// nullSentinel marks a side that has no record for the key. A present
	// but empty value renders as an empty cell instead.
	nullSentinel = "N/A"

	// reportDateLayout is the report's date rendering, e.g. 02-Jan-06.
	reportDateLayout = "02-Jan-06"

	sheetReport  = "Report"
	sheetSummary = "Summary"
)

// Write serializes the discrepancy rows to path, dispatching on the file
// extension: .csv writes a CSV file, anything else an xlsx workbook.
func Write(path string, rows []reconcile.DiscrepancyRow, summary reconcile.Summary) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeCSV(path, rows)
	}
	return writeXLSX(path, rows, summary)
}

func render(row reconcile.DiscrepancyRow) []string {
	mismatch := "No"
	if row.Mismatch {
		mismatch = "Yes"
	}
	return []string{
		row.EmployeeID,
		row.EmployeeName,
		row.Date.Format(reportDateLayout),
		row.Manual.Render(nullSentinel),
		row.Backend.Render(nullSentinel),
		mismatch,
	}
}

func writeXLSX(path string, rows []reconcile.DiscrepancyRow, summary reconcile.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetReport); err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}

	if err := writeSheetRow(f, sheetReport, 1, Columns); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeSheetRow(f, sheetReport, i+2, render(row)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryRows := [][]string{
		{"Total Keys", fmt.Sprint(summary.TotalKeys)},
		{"Mismatches", fmt.Sprint(summary.Mismatches)},
		{"Manual Only", fmt.Sprint(summary.ManualOnly)},
		{"Backend Only", fmt.Sprint(summary.BackendOnly)},
	}
	for i, sr := range summaryRows {
		if err := writeSheetRow(f, sheetSummary, i+1, sr); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	addr, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

func writeCSV(path string, rows []reconcile.DiscrepancyRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(render(row)); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report %s: %w", path, err)
	}
	return nil
}
