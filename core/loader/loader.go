package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"attendance-reconciler/core/utils"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// RawTable is one loaded worksheet, split into a header row and data
// rows. Rows are padded or truncated to the header width; anything the
// loader had to adjust is reported as a warning, never fixed silently.
type RawTable struct {
	// Path is the source file the table was read from.
	Path string
	// Sheet is the worksheet actually read (empty for CSV).
	Sheet string
	// Headers is the trimmed header row.
	Headers []string
	// Rows are the data rows, aligned to Headers.
	Rows [][]string
	// Warnings lists non-fatal issues encountered while loading.
	Warnings []Warning
}

// Warning is a non-fatal loading issue tied to a row (0 = file level).
type Warning struct {
	Row     int
	Message string
}

// UnsupportedFormatError reports a file extension the loader cannot read.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s (supported: .xlsx, .xlsm, .xls, .csv)", e.Extension, e.Path)
}

// Options controls how a file is loaded.
type Options struct {
	// Sheet is the preferred worksheet name. When absent from the
	// workbook the loader falls back to the first sheet and records a
	// warning. Ignored for CSV.
	Sheet string
}

// Load reads a tabular file into a RawTable, dispatching on extension.
func Load(path string, opts Options) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return loadXLSX(path, data, opts)
	case ".xls":
		return loadXLS(path, data, opts)
	case ".csv":
		return loadCSV(path, data)
	default:
		return nil, &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

// SheetNames lists the worksheets of a workbook file. CSV files report a
// single empty name.
func SheetNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		return f.GetSheetList(), nil
	case ".xls":
		wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
		names := make([]string, 0, wb.NumSheets())
		for i := 0; i < wb.NumSheets(); i++ {
			if sheet := wb.GetSheet(i); sheet != nil {
				names = append(names, sheet.Name)
			}
		}
		return names, nil
	case ".csv":
		return []string{""}, nil
	default:
		return nil, &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

func loadXLSX(path string, data []byte, opts Options) (*RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no worksheets", path)
	}

	sheet, fellBack := pickSheet(sheets, opts.Sheet)

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}

	table, err := buildTable(path, sheet, rows)
	if err != nil {
		return nil, err
	}
	if fellBack {
		table.Warnings = append([]Warning{fallbackWarning(opts.Sheet, sheet)}, table.Warnings...)
	}
	return table, nil
}

func loadXLS(path string, data []byte, opts Options) (*RawTable, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook %s has no worksheets", path)
	}

	index := 0
	fellBack := opts.Sheet != ""
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet != nil && strings.EqualFold(strings.TrimSpace(sheet.Name), strings.TrimSpace(opts.Sheet)) {
			index = i
			fellBack = false
			break
		}
	}

	sheet := wb.GetSheet(index)
	if sheet == nil {
		return nil, fmt.Errorf("workbook %s has no readable worksheet", path)
	}

	var rows [][]string
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}

	table, err := buildTable(path, sheet.Name, rows)
	if err != nil {
		return nil, err
	}
	if fellBack {
		table.Warnings = append([]Warning{fallbackWarning(opts.Sheet, sheet.Name)}, table.Warnings...)
	}
	return table, nil
}

// pickSheet finds the preferred sheet case-insensitively, falling back to
// the first sheet. The second return reports whether the fallback fired.
func pickSheet(sheets []string, preferred string) (string, bool) {
	if preferred == "" {
		return sheets[0], false
	}
	for _, s := range sheets {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(preferred)) {
			return s, false
		}
	}
	return sheets[0], true
}

func fallbackWarning(wanted, used string) Warning {
	return Warning{Row: 0, Message: fmt.Sprintf("sheet %q not found; using first sheet %q", wanted, used)}
}

// buildTable splits raw rows into header + data, aligning every data row
// to the header width. The first row with any content is the header.
func buildTable(path, sheet string, rows [][]string) (*RawTable, error) {
	headerIdx := -1
	for i, row := range rows {
		if !utils.AllBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: worksheet %q has no header row", path, sheet)
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &RawTable{Path: path, Sheet: sheet, Headers: headers}
	width := len(headers)

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-indexed, counting the header
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		case len(row) > width:
			if !utils.AllBlank(row[width:]) {
				table.Warnings = append(table.Warnings, Warning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; extra columns dropped", len(row), width),
				})
			}
			row = row[:width]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
