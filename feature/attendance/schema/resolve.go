package schema

import (
	"fmt"
	"strings"
	"time"

	"attendance-reconciler/core/utils"
	"attendance-reconciler/feature/attendance/models"
)

// LayoutKind distinguishes the two recognized table shapes.
type LayoutKind string

const (
	// LayoutLong has one row per (employee, date) with the four logical
	// columns resolved by name.
	LayoutLong LayoutKind = "long"
	// LayoutWide has one row per employee and one value column per date,
	// the shape the backend export uses.
	LayoutWide LayoutKind = "wide"
)

// ColumnMap holds the resolved header index for each logical field.
// Indices for date and value are -1 in wide layouts.
type ColumnMap struct {
	EmployeeID   int
	EmployeeName int
	Date         int
	Value        int
}

// DateColumn is one per-date value column of a wide table.
type DateColumn struct {
	Index int
	Date  models.Date
}

// Layout is the resolver's verdict for one table: either a long layout
// with a complete ColumnMap, or a wide layout with id/name columns plus
// the discovered date columns. Immutable after construction.
type Layout struct {
	Kind        LayoutKind
	Columns     ColumnMap
	DateColumns []DateColumn

	// SkippedHeaders lists headers that looked like date columns but did
	// not parse, e.g. "Status (garbage)". Informational only.
	SkippedHeaders []string
}

// Resolve maps a table's header row to a Layout. It is a pure function of
// the headers and config; it never guesses. Resolution prefers the long
// layout; when date and value columns are both absent but at least one
// header parses as a date, the table is treated as wide.
func Resolve(headers []string, cfg Config) (Layout, error) {
	matches := make(map[Field][]int)
	for _, field := range Fields {
		idx, err := matchField(field, headers, cfg)
		if err != nil {
			return Layout{}, err
		}
		if idx >= 0 {
			matches[field] = append(matches[field], idx)
		}
	}

	id, idOK := single(matches, FieldEmployeeID)
	name, nameOK := single(matches, FieldEmployeeName)
	date, dateOK := single(matches, FieldDate)
	value, valueOK := single(matches, FieldValue)

	if !idOK {
		return Layout{}, &ColumnNotFoundError{Field: FieldEmployeeID, Headers: headers}
	}
	if !nameOK {
		return Layout{}, &ColumnNotFoundError{Field: FieldEmployeeName, Headers: headers}
	}

	if dateOK && valueOK {
		return Layout{
			Kind:    LayoutLong,
			Columns: ColumnMap{EmployeeID: id, EmployeeName: name, Date: date, Value: value},
		}, nil
	}

	if !dateOK && !valueOK {
		dateCols, skipped := findDateColumns(headers, []int{id, name}, cfg.dateLayouts())
		if len(dateCols) > 0 {
			return Layout{
				Kind:           LayoutWide,
				Columns:        ColumnMap{EmployeeID: id, EmployeeName: name, Date: -1, Value: -1},
				DateColumns:    dateCols,
				SkippedHeaders: skipped,
			}, nil
		}
		return Layout{}, &ColumnNotFoundError{Field: FieldDate, Headers: headers}
	}

	// Exactly one of date/value resolved: the table is neither shape.
	missing := FieldDate
	if dateOK {
		missing = FieldValue
	}
	return Layout{}, &ColumnNotFoundError{Field: missing, Headers: headers}
}

// matchField finds the header index for one logical field, or -1 when no
// header matches. An explicit override wins over synonym matching; two or
// more synonym matches are a DuplicateFieldMatchError.
func matchField(field Field, headers []string, cfg Config) (int, error) {
	if label, ok := cfg.Overrides[field]; ok && label != "" {
		want := utils.Fold(label)
		for i, h := range headers {
			if utils.Fold(h) == want {
				return i, nil
			}
		}
		return -1, &ColumnNotFoundError{Field: field, Headers: headers}
	}

	wanted := make(map[string]struct{})
	for _, syn := range cfg.synonyms()[field] {
		wanted[utils.Fold(syn)] = struct{}{}
	}

	var found []int
	for i, h := range headers {
		if _, ok := wanted[utils.Fold(h)]; ok {
			found = append(found, i)
		}
	}

	switch len(found) {
	case 0:
		return -1, nil
	case 1:
		return found[0], nil
	default:
		offending := make([]string, 0, len(found))
		for _, i := range found {
			offending = append(offending, headers[i])
		}
		return -1, &DuplicateFieldMatchError{Field: field, Headers: offending}
	}
}

func single(matches map[Field][]int, field Field) (int, bool) {
	idxs := matches[field]
	if len(idxs) != 1 {
		return -1, false
	}
	return idxs[0], true
}

// findDateColumns scans the headers not claimed by id/name for dates.
// A header qualifies when it parses directly under one of the configured
// layouts, or has the backend export's "Status (02-Jan-06)" wrapper.
func findDateColumns(headers []string, claimed []int, layouts []string) ([]DateColumn, []string) {
	taken := make(map[int]struct{}, len(claimed))
	for _, i := range claimed {
		taken[i] = struct{}{}
	}

	var cols []DateColumn
	var skipped []string
	for i, h := range headers {
		if _, ok := taken[i]; ok {
			continue
		}
		if utils.IsBlank(h) {
			continue
		}
		label, wrapped := unwrapStatusHeader(h)
		d, err := ParseDate(label, layouts)
		if err != nil {
			if wrapped {
				// Looked like a per-date column but the date is unreadable.
				skipped = append(skipped, h)
			}
			continue
		}
		cols = append(cols, DateColumn{Index: i, Date: d})
	}
	return cols, skipped
}

// unwrapStatusHeader extracts the parenthesized date from headers of the
// form "Status (02-Jan-06)". The second return reports whether the
// wrapper was present at all.
func unwrapStatusHeader(header string) (string, bool) {
	h := strings.TrimSpace(header)
	open := strings.Index(h, "(")
	closing := strings.LastIndex(h, ")")
	if open < 0 || closing <= open {
		return h, false
	}
	return strings.TrimSpace(h[open+1 : closing]), true
}

// ParseDate parses a raw date string against the configured layouts in
// order. It returns an error when no layout accepts the value; it never
// falls back to guessing month/day order.
func ParseDate(raw string, layouts []string) (models.Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.Date{}, fmt.Errorf("empty date")
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateOf(t), nil
		}
	}
	return models.Date{}, fmt.Errorf("date %q matches none of the accepted layouts", s)
}
