package models

import (
	"fmt"
	"sort"
	"time"
)

// Source identifies which dataset a record came from.
type Source string

const (
	// SourceManual is the independently maintained attendance file.
	SourceManual Source = "manual"
	// SourceBackend is the authoritative backend export.
	SourceBackend Source = "backend"
)

// Date is a calendar date without time-of-day or location.
// It is comparable, so it can be used directly in map keys without the
// monotonic-clock and location pitfalls of time.Time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time converts the date back to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String returns the date in ISO 8601 form (2006-01-02).
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Format renders the date using a time package layout string.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// Value is an optional cell value. A missing record renders as the
// null-sentinel, which is distinct from a present-but-empty cell.
type Value struct {
	Raw     string
	Present bool
}

// Some wraps a present value.
func Some(raw string) Value {
	return Value{Raw: raw, Present: true}
}

// None is the null-sentinel: no record existed on this side.
func None() Value {
	return Value{}
}

// Render returns the raw value, or the given sentinel when absent.
func (v Value) Render(sentinel string) string {
	if !v.Present {
		return sentinel
	}
	return v.Raw
}

// Key identifies one comparable attendance entry within a source.
type Key struct {
	EmployeeID string
	Date       Date
}

// String formats the key for warnings and log fields.
func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.EmployeeID, k.Date)
}

// Less orders keys by employee id ascending, then date ascending.
// This is the canonical report ordering.
func (k Key) Less(other Key) bool {
	if k.EmployeeID != other.EmployeeID {
		return k.EmployeeID < other.EmployeeID
	}
	return k.Date.Before(other.Date)
}

// Record is one normalized attendance entry.
type Record struct {
	EmployeeID   string
	EmployeeName string
	Date         Date
	Value        string
	Source       Source
}

// Key returns the record's identity within its source.
func (r Record) Key() Key {
	return Key{EmployeeID: r.EmployeeID, Date: r.Date}
}

// Table is a normalized attendance table: one record per (employee, date)
// key, plus an employee id to display name mapping. It is built once by the
// normalizer and read-only afterwards.
type Table struct {
	source  Source
	records map[Key]Record
	names   map[string]string
}

// NewTable creates an empty table for the given source.
func NewTable(source Source) *Table {
	return &Table{
		source:  source,
		records: make(map[Key]Record),
		names:   make(map[string]string),
	}
}

// Source returns the table's source tag.
func (t *Table) Source() Source {
	return t.source
}

// Put inserts a record, replacing any existing record with the same key.
// It returns true when an existing record was replaced, so the caller can
// surface a duplicate-key warning.
func (t *Table) Put(rec Record) bool {
	key := rec.Key()
	_, replaced := t.records[key]
	t.records[key] = rec
	if rec.EmployeeName != "" {
		t.names[rec.EmployeeID] = rec.EmployeeName
	}
	return replaced
}

// Get looks up the record for a key.
func (t *Table) Get(key Key) (Record, bool) {
	rec, ok := t.records[key]
	return rec, ok
}

// Name returns the display name recorded for an employee id.
func (t *Table) Name(employeeID string) string {
	return t.names[employeeID]
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Keys returns the table's keys in canonical order.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.records))
	for key := range t.records {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
