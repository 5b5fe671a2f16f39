// Package schema resolves raw spreadsheet headers to the logical columns
// the reconciliation engine needs.
//
// Source files name their columns loosely ("Emp ID" vs "Employee Code" vs
// "EmpID"), so resolution matches headers against configurable synonym
// sets, case-insensitively and with whitespace normalized. The backend
// export additionally comes in a wide shape with one "Status (02-Jan-06)"
// column per date; the resolver detects that shape and reports the date
// columns so the normalizer can melt them into long records.
//
// Resolution is a pure function returning a tagged Layout. When a field
// cannot be resolved it fails with a ColumnNotFoundError carrying the
// available headers; the boundary resolves that by re-invoking with an
// explicit override, keeping the core non-interactive.
package schema
