// Package report serializes reconciliation output to a spreadsheet
// artifact with the fixed six-column schema {Emp ID, Emp Name, Date,
// Manual, Qandle, Mismatch}. Missing-side values render as "N/A" so they
// are never confused with a present empty cell.
package report
