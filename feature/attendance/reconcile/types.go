package reconcile

import (
	"fmt"

	"attendance-reconciler/feature/attendance/models"
)

// DiscrepancyRow is the reconciliation output for a single (employee,
// date) key. One row is emitted for every key in the union of both
// tables, mismatching or not, so the report is a full audit trail; the
// Mismatch flag exists for downstream filtering.
type DiscrepancyRow struct {
	// EmployeeID is the normalized employee identifier.
	EmployeeID string `json:"employee_id"`

	// EmployeeName is the display name, preferring the manual table's.
	EmployeeName string `json:"employee_name"`

	// Date is the attendance date.
	Date models.Date `json:"date"`

	// Manual is the manual table's value, or the null-sentinel.
	Manual models.Value `json:"manual"`

	// Backend is the backend table's value, or the null-sentinel.
	Backend models.Value `json:"backend"`

	// Mismatch reports that the sources disagree for this key, or that
	// one side is missing the entry.
	Mismatch bool `json:"mismatch"`
}

// Summary provides aggregate counts for one reconciliation run.
type Summary struct {
	// TotalKeys is the size of the union of both tables' key sets.
	TotalKeys int `json:"total_keys"`

	// Mismatches counts rows with Mismatch set, including one-sided keys.
	Mismatches int `json:"mismatches"`

	// ManualOnly counts keys present only in the manual table.
	ManualOnly int `json:"manual_only"`

	// BackendOnly counts keys present only in the backend table.
	BackendOnly int `json:"backend_only"`
}

// WarningKind classifies normalization warnings.
type WarningKind string

const (
	// WarnDuplicateKey marks a (employee, date) key seen more than once in
	// one source. The last row won; the earlier rows were replaced.
	WarnDuplicateKey WarningKind = "duplicate_key"
	// WarnBadDate marks a row skipped because its date was unreadable.
	WarnBadDate WarningKind = "bad_date"
	// WarnSkippedRow marks a row skipped for a blank identifier or
	// entirely blank content.
	WarnSkippedRow WarningKind = "skipped_row"
	// WarnBadHeader marks a wide-layout column ignored because its header
	// date was unreadable.
	WarnBadHeader WarningKind = "bad_header"
)

// Warning is a non-fatal normalization finding. Warnings are surfaced to
// the caller and logged; they never abort ingestion on their own.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Row     int         `json:"row,omitempty"`
	Key     string      `json:"key,omitempty"`
	Message string      `json:"message"`
}

// DateParseError reports a cell that matched none of the accepted date
// layouts. The normalizer wraps it into a WarnBadDate warning and skips
// the row rather than failing the table.
type DateParseError struct {
	Raw string
	Row int
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse date %q", e.Row, e.Raw)
}
