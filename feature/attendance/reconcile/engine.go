package reconcile

import (
	"sort"

	"attendance-reconciler/feature/attendance/models"
)

// Reconcile produces the full discrepancy sequence for two normalized
// tables. It is a pure, total function: given valid tables it cannot
// fail, and re-running it on the same inputs yields identical output.
//
// The key set is the union of both tables' keys, ordered by employee id
// ascending then date ascending. Every key yields a row; keys present on
// only one side carry the null-sentinel on the missing side and always
// count as mismatches.
func Reconcile(manual, backend *models.Table, eq Equivalence) ([]DiscrepancyRow, Summary) {
	keys := unionKeys(manual, backend)

	rows := make([]DiscrepancyRow, 0, len(keys))
	var summary Summary
	summary.TotalKeys = len(keys)

	for _, key := range keys {
		manualRec, inManual := manual.Get(key)
		backendRec, inBackend := backend.Get(key)

		row := DiscrepancyRow{
			EmployeeID:   key.EmployeeID,
			Date:         key.Date,
			EmployeeName: resolveName(manual, backend, key.EmployeeID),
		}

		switch {
		case inManual && inBackend:
			row.Manual = models.Some(manualRec.Value)
			row.Backend = models.Some(backendRec.Value)
			row.Mismatch = !eq.Equal(manualRec.Value, backendRec.Value)
		case inManual:
			row.Manual = models.Some(manualRec.Value)
			row.Backend = models.None()
			row.Mismatch = true
			summary.ManualOnly++
		default:
			row.Manual = models.None()
			row.Backend = models.Some(backendRec.Value)
			row.Mismatch = true
			summary.BackendOnly++
		}

		if row.Mismatch {
			summary.Mismatches++
		}
		rows = append(rows, row)
	}

	return rows, summary
}

// unionKeys merges both tables' key sets into one sorted slice.
func unionKeys(manual, backend *models.Table) []models.Key {
	seen := make(map[models.Key]struct{}, manual.Len()+backend.Len())
	for _, key := range manual.Keys() {
		seen[key] = struct{}{}
	}
	for _, key := range backend.Keys() {
		seen[key] = struct{}{}
	}

	keys := make([]models.Key, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// resolveName picks the display name for an employee: the manual table's
// when it has one, otherwise the backend's. Name differences between the
// sources never contribute to mismatch classification.
func resolveName(manual, backend *models.Table, employeeID string) string {
	if name := manual.Name(employeeID); name != "" {
		return name
	}
	return backend.Name(employeeID)
}
