package attendance_test

import (
	"os"
	"path/filepath"
	"testing"

	"attendance-reconciler/feature/attendance"
	"attendance-reconciler/feature/attendance/models"
	"attendance-reconciler/feature/attendance/reconcile"
	"attendance-reconciler/feature/attendance/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestService_Run(t *testing.T) {
	dir := t.TempDir()
	manual := writeFile(t, dir, "attn.csv",
		"Emp ID,Emp Name,Date,Status\n"+
			"E1,Ann,2024-01-01,P\n"+
			"E2,Bob,2024-01-01,A\n")
	// The backend export uses the wide shape with one column per date.
	backend := writeFile(t, dir, "qandle.csv",
		"Employee Code,Employee Name,Status (01-Jan-24)\n"+
			"E1,Ann,Present\n"+
			"E3,Cid,P\n")
	mapping := writeFile(t, dir, "mapping.yaml",
		"equivalence:\n  - [\"P\", \"Present\"]\n  - [\"A\", \"Absent\"]\n")
	out := filepath.Join(dir, "report.csv")

	svc := attendance.NewService(zap.NewNop())
	result, err := svc.Run(attendance.RunOptions{
		BackendPath: backend,
		ManualPath:  manual,
		OutputPath:  out,
		MappingPath: mapping,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, reconcile.Summary{TotalKeys: 3, Mismatches: 2, ManualOnly: 1, BackendOnly: 1}, result.Summary)

	require.Len(t, result.Rows, 3)
	// e1: P vs Present, equivalent under the mapping.
	assert.Equal(t, "e1", result.Rows[0].EmployeeID)
	assert.False(t, result.Rows[0].Mismatch)
	// e2: manual only.
	assert.Equal(t, "e2", result.Rows[1].EmployeeID)
	assert.True(t, result.Rows[1].Mismatch)
	assert.False(t, result.Rows[1].Backend.Present)
	// e3: backend only.
	assert.Equal(t, "e3", result.Rows[2].EmployeeID)
	assert.True(t, result.Rows[2].Mismatch)
	assert.False(t, result.Rows[2].Manual.Present)

	// Report artifact is written.
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestService_Run_NoOutput(t *testing.T) {
	dir := t.TempDir()
	manual := writeFile(t, dir, "attn.csv",
		"Emp ID,Emp Name,Date,Status\nE1,Ann,2024-01-01,P\n")
	backend := writeFile(t, dir, "qandle.csv",
		"Emp ID,Emp Name,Date,Status\nE1,Ann,2024-01-01,P\n")

	svc := attendance.NewService(zap.NewNop())
	result, err := svc.Run(attendance.RunOptions{
		BackendPath: backend,
		ManualPath:  manual,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.TotalKeys)
	assert.Equal(t, 0, result.Summary.Mismatches)
}

func TestService_Run_ColumnNotFound(t *testing.T) {
	dir := t.TempDir()
	manual := writeFile(t, dir, "attn.csv",
		"Emp ID,Emp Name,Date,Status\nE1,Ann,2024-01-01,P\n")
	backend := writeFile(t, dir, "qandle.csv",
		"X1,X2,X3,X4\na,b,c,d\n")

	svc := attendance.NewService(zap.NewNop())
	_, err := svc.Run(attendance.RunOptions{
		BackendPath: backend,
		ManualPath:  manual,
	})

	var notFound *schema.ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, schema.FieldEmployeeID, notFound.Field)
}

func TestService_Run_ColumnOverrides(t *testing.T) {
	dir := t.TempDir()
	manual := writeFile(t, dir, "attn.csv",
		"Emp ID,Emp Name,Date,Status\nE1,Ann,2024-01-01,P\n")
	backend := writeFile(t, dir, "qandle.csv",
		"Personnel No,Emp Name,Date,Status\nE1,Ann,2024-01-01,P\n")

	svc := attendance.NewService(zap.NewNop())
	result, err := svc.Run(attendance.RunOptions{
		BackendPath:    backend,
		ManualPath:     manual,
		BackendColumns: map[string]string{"employee_id": "Personnel No"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.TotalKeys)
	assert.Equal(t, 0, result.Summary.Mismatches)
}

func TestService_Run_SkipRatioExceeded(t *testing.T) {
	dir := t.TempDir()
	manual := writeFile(t, dir, "attn.csv",
		"Emp ID,Emp Name,Date,Status\n"+
			"E1,Ann,2024-01-01,P\n"+
			"E2,Bob,garbage,P\n"+
			"E3,Cid,also bad,P\n")
	backend := writeFile(t, dir, "qandle.csv",
		"Emp ID,Emp Name,Date,Status\nE1,Ann,2024-01-01,P\n")

	svc := attendance.NewService(zap.NewNop())
	_, err := svc.Run(attendance.RunOptions{
		BackendPath:  backend,
		ManualPath:   manual,
		MaxSkipRatio: 0.5,
	})

	var skipErr *attendance.SkipRatioExceededError
	require.ErrorAs(t, err, &skipErr)
	assert.Equal(t, models.SourceManual, skipErr.Source)
	assert.Equal(t, 2, skipErr.Skipped)
	assert.Equal(t, 3, skipErr.Total)
}

func TestService_Run_DuplicateWarningsSurfaced(t *testing.T) {
	dir := t.TempDir()
	manual := writeFile(t, dir, "attn.csv",
		"Emp ID,Emp Name,Date,Status\n"+
			"E1,Ann,2024-01-01,P\n"+
			"E1,Ann,2024-01-01,A\n")
	backend := writeFile(t, dir, "qandle.csv",
		"Emp ID,Emp Name,Date,Status\nE1,Ann,2024-01-01,A\n")

	svc := attendance.NewService(zap.NewNop())
	result, err := svc.Run(attendance.RunOptions{
		BackendPath: backend,
		ManualPath:  manual,
	})
	require.NoError(t, err)

	warnings := result.Warnings[models.SourceManual]
	require.Len(t, warnings, 1)
	assert.Equal(t, reconcile.WarnDuplicateKey, warnings[0].Kind)

	// Last write wins, so the surviving manual value matches backend.
	assert.Equal(t, 0, result.Summary.Mismatches)
}
