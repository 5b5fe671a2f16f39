package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"attendance-reconciler/feature/attendance/models"
	"attendance-reconciler/feature/attendance/reconcile"
	"attendance-reconciler/feature/attendance/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() ([]reconcile.DiscrepancyRow, reconcile.Summary) {
	rows := []reconcile.DiscrepancyRow{
		{
			EmployeeID:   "e1",
			EmployeeName: "Ann",
			Date:         models.Date{Year: 2024, Month: time.January, Day: 1},
			Manual:       models.Some("P"),
			Backend:      models.Some("Present"),
			Mismatch:     false,
		},
		{
			EmployeeID:   "e2",
			EmployeeName: "Bob",
			Date:         models.Date{Year: 2024, Month: time.January, Day: 1},
			Manual:       models.None(),
			Backend:      models.Some("P"),
			Mismatch:     true,
		},
		{
			EmployeeID:   "e3",
			EmployeeName: "Cid",
			Date:         models.Date{Year: 2024, Month: time.February, Day: 9},
			Manual:       models.Some(""),
			Backend:      models.None(),
			Mismatch:     true,
		},
	}
	return rows, reconcile.Summary{TotalKeys: 3, Mismatches: 2, ManualOnly: 1, BackendOnly: 1}
}

func TestWrite_CSV(t *testing.T) {
	rows, summary := sampleRows()
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, report.Write(path, rows, summary))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, report.Columns, records[0])
	assert.Equal(t, []string{"e1", "Ann", "01-Jan-24", "P", "Present", "No"}, records[1])
	assert.Equal(t, []string{"e2", "Bob", "01-Jan-24", "N/A", "P", "Yes"}, records[2])
	// A present empty value renders empty, not as the sentinel.
	assert.Equal(t, []string{"e3", "Cid", "09-Feb-24", "", "N/A", "Yes"}, records[3])
}

func TestWrite_XLSX(t *testing.T) {
	rows, summary := sampleRows()
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, report.Write(path, rows, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, report.Columns, got[0])
	assert.Equal(t, []string{"e2", "Bob", "01-Jan-24", "N/A", "P", "Yes"}, got[2])

	sum, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, sum, 4)
	assert.Equal(t, []string{"Total Keys", "3"}, sum[0])
	assert.Equal(t, []string{"Mismatches", "2"}, sum[1])
}

func TestWrite_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, report.Write(path, nil, reconcile.Summary{}))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header row only")
	assert.Equal(t, report.Columns, records[0])
}
