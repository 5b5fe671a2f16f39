package cmd

import (
	"fmt"

	"attendance-reconciler/core/config"
	"attendance-reconciler/core/logger"
	"attendance-reconciler/feature/attendance"

	"github.com/spf13/cobra"
)

var (
	// Flags for the reconcile command
	backendFile    string
	manualFile     string
	outputFile     string
	mappingFile    string
	backendSheet   string
	manualSheet    string
	backendColumns map[string]string
	manualColumns  map[string]string
	maxSkipRatio   float64
)

// reconcileCmd runs the full reconciliation pipeline once.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a backend attendance export against a manual attendance file",
	Long: `Reconcile loads both attendance files, joins them on (employee, date) and
writes a discrepancy report with one row per key in either source.

Column headers are matched against built-in synonym sets. When a required
column cannot be resolved, pass an explicit mapping:

Examples:
  # Basic run, report written to attendance_discrepancy_report.xlsx
  attendance-reconciler reconcile --backend backend/Qandle.xlsx --manual attn.xlsx

  # Explicit column mapping for an unusual backend header
  attendance-reconciler reconcile --backend qandle.csv --manual attn.csv \
    --backend-col employee_id="Personnel No"

  # Synonyms and equivalence sets from a mapping file, CSV output
  attendance-reconciler reconcile --backend qandle.xlsx --manual attn.xls \
    --mapping mapping.yaml --out report.csv`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&backendFile, "backend", "", "Path to the backend attendance export (required)")
	reconcileCmd.Flags().StringVar(&manualFile, "manual", "", "Path to the manual attendance file (required)")
	reconcileCmd.Flags().StringVar(&outputFile, "out", "", "Report output path (.xlsx or .csv; default from config)")
	reconcileCmd.Flags().StringVar(&mappingFile, "mapping", "", "Mapping file with synonyms, overrides and equivalence sets")
	reconcileCmd.Flags().StringVar(&backendSheet, "backend-sheet", "", "Worksheet name of the backend export (default from config)")
	reconcileCmd.Flags().StringVar(&manualSheet, "manual-sheet", "", "Worksheet name of the manual file (default from config)")
	reconcileCmd.Flags().StringToStringVar(&backendColumns, "backend-col", nil, "Explicit field=header mapping for the backend table (repeatable)")
	reconcileCmd.Flags().StringToStringVar(&manualColumns, "manual-col", nil, "Explicit field=header mapping for the manual table (repeatable)")
	reconcileCmd.Flags().Float64Var(&maxSkipRatio, "max-skip-ratio", 0, "Tolerated fraction of skipped rows per table (default from config)")

	_ = reconcileCmd.MarkFlagRequired("backend")
	_ = reconcileCmd.MarkFlagRequired("manual")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	opts := attendance.RunOptions{
		BackendPath:    backendFile,
		ManualPath:     manualFile,
		OutputPath:     firstNonEmpty(outputFile, cfg.Reconcile.Output),
		MappingPath:    firstNonEmpty(mappingFile, cfg.Reconcile.MappingFile),
		BackendSheet:   firstNonEmpty(backendSheet, cfg.Loader.BackendSheet),
		ManualSheet:    firstNonEmpty(manualSheet, cfg.Loader.ManualSheet),
		BackendColumns: backendColumns,
		ManualColumns:  manualColumns,
		MaxSkipRatio:   maxSkipRatio,
	}
	if opts.MaxSkipRatio <= 0 {
		opts.MaxSkipRatio = cfg.Reconcile.MaxSkipRatio
	}

	svc := attendance.NewService(l)
	if _, err := svc.Run(opts); err != nil {
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
