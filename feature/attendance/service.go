package attendance

import (
	"fmt"

	"attendance-reconciler/core/loader"
	"attendance-reconciler/feature/attendance/models"
	"attendance-reconciler/feature/attendance/reconcile"
	"attendance-reconciler/feature/attendance/report"
	"attendance-reconciler/feature/attendance/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxSkipRatio is the default ceiling on the fraction of rows a
// table may lose to skips before its ingestion counts as failed.
const DefaultMaxSkipRatio = 0.5

// SkipRatioExceededError reports a table whose skipped-row fraction went
// past the configured ceiling, which usually means the file's columns
// were misresolved or its dates use an unexpected layout.
type SkipRatioExceededError struct {
	Source  models.Source
	Skipped int
	Total   int
	Max     float64
}

func (e *SkipRatioExceededError) Error() string {
	return fmt.Sprintf("%s table: %d of %d rows skipped, exceeding the %.0f%% limit",
		e.Source, e.Skipped, e.Total, e.Max*100)
}

// RunOptions parameterizes one reconciliation run.
type RunOptions struct {
	// BackendPath and ManualPath are the two source files.
	BackendPath string
	ManualPath  string

	// OutputPath is the report artifact to write. Empty skips writing,
	// which keeps the run side-effect free for callers that only want
	// the result.
	OutputPath string

	// BackendSheet and ManualSheet are the preferred worksheet names.
	BackendSheet string
	ManualSheet  string

	// MappingPath optionally points at a mapping file with synonym sets,
	// column overrides and value equivalence sets.
	MappingPath string

	// BackendColumns and ManualColumns are explicit field→header
	// overrides from the command line, winning over the mapping file.
	BackendColumns map[string]string
	ManualColumns  map[string]string

	// MaxSkipRatio caps the tolerated skipped-row fraction per table.
	// Zero means DefaultMaxSkipRatio.
	MaxSkipRatio float64
}

// Result is the outcome of one reconciliation run.
type Result struct {
	// RunID correlates all log lines of this run.
	RunID string

	// Rows is the ordered discrepancy sequence.
	Rows []reconcile.DiscrepancyRow

	// Summary holds the aggregate counts.
	Summary reconcile.Summary

	// Warnings lists normalization warnings per source.
	Warnings map[models.Source][]reconcile.Warning
}

// Service runs the full reconciliation pipeline: load both sources,
// resolve their layouts, normalize, reconcile and emit the report. Each
// run builds fresh state; nothing is carried between runs.
type Service struct {
	logger *zap.Logger
}

// NewService creates a reconciliation service.
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Run executes one reconciliation.
func (s *Service) Run(opts RunOptions) (*Result, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))

	mapping, err := schema.LoadMapping(opts.MappingPath)
	if err != nil {
		return nil, err
	}

	maxSkip := opts.MaxSkipRatio
	if maxSkip <= 0 {
		maxSkip = DefaultMaxSkipRatio
	}

	result := &Result{
		RunID:    runID,
		Warnings: make(map[models.Source][]reconcile.Warning),
	}

	backendCfg := mapping.ConfigFor(string(models.SourceBackend), opts.BackendColumns)
	backend, err := s.ingest(log, opts.BackendPath, opts.BackendSheet, models.SourceBackend, backendCfg, maxSkip, result)
	if err != nil {
		return nil, err
	}

	manualCfg := mapping.ConfigFor(string(models.SourceManual), opts.ManualColumns)
	manual, err := s.ingest(log, opts.ManualPath, opts.ManualSheet, models.SourceManual, manualCfg, maxSkip, result)
	if err != nil {
		return nil, err
	}

	eq := reconcile.NewEquivalence(mapping.Equivalence)
	result.Rows, result.Summary = reconcile.Reconcile(manual, backend, eq)

	log.Info("Reconciliation complete",
		zap.Int("total_keys", result.Summary.TotalKeys),
		zap.Int("mismatches", result.Summary.Mismatches),
		zap.Int("manual_only", result.Summary.ManualOnly),
		zap.Int("backend_only", result.Summary.BackendOnly),
	)

	if opts.OutputPath != "" {
		if err := report.Write(opts.OutputPath, result.Rows, result.Summary); err != nil {
			return nil, err
		}
		log.Info("Discrepancy report written", zap.String("path", opts.OutputPath))
	}

	return result, nil
}

// ingest loads, resolves and normalizes one source table, enforcing the
// skip-ratio policy the engine itself deliberately leaves to its caller.
func (s *Service) ingest(
	log *zap.Logger,
	path string,
	sheet string,
	source models.Source,
	cfg schema.Config,
	maxSkip float64,
	result *Result,
) (*models.Table, error) {
	log = log.With(zap.String("source", string(source)), zap.String("path", path))

	raw, err := loader.Load(path, loader.Options{Sheet: sheet})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s table: %w", source, err)
	}
	for _, w := range raw.Warnings {
		log.Warn("Load warning", zap.Int("row", w.Row), zap.String("detail", w.Message))
	}

	layout, err := schema.Resolve(raw.Headers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve columns of %s table: %w", source, err)
	}
	log.Info("Columns resolved",
		zap.String("layout", string(layout.Kind)),
		zap.Int("date_columns", len(layout.DateColumns)),
	)

	norm := reconcile.Normalize(raw, layout, source, cfg.DateLayouts)
	result.Warnings[source] = norm.Warnings
	for _, w := range norm.Warnings {
		log.Warn("Normalization warning",
			zap.String("kind", string(w.Kind)),
			zap.Int("row", w.Row),
			zap.String("detail", w.Message),
		)
	}

	if ratio := norm.SkipRatio(); ratio > maxSkip {
		return nil, &SkipRatioExceededError{
			Source:  source,
			Skipped: norm.SkippedRows,
			Total:   norm.TotalRows,
			Max:     maxSkip,
		}
	}

	log.Info("Table normalized",
		zap.Int("records", norm.Table.Len()),
		zap.Int("rows", norm.TotalRows),
		zap.Int("skipped", norm.SkippedRows),
	)
	return norm.Table, nil
}
