// Package attendance orchestrates the reconciliation pipeline end to
// end: loading both source files, resolving their column layouts,
// normalizing them into keyed tables, running the discrepancy engine and
// writing the report. It also owns the skip-ratio ingestion policy that
// the lower layers deliberately leave to their caller.
package attendance
