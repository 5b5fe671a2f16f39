// Package reconcile holds the core reconciliation pipeline: the table
// normalizer and the discrepancy engine.
//
// The normalizer turns a raw table plus its resolved layout into a
// read-only attendance table keyed by (employee_id, date), reporting
// duplicate keys and skipped rows as warnings instead of failing or
// dropping data silently.
//
// The engine is a pure transform over two such tables. It walks the
// union of their keys in a deterministic order and emits one
// DiscrepancyRow per key, classifying each as matching, mismatching or
// one-sided, plus aggregate summary counts. No I/O happens here, which
// is what keeps the engine unit-testable without files.
package reconcile
