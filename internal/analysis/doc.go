// Package analysis computes per-question descriptive statistics, the
// correlation-based importance measure, quadrant and priority classification,
// department comparisons, and response distributions over canonical survey
// data produced by the normalizer.
//
// The pipeline is a strict dependency chain: Analyze must complete before
// DepartmentAnalyze because department deltas are computed against the
// overall per-question means. All computation is synchronous and operates on
// fully materialized in-memory data.
//
// Degenerate inputs (empty value sets, a single respondent, zero variance)
// never fail; every statistic falls back to 0 rather than propagating NaN.
package analysis
