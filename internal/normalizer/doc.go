// Package normalizer turns heterogeneous survey spreadsheets into the
// canonical structures the analysis pipeline consumes.
//
// # Architecture
//
// The package is organized around an ordered chain of shape detectors, each a
// predicate plus a transformer:
//
//  1. Frequency-distribution table: per-question response counts per scale
//     value, reconstructed into pseudo-individual responses
//  2. Plain per-respondent table: the default when nothing else matches
//
// A third shape, the pre-aggregated department-score matrix, is never
// auto-detected; callers reach it through NormalizeDepartmentMatrix because
// the upload path is chosen explicitly by the user.
//
// # Data Flow
//
//	CSV / Excel bytes → Reader → Table → detector chain → Result
//
// A Result is a tagged variant: either a CanonicalTable (questions plus
// per-respondent responses plus row-level validation issues) or a
// DepartmentScoreData matrix.
//
// # Error Handling
//
// Auto-detected shapes never fail on shape grounds; cell-level problems are
// collected as ValidationIssues instead of aborting the upload. The
// department-matrix path returns a specific error per missing precondition
// (no label column, no score columns, no valid rows).
package normalizer
