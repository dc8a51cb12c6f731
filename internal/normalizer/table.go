package normalizer

import (
	"strings"

	"surveypulse/pkg/contracts/domain"
)

// Table is a parsed spreadsheet or CSV: one header row plus data rows
// aligned to it. Cells are raw strings exactly as the reader produced them.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the trimmed cell at (row, col), or "" when the row is shorter
// than the header it is aligned to.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// IsEmpty reports whether the table has no data rows
func (t Table) IsEmpty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// Shape identifies which input layout a table was recognized as
type Shape string

const (
	// ShapeRaw is a plain per-respondent table, one row per respondent
	ShapeRaw Shape = "raw"
	// ShapeFrequency is a per-question frequency-distribution table
	ShapeFrequency Shape = "frequency"
	// ShapeDepartmentMatrix is a pre-aggregated department-score matrix
	ShapeDepartmentMatrix Shape = "department_matrix"
)

// CanonicalTable is the normalized per-respondent form shared by the raw and
// frequency shapes. Questions appear in column order; Issues holds the
// row-level findings collected during normalization.
type CanonicalTable struct {
	Headers   []string
	Questions []domain.Question
	Responses []domain.SurveyResponse
	Issues    []domain.ValidationIssue
}

// ErrorCount returns the number of error-severity issues, for callers that
// gate analysis on a clean table.
func (ct CanonicalTable) ErrorCount() int {
	n := 0
	for _, issue := range ct.Issues {
		if issue.Severity == domain.SeverityError {
			n++
		}
	}
	return n
}

// Result is the tagged output of normalization. Exactly one of Table and
// Matrix is set, according to Shape.
type Result struct {
	Shape  Shape
	Table  *CanonicalTable
	Matrix *domain.DepartmentScoreData
}
