package normalizer

import (
	"errors"
	"math"
	"regexp"
	"strconv"

	"surveypulse/internal/collation"
	"surveypulse/pkg/contracts/domain"
)

// Errors returned by the department-matrix path, one per failed
// precondition so the user learns exactly what the upload was missing.
var (
	ErrNoLabelColumn       = errors.New("department matrix: question label column not found")
	ErrNoDepartmentColumns = errors.New("department matrix: no department score columns found")
	ErrNoQuestionRows      = errors.New("department matrix: no valid question rows after filtering")
)

// Department averages on the usual 1-5 scale, with headroom for files that
// report slightly above the top of the scale after weighting.
const (
	deptScoreFloor   = 1.0
	deptScoreCeiling = 5.5
)

// Headers that can never be department columns: row-number markers, Likert
// answer labels, and count/average columns. A header matching the overall
// pattern bypasses this list because the grand-total column is itself a
// department column.
var deptDenyPattern = regexp.MustCompile(`(?i)^(no\.?|#)$|番号|回答数|合計|総計|点|平均|加重|average|avg|mean|sum|count|total`)

// departmentDetector extracts a pre-aggregated department-score matrix: one
// average per department per question, with no raw respondents behind it.
type departmentDetector struct {
	opts *Options
}

// Match is unused; this shape is only reached through the explicit
// department-upload path.
func (d *departmentDetector) Match(t Table) bool {
	return false
}

func (d *departmentDetector) Transform(t Table) (*Result, error) {
	if t.IsEmpty() {
		return nil, ErrNoQuestionRows
	}

	labelCol := findMatrixLabelColumn(t)
	if labelCol == -1 {
		return nil, ErrNoLabelColumn
	}

	numberCol := -1
	for i, h := range t.Headers {
		if i != labelCol && questionNumPattern.MatchString(h) {
			numberCol = i
			break
		}
	}

	// Rows whose label is 2 characters or shorter are spacer rows
	var retained []int
	for i := range t.Rows {
		if textLength(t.Cell(i, labelCol)) > 2 {
			retained = append(retained, i)
		}
	}
	if len(retained) == 0 {
		return nil, ErrNoQuestionRows
	}

	deptCols := findDepartmentColumns(t, labelCol, numberCol, retained)
	if len(deptCols) == 0 {
		return nil, ErrNoDepartmentColumns
	}

	overall := ""
	departments := make([]string, 0, len(deptCols))
	for _, col := range deptCols {
		name := t.Headers[col]
		departments = append(departments, name)
		if overall == "" && overallDeptPattern.MatchString(name) {
			overall = name
		}
	}
	collation.SortStrings(departments)

	data := &domain.DepartmentScoreData{
		Departments:       departments,
		OverallDepartment: overall,
	}

	for _, row := range retained {
		label := t.Cell(row, labelCol)
		number := ""
		if numberCol >= 0 {
			number = t.Cell(row, numberCol)
		}
		if number == "" {
			number = strconv.Itoa(len(data.Questions) + 1)
		}

		scores := make(map[string]float64, len(deptCols))
		for _, col := range deptCols {
			if v, ok := parseNumber(t.Cell(row, col)); ok {
				scores[t.Headers[col]] = round2(v)
			}
		}
		if len(scores) == 0 {
			continue
		}

		data.Questions = append(data.Questions, domain.DepartmentQuestion{
			Number:     number,
			Key:        "Q" + number + ". " + label,
			Label:      label,
			CategoryID: d.opts.Classify(label),
			Scores:     scores,
		})
	}
	if len(data.Questions) == 0 {
		return nil, ErrNoQuestionRows
	}

	return &Result{Shape: ShapeDepartmentMatrix, Matrix: data}, nil
}

// findMatrixLabelColumn returns the column richest in long question text
// (rune length > 5), or -1 when no column qualifies.
func findMatrixLabelColumn(t Table) int {
	best, bestCount := -1, 0
	for i := range t.Headers {
		count := 0
		for r := range t.Rows {
			cell := t.Cell(r, i)
			if _, ok := parseNumber(cell); !ok && textLength(cell) > 5 {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// findDepartmentColumns keeps every remaining column that is not on the
// header denylist and whose values are numeric, present in at least 30% of
// retained rows, and all within the plausible score band.
func findDepartmentColumns(t Table, labelCol, numberCol int, retained []int) []int {
	var cols []int
	for i, h := range t.Headers {
		if i == labelCol || i == numberCol {
			continue
		}
		if !overallDeptPattern.MatchString(h) && (deptDenyPattern.MatchString(h) || likertLabelPattern.MatchString(h)) {
			continue
		}
		numeric := 0
		inBand := true
		for _, row := range retained {
			cell := t.Cell(row, i)
			if cell == "" {
				continue
			}
			v, ok := parseNumber(cell)
			if !ok {
				continue
			}
			numeric++
			if v < deptScoreFloor || v > deptScoreCeiling {
				inBand = false
				break
			}
		}
		if inBand && numeric*10 >= len(retained)*3 {
			cols = append(cols, i)
		}
	}
	return cols
}

// round2 rounds to 2 decimal places for display stability
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
