package normalizer

import (
	"fmt"

	"github.com/google/uuid"

	"surveypulse/pkg/contracts/domain"
)

// rawDetector handles the plain per-respondent table, one row per
// respondent. It is the fallback shape and matches everything.
type rawDetector struct {
	opts *Options
}

func (d *rawDetector) Match(t Table) bool {
	return true
}

// Transform normalizes the table into per-respondent responses. The
// respondent-id column is the first header that looks like an identifier
// without also looking like a department; the department column is the first
// header matching a department-like name. Every remaining header becomes a
// question. Cell-level problems never abort the transform; they are recorded
// as ValidationIssues with file coordinates (the header is row 1).
func (d *rawDetector) Transform(t Table) (*Result, error) {
	if t.IsEmpty() {
		return nil, fmt.Errorf("raw table: no data rows")
	}

	idCol := -1
	deptCol := -1
	for i, h := range t.Headers {
		if deptCol == -1 && departmentPattern.MatchString(h) {
			deptCol = i
			continue
		}
		if idCol == -1 && respondentIDPattern.MatchString(h) && !departmentPattern.MatchString(h) {
			idCol = i
		}
	}
	if idCol == -1 {
		idCol = 0
	}

	ct := &CanonicalTable{}
	ct.Headers = append(ct.Headers, t.Headers[idCol])

	questionCols := make([]int, 0, len(t.Headers))
	for i, h := range t.Headers {
		if i == idCol || i == deptCol {
			continue
		}
		questionCols = append(questionCols, i)
		ct.Headers = append(ct.Headers, h)
		ct.Questions = append(ct.Questions, domain.Question{
			ID:         uuid.NewString(),
			Key:        h,
			Label:      h,
			CategoryID: d.opts.Classify(h),
			ScaleMin:   d.opts.ScaleMin,
			ScaleMax:   d.opts.ScaleMax,
		})
	}

	for i := range t.Rows {
		fileRow := i + 2 // header is row 1

		respondentID := t.Cell(i, idCol)
		if respondentID == "" {
			respondentID = fmt.Sprintf("R%d", i+1)
		}
		department := ""
		if deptCol >= 0 {
			department = t.Cell(i, deptCol)
		}

		resp := domain.SurveyResponse{
			RespondentID: respondentID,
			Department:   department,
			Answers:      make(map[string]float64, len(questionCols)),
		}

		for qi, col := range questionCols {
			key := ct.Questions[qi].Key
			cell := t.Cell(i, col)
			if cell == "" {
				ct.Issues = append(ct.Issues, domain.ValidationIssue{
					Severity: domain.SeverityWarning,
					Row:      fileRow,
					Column:   key,
					Message:  "missing answer",
				})
				continue
			}
			v, ok := parseNumber(cell)
			if !ok {
				ct.Issues = append(ct.Issues, domain.ValidationIssue{
					Severity: domain.SeverityError,
					Row:      fileRow,
					Column:   key,
					Message:  fmt.Sprintf("non-numeric answer %q", cell),
				})
				continue
			}
			if v < d.opts.ScaleMin || v > d.opts.ScaleMax {
				ct.Issues = append(ct.Issues, domain.ValidationIssue{
					Severity: domain.SeverityWarning,
					Row:      fileRow,
					Column:   key,
					Message:  fmt.Sprintf("answer %v outside scale [%v, %v]", v, d.opts.ScaleMin, d.opts.ScaleMax),
				})
			}
			resp.Answers[key] = v
		}

		ct.Responses = append(ct.Responses, resp)
	}

	return &Result{Shape: ShapeRaw, Table: ct}, nil
}
