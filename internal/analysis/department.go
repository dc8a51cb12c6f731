package analysis

import (
	"log/slog"

	"surveypulse/internal/collation"
	"surveypulse/pkg/contracts/domain"
)

// DepartmentAnalyze computes per-department means and deltas against the
// overall means already present in results. Departments are discovered
// dynamically from the responses and ordered with locale-aware natural
// collation; the empty department string is a valid group for respondents
// without department info. A department with no answers for a question
// produces no entry for that pair.
func (e *Engine) DepartmentAnalyze(responses []domain.SurveyResponse, questions []domain.Question, results []domain.AnalysisResult) []domain.DepartmentAnalysis {
	overallByKey := make(map[string]float64, len(results))
	for _, r := range results {
		overallByKey[r.QuestionKey] = r.Mean
	}

	grouped := make(map[string][]domain.SurveyResponse)
	for _, resp := range responses {
		grouped[resp.Department] = append(grouped[resp.Department], resp)
	}
	departments := make([]string, 0, len(grouped))
	for dept := range grouped {
		departments = append(departments, dept)
	}
	collation.SortStrings(departments)

	var analyses []domain.DepartmentAnalysis
	for _, dept := range departments {
		members := grouped[dept]
		for _, q := range questions {
			values := make([]float64, 0, len(members))
			for _, resp := range members {
				if v, ok := resp.Answer(q.Key); ok {
					values = append(values, v)
				}
			}
			if len(values) == 0 {
				continue
			}
			mean := Round2(Mean(values))
			analyses = append(analyses, domain.DepartmentAnalysis{
				Department:      dept,
				QuestionKey:     q.Key,
				Mean:            mean,
				DiffFromOverall: Round2(mean - overallByKey[q.Key]),
				AnswerCount:     len(values),
			})
		}
	}

	e.logger.Info("department analysis complete",
		slog.Int("departments", len(departments)),
		slog.Int("entries", len(analyses)))

	return analyses
}

// DepartmentMatrixAnalyze derives the same comparison shape from a
// pre-aggregated matrix. No aggregation is needed; each question already
// carries one score per department. The baseline per question is the
// detected overall column when one exists, otherwise the arithmetic mean of
// the non-overall departments' scores. The returned map holds that baseline
// per question key.
func (e *Engine) DepartmentMatrixAnalyze(data *domain.DepartmentScoreData) ([]domain.DepartmentAnalysis, map[string]float64) {
	overallByKey := make(map[string]float64, len(data.Questions))
	var analyses []domain.DepartmentAnalysis

	for _, q := range data.Questions {
		overallMean, ok := 0.0, false
		if data.HasOverall() {
			overallMean, ok = q.Scores[data.OverallDepartment]
		}
		if !ok {
			values := make([]float64, 0, len(q.Scores))
			for dept, v := range q.Scores {
				if dept == data.OverallDepartment {
					continue
				}
				values = append(values, v)
			}
			overallMean = Round2(Mean(values))
		}
		overallByKey[q.Key] = overallMean

		for _, dept := range data.Departments {
			if dept == data.OverallDepartment {
				continue
			}
			score, present := q.Scores[dept]
			if !present {
				continue
			}
			analyses = append(analyses, domain.DepartmentAnalysis{
				Department:      dept,
				QuestionKey:     q.Key,
				Mean:            score,
				DiffFromOverall: Round2(score - overallMean),
			})
		}
	}

	e.logger.Info("department matrix analysis complete",
		slog.Int("questions", len(data.Questions)),
		slog.Int("departments", len(data.Departments)))

	return analyses, overallByKey
}
