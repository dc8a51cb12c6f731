package analysis

import (
	"fmt"
	"log/slog"

	"surveypulse/pkg/contracts/domain"
)

// Engine runs the statistics pipeline. It is stateless; every call computes
// from the inputs alone.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an Engine. A nil logger uses the default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Analyze computes one AnalysisResult per question. Missing answers are
// excluded from all per-question statistics; only the importance correlation
// substitutes 0 for them (see stats.go). Mean, StdDev, the ratios and
// Importance are rounded to 2 decimals; Median keeps native precision.
func (e *Engine) Analyze(responses []domain.SurveyResponse, questions []domain.Question, settings domain.Settings) ([]domain.AnalysisResult, error) {
	if !settings.IsValid() {
		return nil, fmt.Errorf("invalid settings: scale_min %v must be less than scale_max %v", settings.ScaleMin, settings.ScaleMax)
	}

	overall := OverallScores(responses, questions)
	meanThreshold := settings.MeanThreshold()

	results := make([]domain.AnalysisResult, 0, len(questions))
	for _, q := range questions {
		values := make([]float64, 0, len(responses))
		low, high := 0, 0
		for _, resp := range responses {
			v, ok := resp.Answer(q.Key)
			if !ok {
				continue
			}
			values = append(values, v)
			if v <= LowAnswerCeiling {
				low++
			}
			if v >= HighAnswerFloor {
				high++
			}
		}

		r := domain.AnalysisResult{
			QuestionKey:   q.Key,
			QuestionLabel: q.Label,
			CategoryID:    q.CategoryID,
			Mean:          Round2(Mean(values)),
			Median:        Median(values),
			StdDev:        Round2(StdDev(values)),
			AnswerCount:   len(values),
		}
		if len(values) > 0 {
			r.LowRatio = Round2(float64(low) / float64(len(values)))
			r.HighRatio = Round2(float64(high) / float64(len(values)))
		}
		r.Importance = Round2(importance(responses, q.Key, overall))

		r.Quadrant = ClassifyQuadrant(r.Mean, r.Importance, meanThreshold)
		r.Priority = DerivePriority(r.Quadrant, r.Mean, settings.IssueThreshold)
		r.ExtractionType = ClassifyExtraction(r.Mean, settings.IssueThreshold, settings.ExcellentThreshold)

		results = append(results, r)
	}

	e.logger.Info("analysis complete",
		slog.Int("questions", len(questions)),
		slog.Int("respondents", len(responses)))

	return results, nil
}
