package analysis

import "surveypulse/pkg/contracts/domain"

// ImportanceThreshold splits high- from low-importance questions. The mean
// threshold is not fixed here; it is the scale midpoint supplied by Settings.
const ImportanceThreshold = 0.5

// Fixed absolute thresholds for the low/high answer ratios on a
// 1-5-equivalent scale. Deliberately not scale-relative.
const (
	LowAnswerCeiling = 2.0
	HighAnswerFloor  = 4.0
)

// ClassifyQuadrant maps (mean, importance) onto one of the four strategic
// quadrants. Total over the valid domain: every pair lands in exactly one
// quadrant.
func ClassifyQuadrant(mean, imp, meanThreshold float64) domain.Quadrant {
	highImportance := imp >= ImportanceThreshold
	highMean := mean >= meanThreshold
	switch {
	case highImportance && !highMean:
		return domain.QuadrantImprove
	case highImportance && highMean:
		return domain.QuadrantMaintain
	case !highImportance && !highMean:
		return domain.QuadrantMonitor
	default:
		return domain.QuadrantExcess
	}
}

// DerivePriority turns a quadrant into a remediation tier. Only improve is
// high; monitor escalates to medium when the mean also crosses the issue
// threshold; maintain and excess are always low.
func DerivePriority(q domain.Quadrant, mean, issueThreshold float64) domain.Priority {
	switch {
	case q == domain.QuadrantImprove:
		return domain.PriorityHigh
	case q == domain.QuadrantMonitor && mean <= issueThreshold:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// ClassifyExtraction flags issue/excellent questions from the mean alone,
// independent of the quadrant. With inconsistent thresholds a question can
// be an issue inside a maintain quadrant; that combination is accepted, not
// guarded against.
func ClassifyExtraction(mean, issueThreshold, excellentThreshold float64) domain.ExtractionType {
	switch {
	case mean <= issueThreshold:
		return domain.ExtractionIssue
	case mean >= excellentThreshold:
		return domain.ExtractionExcellent
	default:
		return domain.ExtractionNeutral
	}
}
