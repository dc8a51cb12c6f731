package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveypulse/pkg/contracts/domain"
)

func TestClassifyQuadrant(t *testing.T) {
	const meanThreshold = 3.0

	tests := []struct {
		name       string
		mean       float64
		importance float64
		want       domain.Quadrant
	}{
		{name: "high importance low mean", mean: 2.5, importance: 0.8, want: domain.QuadrantImprove},
		{name: "high importance high mean", mean: 4.5, importance: 0.8, want: domain.QuadrantMaintain},
		{name: "low importance low mean", mean: 2.5, importance: 0.2, want: domain.QuadrantMonitor},
		{name: "low importance high mean", mean: 4.5, importance: 0.2, want: domain.QuadrantExcess},
		{name: "importance boundary is high", mean: 2.5, importance: 0.5, want: domain.QuadrantImprove},
		{name: "mean boundary is high", mean: 3.0, importance: 0.5, want: domain.QuadrantMaintain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyQuadrant(tt.mean, tt.importance, meanThreshold))
		})
	}
}

func TestClassifyQuadrant_Total(t *testing.T) {
	// Every (mean, importance) pair lands in exactly one quadrant
	for mean := 0.0; mean <= 5.0; mean += 0.25 {
		for imp := 0.0; imp <= 1.0; imp += 0.05 {
			q := ClassifyQuadrant(mean, imp, 3)
			assert.Contains(t, []domain.Quadrant{
				domain.QuadrantImprove, domain.QuadrantMaintain,
				domain.QuadrantMonitor, domain.QuadrantExcess,
			}, q)
		}
	}
}

func TestDerivePriority(t *testing.T) {
	const issueThreshold = 3.0

	tests := []struct {
		name     string
		quadrant domain.Quadrant
		mean     float64
		want     domain.Priority
	}{
		{name: "improve is high", quadrant: domain.QuadrantImprove, mean: 2.0, want: domain.PriorityHigh},
		{name: "monitor below issue threshold is medium", quadrant: domain.QuadrantMonitor, mean: 2.5, want: domain.PriorityMedium},
		{name: "monitor above issue threshold is low", quadrant: domain.QuadrantMonitor, mean: 3.5, want: domain.PriorityLow},
		{name: "maintain is low", quadrant: domain.QuadrantMaintain, mean: 4.5, want: domain.PriorityLow},
		{name: "excess is low", quadrant: domain.QuadrantExcess, mean: 4.5, want: domain.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePriority(tt.quadrant, tt.mean, issueThreshold))
		})
	}
}

func TestClassifyExtraction(t *testing.T) {
	tests := []struct {
		name      string
		mean      float64
		issue     float64
		excellent float64
		want      domain.ExtractionType
	}{
		{name: "at or below issue threshold", mean: 3.0, issue: 3, excellent: 4, want: domain.ExtractionIssue},
		{name: "at or above excellent threshold", mean: 4.0, issue: 3, excellent: 4, want: domain.ExtractionExcellent},
		{name: "between thresholds", mean: 3.5, issue: 3, excellent: 4, want: domain.ExtractionNeutral},
		// Inconsistent thresholds: issue wins, by evaluation order
		{name: "overlapping thresholds prefer issue", mean: 3.5, issue: 4, excellent: 3, want: domain.ExtractionIssue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyExtraction(tt.mean, tt.issue, tt.excellent))
		})
	}
}

func TestMaintainQuadrantIsLowPriority(t *testing.T) {
	// importance 0.8 and mean 4.5 against midpoint 3: maintain, low
	q := ClassifyQuadrant(4.5, 0.8, 3)
	assert.Equal(t, domain.QuadrantMaintain, q)
	assert.Equal(t, domain.PriorityLow, DerivePriority(q, 4.5, 3))
}
