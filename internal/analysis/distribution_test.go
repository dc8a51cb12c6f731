package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveypulse/pkg/contracts/domain"
)

func respondentsWith(key string, answers ...float64) []domain.SurveyResponse {
	out := make([]domain.SurveyResponse, len(answers))
	for i, v := range answers {
		out[i] = domain.SurveyResponse{
			RespondentID: "r",
			Answers:      map[string]float64{key: v},
		}
	}
	return out
}

func TestDistribution(t *testing.T) {
	responses := respondentsWith("q1", 1, 1, 3, 5, 5, 5)

	buckets := Distribution(responses, "q1", 1, 5)

	assert.Equal(t, []domain.Bucket{
		{Value: 1, Count: 2},
		{Value: 2, Count: 0},
		{Value: 3, Count: 1},
		{Value: 4, Count: 0},
		{Value: 5, Count: 3},
	}, buckets)
}

func TestDistribution_Exclusions(t *testing.T) {
	responses := respondentsWith("q1", 0, 6, 2.5, 3)
	responses = append(responses, domain.SurveyResponse{RespondentID: "none", Answers: map[string]float64{}})

	buckets := Distribution(responses, "q1", 1, 5)

	// Out-of-range, non-integer and missing answers hit no bucket at all
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, buckets[2].Count)
}

func TestDistribution_InvertedBounds(t *testing.T) {
	assert.Nil(t, Distribution(nil, "q1", 5, 1))
}
