package analysis

import (
	"math"
	"sort"

	"surveypulse/pkg/contracts/domain"
)

// Mean returns the arithmetic mean, or 0 for an empty set
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle element of the sorted set, or the average of the
// two middle elements for even lengths. 0 for an empty set. The input is not
// modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the population standard deviation (sum of squared
// deviations divided by N, not N-1). 0 when N <= 1, never NaN.
func StdDev(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

// Round2 rounds to 2 decimal places for display stability
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OverallScores returns each respondent's mean across their answered
// questions, in respondent order. A respondent with no answers scores 0.
func OverallScores(responses []domain.SurveyResponse, questions []domain.Question) []float64 {
	scores := make([]float64, len(responses))
	for i, resp := range responses {
		sum, n := 0.0, 0
		for _, q := range questions {
			if v, ok := resp.Answer(q.Key); ok {
				sum += v
				n++
			}
		}
		if n > 0 {
			scores[i] = sum / float64(n)
		}
	}
	return scores
}

// pearson returns the Pearson correlation coefficient of two equal-length
// vectors, or 0 when either has zero variance or fewer than 2 entries.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0
	}
	mx, my := Mean(x), Mean(y)
	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// importance is the absolute correlation between a question's per-respondent
// scores and the respondents' overall scores. Missing answers are
// substituted with 0 when building the question vector, matching the
// historical behavior downstream consumers calibrated against.
func importance(responses []domain.SurveyResponse, key string, overall []float64) float64 {
	x := make([]float64, len(responses))
	for i, resp := range responses {
		if v, ok := resp.Answer(key); ok {
			x[i] = v
		}
	}
	return math.Abs(pearson(x, overall))
}
