package analysis

import "surveypulse/pkg/contracts/domain"

// Distribution builds a histogram of response counts for one question: one
// zero-initialized bucket per integer value in [scaleMin, scaleMax].
// Missing answers and answers matching no bucket (out of range or
// non-integer) are silently excluded; there is no overflow bucket.
func Distribution(responses []domain.SurveyResponse, key string, scaleMin, scaleMax int) []domain.Bucket {
	if scaleMax < scaleMin {
		return nil
	}
	buckets := make([]domain.Bucket, 0, scaleMax-scaleMin+1)
	index := make(map[int]int, scaleMax-scaleMin+1)
	for v := scaleMin; v <= scaleMax; v++ {
		index[v] = len(buckets)
		buckets = append(buckets, domain.Bucket{Value: v})
	}
	for _, resp := range responses {
		answer, ok := resp.Answer(key)
		if !ok {
			continue
		}
		v := int(answer)
		if float64(v) != answer {
			continue
		}
		if i, ok := index[v]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}
