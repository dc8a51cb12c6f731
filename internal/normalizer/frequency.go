package normalizer

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"surveypulse/pkg/contracts/domain"
)

// frequencyDetector handles tables that summarize, per question, how many
// respondents chose each scale value. The layout is recognized by score
// columns whose headers are themselves small integers, with a human-readable
// Likert label row as the first data row.
type frequencyDetector struct {
	opts *Options
}

// Match requires at least 3 integer-named score columns in [1, 10] and
// non-numeric label text (length > 1) in at least half of those columns on
// the first data row.
func (d *frequencyDetector) Match(t Table) bool {
	if t.IsEmpty() {
		return false
	}
	scoreCols := scoreColumns(t.Headers)
	if len(scoreCols) < 3 {
		return false
	}
	labelish := 0
	for _, sc := range scoreCols {
		cell := t.Cell(0, sc.col)
		if _, ok := parseNumber(cell); !ok && textLength(cell) > 1 {
			labelish++
		}
	}
	return labelish*2 >= len(scoreCols)
}

// Transform reconstructs pseudo-individual responses from the per-score
// counts. For each question the multiset of scores is padded with absent
// entries up to the largest question total in the table, then permuted with
// Fisher-Yates so downstream consumers see behaviorally faithful, though not
// individually accurate, per-respondent rows. Counts are preserved exactly;
// identities are not.
func (d *frequencyDetector) Transform(t Table) (*Result, error) {
	scoreCols := scoreColumns(t.Headers)
	dataRows := t.Rows[1:] // row 0 is the Likert label row

	labelCol := d.findLabelColumn(t, scoreCols, len(dataRows))
	numberCol := -1
	avgCol := -1
	for i, h := range t.Headers {
		if isScoreColumn(scoreCols, i) || i == labelCol {
			continue
		}
		if numberCol == -1 && questionNumPattern.MatchString(h) {
			numberCol = i
			continue
		}
		if avgCol == -1 && weightedAvgPattern.MatchString(h) {
			avgCol = i
		}
	}

	type questionRow struct {
		number string
		label  string
		counts map[int]int
		total  int
	}

	var qrows []questionRow
	for i := 1; i < len(t.Rows); i++ {
		label := t.Cell(i, labelCol)
		counts := make(map[int]int, len(scoreCols))
		total := 0
		for _, sc := range scoreCols {
			if v, ok := parseNumber(t.Cell(i, sc.col)); ok {
				c := int(v)
				counts[sc.score] = c
				total += c
			}
		}
		if label == "" && total == 0 {
			continue // spacer row
		}

		number := ""
		if numberCol >= 0 {
			number = t.Cell(i, numberCol)
		}
		if number == "" {
			number = strconv.Itoa(len(qrows) + 1)
		}
		if avgCol >= 0 {
			// The weighted-average column is parsed for the log only; the
			// pipeline recomputes every statistic from the reconstruction.
			if avg, ok := parseNumber(t.Cell(i, avgCol)); ok {
				d.opts.Logger.Debug("frequency row declared average",
					slog.String("question", label),
					slog.Float64("average", avg))
			}
		}

		qrows = append(qrows, questionRow{number: number, label: label, counts: counts, total: total})
	}

	maxTotal := 0
	for _, qr := range qrows {
		if qr.total > maxTotal {
			maxTotal = qr.total
		}
	}

	ct := &CanonicalTable{Headers: []string{"respondent_id"}}
	ct.Responses = make([]domain.SurveyResponse, maxTotal)
	for i := range ct.Responses {
		ct.Responses[i] = domain.SurveyResponse{
			RespondentID: fmt.Sprintf("R%d", i+1),
			Answers:      make(map[string]float64, len(qrows)),
		}
	}

	rng := d.opts.Rand
	for _, qr := range qrows {
		key := fmt.Sprintf("Q%s. %s", qr.number, qr.label)
		ct.Headers = append(ct.Headers, key)
		ct.Questions = append(ct.Questions, domain.Question{
			ID:         uuid.NewString(),
			Key:        key,
			Label:      qr.label,
			CategoryID: d.opts.Classify(qr.label),
			ScaleMin:   d.opts.ScaleMin,
			ScaleMax:   d.opts.ScaleMax,
		})

		slots := expandCounts(qr.counts, maxTotal)
		shuffle(slots, rng)
		for i, v := range slots {
			if !math.IsNaN(v) {
				ct.Responses[i].Answers[key] = v
			}
		}
	}

	return &Result{Shape: ShapeFrequency, Table: ct}, nil
}

// findLabelColumn picks the non-score column richest in long text
// (rune length > 5) across data rows, falling back to the first non-score
// column so the transform never fails on shape grounds.
func (d *frequencyDetector) findLabelColumn(t Table, scoreCols []scoreColumn, dataRows int) int {
	best, bestCount := -1, 0
	fallback := -1
	for i := range t.Headers {
		if isScoreColumn(scoreCols, i) {
			continue
		}
		if fallback == -1 {
			fallback = i
		}
		count := 0
		for r := 1; r <= dataRows; r++ {
			cell := t.Cell(r, i)
			if _, ok := parseNumber(cell); !ok && textLength(cell) > 5 {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	if best == -1 {
		return fallback
	}
	return best
}

// scoreColumn pairs a header index with the integer scale value it names
type scoreColumn struct {
	col   int
	score int
}

// scoreColumns returns the columns whose header text is an integer in [1, 10]
func scoreColumns(headers []string) []scoreColumn {
	var cols []scoreColumn
	for i, h := range headers {
		n, err := strconv.Atoi(h)
		if err == nil && n >= 1 && n <= 10 {
			cols = append(cols, scoreColumn{col: i, score: n})
		}
	}
	return cols
}

func isScoreColumn(cols []scoreColumn, i int) bool {
	for _, sc := range cols {
		if sc.col == i {
			return true
		}
	}
	return false
}

// expandCounts builds the score multiset for one question, padded with NaN
// (meaning "no answer") up to the table-wide maximum total.
func expandCounts(counts map[int]int, maxTotal int) []float64 {
	slots := make([]float64, 0, maxTotal)
	for score := 1; score <= 10; score++ {
		for n := 0; n < counts[score]; n++ {
			slots = append(slots, float64(score))
		}
	}
	for len(slots) < maxTotal {
		slots = append(slots, math.NaN())
	}
	return slots
}

// shuffle is a Fisher-Yates permutation. A nil source uses the shared global
// RNG; tests inject a seeded source to assert exact reconstructions.
func shuffle(slots []float64, rng *rand.Rand) {
	for i := len(slots) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		slots[i], slots[j] = slots[j], slots[i]
	}
}
