package normalizer

import (
	"log/slog"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Options configures a Normalizer. ScaleMin/ScaleMax bound the expected
// answer range for row-level validation; Classify assigns a category to each
// question at ingestion; Rand drives the pseudo-response shuffle and can be
// seeded by tests for deterministic reconstruction.
type Options struct {
	ScaleMin float64
	ScaleMax float64
	Classify func(label string) string
	Rand     *rand.Rand
	Logger   *slog.Logger
}

// Normalizer runs the shape-detection chain over parsed tables
type Normalizer struct {
	opts      Options
	detectors []detector
}

// detector is one strategy in the chain: a predicate plus a transformer.
// The first detector whose Match returns true wins.
type detector interface {
	Match(t Table) bool
	Transform(t Table) (*Result, error)
}

// New creates a Normalizer. A nil Classify falls back to tagging every
// question with an empty category; a nil Rand uses the shared global source.
func New(opts Options) *Normalizer {
	if opts.Classify == nil {
		opts.Classify = func(string) string { return "" }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	n := &Normalizer{opts: opts}
	n.detectors = []detector{
		&frequencyDetector{opts: &n.opts},
		&rawDetector{opts: &n.opts},
	}
	return n
}

// Normalize runs the auto-detection chain: frequency-distribution tables are
// recognized first, everything else falls through to the plain
// per-respondent shape. Neither shape fails on shape grounds, so the only
// possible errors come from an empty table.
func (n *Normalizer) Normalize(t Table) (*Result, error) {
	for _, d := range n.detectors {
		if !d.Match(t) {
			continue
		}
		res, err := d.Transform(t)
		if err != nil {
			return nil, err
		}
		n.opts.Logger.Info("table normalized",
			slog.String("shape", string(res.Shape)),
			slog.Int("questions", len(res.Table.Questions)),
			slog.Int("respondents", len(res.Table.Responses)),
			slog.Int("issues", len(res.Table.Issues)))
		return res, nil
	}
	// The raw detector matches everything; reaching here means no detectors
	// are configured, which is a programming error.
	panic("normalizer: no applicable detector")
}

// NormalizeDepartmentMatrix extracts a pre-aggregated department-score
// matrix. This shape is never auto-detected; the caller chooses it by taking
// the department-upload path.
func (n *Normalizer) NormalizeDepartmentMatrix(t Table) (*Result, error) {
	d := &departmentDetector{opts: &n.opts}
	res, err := d.Transform(t)
	if err != nil {
		return nil, err
	}
	n.opts.Logger.Info("department matrix normalized",
		slog.Int("questions", len(res.Matrix.Questions)),
		slog.Int("departments", len(res.Matrix.Departments)),
		slog.String("overall_department", res.Matrix.OverallDepartment))
	return res, nil
}

// Header name patterns shared by the detectors. The identifier and
// department patterns cover both the Japanese survey exports this tool grew
// up on and their common English equivalents.
var (
	respondentIDPattern = regexp.MustCompile(`(?i)^(no\.?|#)$|id$|番号|社員|氏名|名前|回答者`)
	departmentPattern   = regexp.MustCompile(`(?i)部署|部門|所属|チーム|department|dept|division|section|team`)
	questionNumPattern  = regexp.MustCompile(`(?i)^(no\.?|#|q)$|番号|設問|質問.*番号|number`)
	weightedAvgPattern  = regexp.MustCompile(`(?i)点|平均|average|avg|mean`)
	likertLabelPattern  = regexp.MustCompile(`そう思う|思わない|どちらとも|あてはまる|当てはまる|(?i)strongly|agree|disagree|neither`)
	overallDeptPattern  = regexp.MustCompile(`(?i)^total$|全体|全社|全部署|会社|総合|overall|grand\s*total`)
)

// parseNumber parses a cell as a float, tolerating thousands separators and
// full-width digits left behind by Japanese Excel exports.
func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return '0' + (r - '０')
		}
		if r == '．' {
			return '.'
		}
		return r
	}, s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// textLength returns the rune length of a trimmed cell
func textLength(cell string) int {
	return utf8.RuneCountInString(strings.TrimSpace(cell))
}
