package domain

// Question represents one survey question discovered during ingestion.
// The Key is the stable identity used throughout the pipeline; the ID is a
// generated UUID kept for consumers that need a globally unique handle.
type Question struct {
	ID         string  `json:"id" validate:"required,uuid"`
	Key        string  `json:"key" validate:"required"`
	Label      string  `json:"label"`
	CategoryID string  `json:"category_id"`
	ScaleMin   float64 `json:"scale_min"`
	ScaleMax   float64 `json:"scale_max"`
}

// IsValid checks if the question carries a usable identity and scale
func (q Question) IsValid() bool {
	return q.ID != "" && q.Key != "" && q.ScaleMin < q.ScaleMax
}

// SurveyResponse represents one respondent's record. Answers holds only the
// questions the respondent actually answered; a missing answer is an absent
// key, never a sentinel value.
type SurveyResponse struct {
	RespondentID string             `json:"respondent_id"`
	Department   string             `json:"department"`
	Answers      map[string]float64 `json:"answers"`
}

// Answer returns the respondent's score for the question key and whether it
// was answered at all.
func (r SurveyResponse) Answer(key string) (float64, bool) {
	v, ok := r.Answers[key]
	return v, ok
}

// AnswerCount returns the number of answered questions
func (r SurveyResponse) AnswerCount() int {
	return len(r.Answers)
}

// Settings holds the analysis thresholds and scale bounds supplied by the
// caller. The engine enforces no defaults; ScaleMin < ScaleMax is the only
// hard requirement.
type Settings struct {
	IssueThreshold     float64 `json:"issue_threshold" yaml:"issue_threshold"`
	ExcellentThreshold float64 `json:"excellent_threshold" yaml:"excellent_threshold"`
	ScaleMin           float64 `json:"scale_min" yaml:"scale_min" validate:"required"`
	ScaleMax           float64 `json:"scale_max" yaml:"scale_max" validate:"required,gtfield=ScaleMin"`
}

// IsValid checks if the settings describe a usable scale
func (s Settings) IsValid() bool {
	return s.ScaleMin < s.ScaleMax
}

// MeanThreshold returns the scale midpoint used for quadrant classification
func (s Settings) MeanThreshold() float64 {
	return (s.ScaleMin + s.ScaleMax) / 2
}

// IssueSeverity classifies a row-level ingestion finding
type IssueSeverity string

const (
	// SeverityWarning covers missing cells and out-of-range answers
	SeverityWarning IssueSeverity = "warning"
	// SeverityError covers cells that could not be parsed as numbers
	SeverityError IssueSeverity = "error"
)

// ValidationIssue records one row-level finding against the raw
// per-respondent table. Issues never block downstream analysis; callers may
// choose to gate on zero errors before proceeding.
type ValidationIssue struct {
	Severity IssueSeverity `json:"severity"`
	Row      int           `json:"row"`
	Column   string        `json:"column"`
	Message  string        `json:"message"`
}
