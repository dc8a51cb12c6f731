package domain

// Quadrant represents the strategic bucket a question falls into when its
// mean score is crossed against its importance.
type Quadrant string

const (
	QuadrantImprove  Quadrant = "improve"  // high importance, low mean
	QuadrantMaintain Quadrant = "maintain" // high importance, high mean
	QuadrantMonitor  Quadrant = "monitor"  // low importance, low mean
	QuadrantExcess   Quadrant = "excess"   // low importance, high mean
)

// Priority represents the remediation tier derived from the quadrant
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ExtractionType flags questions whose mean crosses the issue or excellent
// thresholds. It is independent of the quadrant; a question can be both an
// issue and in the maintain quadrant when thresholds are configured that way.
type ExtractionType string

const (
	ExtractionIssue     ExtractionType = "issue"
	ExtractionExcellent ExtractionType = "excellent"
	ExtractionNeutral   ExtractionType = "neutral"
)

// AnalysisResult holds the per-question output of the statistics pipeline.
// Mean, StdDev, LowRatio, HighRatio and Importance are rounded to 2 decimal
// places; Median is left at native precision.
type AnalysisResult struct {
	QuestionKey    string         `json:"question_key"`
	QuestionLabel  string         `json:"question_label"`
	CategoryID     string         `json:"category_id"`
	Mean           float64        `json:"mean"`
	Median         float64        `json:"median"`
	StdDev         float64        `json:"std_dev"`
	LowRatio       float64        `json:"low_ratio"`
	HighRatio      float64        `json:"high_ratio"`
	Importance     float64        `json:"importance"`
	Quadrant       Quadrant       `json:"quadrant"`
	Priority       Priority       `json:"priority"`
	ExtractionType ExtractionType `json:"extraction_type"`
	AnswerCount    int            `json:"answer_count"`
}

// IsValid checks the ratio and importance invariants
func (ar AnalysisResult) IsValid() bool {
	return ar.QuestionKey != "" &&
		ar.LowRatio >= 0 && ar.LowRatio <= 1 &&
		ar.HighRatio >= 0 && ar.HighRatio <= 1 &&
		ar.Importance >= 0 && ar.Importance <= 1
}

// DepartmentAnalysis holds one department × question comparison against the
// overall population mean. DiffFromOverall is rounded to 2 decimal places;
// deltas across departments need not sum to zero because department sizes
// differ.
type DepartmentAnalysis struct {
	Department      string  `json:"department"`
	QuestionKey     string  `json:"question_key"`
	Mean            float64 `json:"mean"`
	DiffFromOverall float64 `json:"diff_from_overall"`
	AnswerCount     int     `json:"answer_count"`
}

// DepartmentQuestion represents one question row extracted from a
// pre-aggregated department-score matrix. Scores maps department name to the
// single average supplied by the file; no raw respondents exist behind it.
type DepartmentQuestion struct {
	Number     string             `json:"number"`
	Key        string             `json:"key"`
	Label      string             `json:"label"`
	CategoryID string             `json:"category_id"`
	Scores     map[string]float64 `json:"scores"`
}

// DepartmentScoreData is the alternate ingestion output for pre-aggregated
// department matrices. Departments is sorted with locale-aware natural
// ordering. OverallDepartment names the detected grand-total column, empty
// when none was found.
type DepartmentScoreData struct {
	Questions         []DepartmentQuestion `json:"questions"`
	Departments       []string             `json:"departments"`
	OverallDepartment string               `json:"overall_department"`
}

// HasOverall reports whether a grand-total column was detected
func (d DepartmentScoreData) HasOverall() bool {
	return d.OverallDepartment != ""
}

// Bucket represents one histogram bar: how many respondents chose Value
type Bucket struct {
	Value int `json:"value"`
	Count int `json:"count"`
}
