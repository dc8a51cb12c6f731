// Package exporter formats analysis outputs as CSV for report consumers.
// It only formats; every statistic comes from the analysis package and is
// never re-derived here.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"surveypulse/pkg/contracts/domain"
)

// CSVWriter writes engine outputs as CSV
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding; question
	// labels are routinely Japanese.
	BOMPrefix bool
}

// NewCSVWriter creates a writer with Excel-friendly defaults
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{BOMPrefix: true}
}

// WriteAnalysis writes one row per question
func (w *CSVWriter) WriteAnalysis(out io.Writer, results []domain.AnalysisResult) error {
	headers := []string{
		"question_key", "question_label", "category_id",
		"mean", "median", "std_dev", "low_ratio", "high_ratio",
		"importance", "quadrant", "priority", "extraction_type", "answer_count",
	}
	records := make([][]string, 0, len(results))
	for _, r := range results {
		records = append(records, []string{
			r.QuestionKey,
			r.QuestionLabel,
			r.CategoryID,
			formatFloat(r.Mean),
			formatFloat(r.Median),
			formatFloat(r.StdDev),
			formatFloat(r.LowRatio),
			formatFloat(r.HighRatio),
			formatFloat(r.Importance),
			string(r.Quadrant),
			string(r.Priority),
			string(r.ExtractionType),
			strconv.Itoa(r.AnswerCount),
		})
	}
	return w.write(out, headers, records)
}

// WriteDepartments writes one row per department x question
func (w *CSVWriter) WriteDepartments(out io.Writer, analyses []domain.DepartmentAnalysis) error {
	headers := []string{"department", "question_key", "mean", "diff_from_overall", "answer_count"}
	records := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		records = append(records, []string{
			a.Department,
			a.QuestionKey,
			formatFloat(a.Mean),
			formatFloat(a.DiffFromOverall),
			strconv.Itoa(a.AnswerCount),
		})
	}
	return w.write(out, headers, records)
}

func (w *CSVWriter) write(out io.Writer, headers []string, records [][]string) error {
	if w.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
