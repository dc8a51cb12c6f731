package normalizer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTable parses the named upload into a Table, dispatching on the file
// extension. CSV and Excel workbooks are supported; anything else is a parse
// failure surfaced to the caller before normalization begins.
func ReadTable(filename string, r io.Reader) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm", ".xls":
		return ReadWorkbook(r)
	default:
		return Table{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// ReadCSV parses comma-delimited data with a required header row
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("failed to parse CSV: no header row")
	}

	headers := records[0]
	if len(headers) > 0 {
		// Excel exports often prefix the first header with a UTF-8 BOM
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	return Table{Headers: headers, Rows: records[1:]}, nil
}

// ReadWorkbook parses the first sheet of an Excel workbook with a required
// header row. Only the first sheet is read; additional sheets are ignored.
func ReadWorkbook(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("failed to parse workbook: no sheets found")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("failed to parse workbook: sheet %q has no header row", sheets[0])
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	// Pad short rows so every row aligns to the header width
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		data = append(data, row)
	}

	return Table{Headers: headers, Rows: data}, nil
}
