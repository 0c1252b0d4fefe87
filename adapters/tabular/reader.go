package tabular

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"reportgen/domain/dataset"
	"reportgen/internal/errors"
)

// allowedExtensions are the upload formats the loader accepts
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// AllowedExtension reports whether the filename carries a supported
// tabular extension.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Reader parses CSV and Excel files into datasets
type Reader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewReader creates a reader for the given file, picking the parse path
// from the extension. Legacy .xls workbooks are routed through the Excel
// path; ones the library cannot open surface as parse errors.
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read parses the file into a Dataset. Rows where every cell is empty are
// dropped; a file with no surviving rows is an error.
func (r *Reader) Read() (*dataset.Dataset, error) {
	if !AllowedExtension(r.filePath) {
		return nil, errors.UnsupportedFormat("unsupported file format")
	}

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.ParseError("file not found: "+filepath.Base(r.filePath), err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	return r.processRows(rows)
}

func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.ParseError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("failed to read CSV file", err)
	}
	log.Printf("[Reader] CSV file read (%d rows)", len(rows))
	return rows, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.ParseError("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError("Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError("failed to read sheet "+sheets[0], err)
	}
	log.Printf("[Reader] Excel sheet %q read (%d rows)", sheets[0], len(rows))
	return rows, nil
}

// processRows converts raw string rows into a Dataset, tagging each cell as
// null, number, or text.
func (r *Reader) processRows(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.EmptyDataset("no valid data found in file")
	}

	headerRow := rows[0]
	columns := make([]string, len(headerRow))
	for i, header := range headerRow {
		columns[i] = strings.TrimSpace(header)
	}

	var records []dataset.Record
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		record := make(dataset.Record, len(columns))

		for j, col := range columns {
			if j < len(row) {
				record[col] = parseCell(row[j])
			} else {
				record[col] = dataset.NullValue()
			}
		}

		if record.IsEmpty() {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, errors.EmptyDataset("no valid data found in file")
	}

	log.Printf("[Reader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(columns), len(records))

	return &dataset.Dataset{Columns: columns, Rows: records}, nil
}

// parseCell tags a raw cell: empty becomes null, parseable numbers become
// numbers, everything else stays text.
func parseCell(raw string) dataset.Value {
	cell := strings.TrimSpace(raw)
	if cell == "" {
		return dataset.NullValue()
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return dataset.NewNumberValue(f)
	}
	return dataset.NewTextValue(cell)
}
