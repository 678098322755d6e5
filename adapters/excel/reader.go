package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"math"
	"time"

	"dpplayground/internal"
	"dpplayground/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Supported file types
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
)

// ImportedDataset is the first numeric column found in a spreadsheet.
type ImportedDataset struct {
	Column  string    // header of the column, empty when the file has no header row
	Values  []float64 // numeric cells in row order
	Skipped int       // non-empty cells in the column that were not numbers
}

// DatasetText renders the values the way the dataset textarea expects them.
func (d *ImportedDataset) DatasetText() string {
	parts := make([]string, len(d.Values))
	for i, v := range d.Values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{logger: logger.Named("DataReader")}
}

// FileType maps a file name to a supported type, or "" when unsupported
func FileType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FileTypeCSV
	case ".xlsx":
		return FileTypeXLSX
	default:
		return ""
	}
}

// ReadFile opens path and reads its first numeric column
func (r *DataReader) ReadFile(path string) (*ImportedDataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.ImportFailed("failed to open dataset file", err)
	}
	defer file.Close()
	return r.Read(file, filepath.Base(path))
}

// Read reads the first numeric column from a CSV or XLSX stream named name
func (r *DataReader) Read(src io.Reader, name string) (*ImportedDataset, error) {
	startTime := time.Now()

	var rows [][]string
	var err error
	switch fileType := FileType(name); fileType {
	case FileTypeCSV:
		rows, err = r.readCSVRows(src)
	case FileTypeXLSX:
		rows, err = r.readExcelRows(src)
	default:
		return nil, errors.ImportFailed(fmt.Sprintf("unsupported file type: %s", filepath.Ext(name)), nil)
	}
	if err != nil {
		return nil, err
	}

	dataset, err := firstNumericColumn(rows)
	if err != nil {
		return nil, err
	}

	r.logger.Info("%s read in %.2fms (%d values, %d skipped)", name,
		float64(time.Since(startTime).Nanoseconds())/1e6, len(dataset.Values), dataset.Skipped)
	return dataset, nil
}

// readExcelRows reads all rows of the first sheet
func (r *DataReader) readExcelRows(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.ImportFailed("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ImportFailed("Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ImportFailed(fmt.Sprintf("failed to read %s", sheets[0]), err)
	}
	return rows, nil
}

// readCSVRows reads CSV data; rows may have differing lengths
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ImportFailed("failed to read CSV file", err)
	}
	return rows, nil
}

// firstNumericColumn picks the left-most column holding at least one number.
// A first row whose cell in that column is not numeric is treated as a header.
func firstNumericColumn(rows [][]string) (*ImportedDataset, error) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	for col := 0; col < width; col++ {
		dataset := &ImportedDataset{Values: []float64{}}
		for i, row := range rows {
			cell := ""
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			if cell == "" {
				continue
			}
			if v, ok := numericCell(cell); ok {
				dataset.Values = append(dataset.Values, v)
				continue
			}
			if i == 0 {
				dataset.Column = cell
				continue
			}
			dataset.Skipped++
		}
		if len(dataset.Values) > 0 {
			return dataset, nil
		}
	}

	return nil, errors.ImportFailed("no numeric column found", nil)
}

// numericCell accepts a cell only when all of it is a finite number, so
// "2024 revenue" or "12 kg" stay text. Thousands separators are ignored.
func numericCell(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
