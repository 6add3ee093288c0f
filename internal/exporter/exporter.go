package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"universal-scraper/pkg/models"
)

// Sentinel errors to allow precise mapping in handlers
var (
	ErrUnknownFormat = errors.New("unknown_export_format")
	ErrEncode        = errors.New("encode_failed")
	ErrSpreadsheet   = errors.New("spreadsheet_failed")
)

// Format names an export flavour
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Fixed download names and content types
const (
	JSONFilename = "scraped_data.json"
	CSVFilename  = "scraped_data.csv"
	XLSXFilename = "scraped_data.xlsx"

	JSONContentType = "application/json"
	CSVContentType  = "text/csv"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Sheet1"
)

// Artifact is one rendered export, ready to be written or downloaded
type Artifact struct {
	Format      Format
	Filename    string
	ContentType string
	Data        []byte
}

// Formats lists every supported format in download order
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatXLSX}
}

// ParseFormat maps a name such as "csv" to its Format
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatCSV, FormatXLSX:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// Export renders records in the requested format
func Export(format Format, records []models.Record) (*Artifact, error) {
	switch format {
	case FormatJSON:
		data, err := JSON(records)
		if err != nil {
			return nil, err
		}
		return &Artifact{Format: format, Filename: JSONFilename, ContentType: JSONContentType, Data: data}, nil
	case FormatCSV:
		data, err := CSV(records)
		if err != nil {
			return nil, err
		}
		return &Artifact{Format: format, Filename: CSVFilename, ContentType: CSVContentType, Data: data}, nil
	case FormatXLSX:
		data, err := XLSX(records)
		if err != nil {
			return nil, err
		}
		return &Artifact{Format: format, Filename: XLSXFilename, ContentType: XLSXContentType, Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// ExportAll renders records in every supported format
func ExportAll(records []models.Record) ([]*Artifact, error) {
	artifacts := make([]*Artifact, 0, len(Formats()))
	for _, format := range Formats() {
		artifact, err := Export(format, records)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

// JSON renders records as a 4-space indented array. Non-ASCII and HTML
// characters are written as-is and there is no trailing newline.
func JSON(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// CSV renders a header row followed by one row per record
func CSV(records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	columns := Columns(records)
	if len(columns) > 0 {
		if err := w.Write(columns); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	}

	row := make([]string, len(columns))
	for _, record := range records {
		for i, column := range columns {
			row[i] = record.Text(column)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// XLSX renders a single-sheet workbook with a header row
func XLSX(records []models.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	columns := Columns(records)
	for col, name := range columns {
		if err := setCell(f, col+1, 1, name); err != nil {
			return nil, err
		}
	}

	for r, record := range records {
		for col, name := range columns {
			value, ok := record.Get(name)
			if !ok || value == nil {
				continue
			}
			if err := setCell(f, col+1, r+2, cellValue(value)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpreadsheet, err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSpreadsheet, err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("%w: %v", ErrSpreadsheet, err)
	}
	return nil
}

// cellValue keeps numbers and booleans typed in the workbook
func cellValue(v any) interface{} {
	switch val := v.(type) {
	case json.Number:
		if f, err := strconv.ParseFloat(val.String(), 64); err == nil {
			return f
		}
		return val.String()
	case bool:
		return val
	default:
		return models.ValueText(val)
	}
}

// Columns returns the union of record keys in first-seen order
func Columns(records []models.Record) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, record := range records {
		for _, key := range record.Keys() {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}
