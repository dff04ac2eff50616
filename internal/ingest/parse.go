package ingest

import (
  "encoding/csv"
  "encoding/json"
  "fmt"
  "io"
  "path/filepath"
  "strings"

  "github.com/xuri/excelize/v2"
)

// UnsupportedFormatError is the file-level rejection; no rows are processed
// when the file itself cannot be read.
type UnsupportedFormatError struct {
  Extension string
  Hint      string
}

func (e *UnsupportedFormatError) Error() string {
  if e.Hint != "" {
    return fmt.Sprintf("unsupported file format %q: %s", e.Extension, e.Hint)
  }
  return fmt.Sprintf("unsupported file format %q: use CSV, JSON or XLSX", e.Extension)
}

// ParseFile turns an uploaded CSV, JSON or XLSX file into an ordered sequence
// of header-keyed rows. Column names are left raw; normalization happens in
// the ingestion path so JSON uploads and spreadsheets share one pipeline.
func ParseFile(filename string, reader io.Reader) ([]map[string]any, error) {
  ext := strings.ToLower(filepath.Ext(filename))
  switch ext {
  case ".csv":
    return parseCSV(reader)
  case ".json":
    return parseJSON(reader)
  case ".xlsx":
    return parseXLSX(reader)
  case ".xls":
    return nil, &UnsupportedFormatError{Extension: ext, Hint: "convert legacy .xls workbooks to .xlsx before uploading"}
  default:
    return nil, &UnsupportedFormatError{Extension: ext}
  }
}

func parseCSV(reader io.Reader) ([]map[string]any, error) {
  r := csv.NewReader(reader)
  r.FieldsPerRecord = -1
  records, err := r.ReadAll()
  if err != nil {
    return nil, fmt.Errorf("read csv: %w", err)
  }
  if len(records) == 0 {
    return nil, nil
  }
  header := records[0]
  rows := make([]map[string]any, 0, len(records)-1)
  for _, record := range records[1:] {
    row := make(map[string]any, len(header))
    for i, name := range header {
      if i < len(record) {
        row[name] = record[i]
      } else {
        row[name] = ""
      }
    }
    rows = append(rows, row)
  }
  return rows, nil
}

func parseJSON(reader io.Reader) ([]map[string]any, error) {
  data, err := io.ReadAll(reader)
  if err != nil {
    return nil, fmt.Errorf("read json: %w", err)
  }
  var rows []map[string]any
  if err := json.Unmarshal(data, &rows); err != nil {
    // Accept a single object as a one-row upload.
    var row map[string]any
    if err2 := json.Unmarshal(data, &row); err2 != nil {
      return nil, fmt.Errorf("parse json: %w", err)
    }
    rows = []map[string]any{row}
  }
  return rows, nil
}

func parseXLSX(reader io.Reader) ([]map[string]any, error) {
  workbook, err := excelize.OpenReader(reader)
  if err != nil {
    return nil, fmt.Errorf("open workbook: %w", err)
  }
  defer workbook.Close()

  sheets := workbook.GetSheetList()
  if len(sheets) == 0 {
    return nil, fmt.Errorf("workbook has no sheets")
  }
  records, err := workbook.GetRows(sheets[0])
  if err != nil {
    return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
  }
  if len(records) == 0 {
    return nil, nil
  }

  header := records[0]
  rows := make([]map[string]any, 0, len(records)-1)
  for _, record := range records[1:] {
    if blankRecord(record) {
      continue
    }
    row := make(map[string]any, len(header))
    for i, name := range header {
      if name == "" {
        continue
      }
      if i < len(record) {
        row[name] = record[i]
      } else {
        row[name] = ""
      }
    }
    rows = append(rows, row)
  }
  return rows, nil
}

func blankRecord(record []string) bool {
  for _, cell := range record {
    if strings.TrimSpace(cell) != "" {
      return false
    }
  }
  return true
}
