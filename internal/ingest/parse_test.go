package ingest

import (
  "errors"
  "strings"
  "testing"

  "github.com/xuri/excelize/v2"
)

func TestParseFileCSV(t *testing.T) {
  csv := "policy_id,age_min,age_max,class_type\n1,18,65,A\n2,0,17,B\n"
  rows, err := ParseFile("tariffs.csv", strings.NewReader(csv))
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("expected 2 rows, got %d", len(rows))
  }
  if rows[0]["policy_id"] != "1" || rows[1]["class_type"] != "B" {
    t.Fatalf("unexpected rows: %v", rows)
  }
}

func TestParseFileCSVRaggedRow(t *testing.T) {
  csv := "policy_id,age_min,age_max\n1,18\n"
  rows, err := ParseFile("tariffs.csv", strings.NewReader(csv))
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if rows[0]["age_max"] != "" {
    t.Fatalf("short record should pad missing columns: %v", rows[0])
  }
}

func TestParseFileJSONArray(t *testing.T) {
  body := `[{"policy_id": 1, "age_min": 18}, {"policy_id": 2}]`
  rows, err := ParseFile("tariffs.json", strings.NewReader(body))
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("expected 2 rows, got %d", len(rows))
  }
}

func TestParseFileJSONSingleObject(t *testing.T) {
  rows, err := ParseFile("tariffs.json", strings.NewReader(`{"policy_id": 1}`))
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(rows) != 1 {
    t.Fatalf("a single object is a one-row upload, got %d rows", len(rows))
  }
}

func TestParseFileXLSX(t *testing.T) {
  workbook := excelize.NewFile()
  sheet := workbook.GetSheetName(0)
  if err := workbook.SetSheetRow(sheet, "A1", &[]any{"policy_id", "age_min", "age_max", "class_type"}); err != nil {
    t.Fatalf("write header: %v", err)
  }
  if err := workbook.SetSheetRow(sheet, "A2", &[]any{1, 18, 65, "A"}); err != nil {
    t.Fatalf("write row: %v", err)
  }
  // A3 left blank on purpose; blank rows must be skipped.
  if err := workbook.SetSheetRow(sheet, "A4", &[]any{2, 0, 17, "B"}); err != nil {
    t.Fatalf("write row: %v", err)
  }
  buf, err := workbook.WriteToBuffer()
  if err != nil {
    t.Fatalf("serialize workbook: %v", err)
  }

  rows, err := ParseFile("tariffs.xlsx", buf)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("expected 2 rows with the blank one skipped, got %d", len(rows))
  }
  if rows[0]["policy_id"] != "1" || rows[1]["class_type"] != "B" {
    t.Fatalf("unexpected rows: %v", rows)
  }
}

func TestParseFileRejectsLegacyExcel(t *testing.T) {
  _, err := ParseFile("tariffs.xls", strings.NewReader("data"))
  if err == nil {
    t.Fatal("expected rejection of .xls")
  }
  if !strings.Contains(err.Error(), "convert legacy .xls") {
    t.Fatalf("unexpected error: %v", err)
  }
}

func TestParseFileRejectsUnknownExtension(t *testing.T) {
  _, err := ParseFile("tariffs.pdf", strings.NewReader("data"))
  if err == nil {
    t.Fatal("expected rejection of .pdf")
  }
  var formatErr *UnsupportedFormatError
  if !errors.As(err, &formatErr) {
    t.Fatalf("expected UnsupportedFormatError, got %v", err)
  }
}
