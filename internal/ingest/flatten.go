package ingest

import (
  "sort"
  "strings"

  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type criteriaSection int

const (
  sectionGeneral criteriaSection = iota
  sectionCase
  sectionOutpatient
)

// FlatCriteria is one flattened spreadsheet row, ready for the criteria
// upsert path.
type FlatCriteria struct {
  PolicyID   uint
  InPatient  types.InPatientCriteria
  OutPatient types.OutPatientCriteria
}

// FlattenCriteria converts wide spreadsheet rows (one column per coverage
// item) into nested criteria documents. Rows without a policy_id are dropped
// silently; callers see only a smaller output count.
func FlattenCriteria(rows []map[string]any) []FlatCriteria {
  out := make([]FlatCriteria, 0, len(rows))
  for _, raw := range rows {
    row := NormalizeKeys(raw)
    policyID, ok := SafeInt(row["policy_id"], 0)
    if !ok || policyID <= 0 {
      continue
    }
    out = append(out, FlatCriteria{
      PolicyID: uint(policyID),
      InPatient: types.InPatientCriteria{
        GeneralCoverages: extractSection(raw, inPatientGeneralFields, sectionGeneral),
        CaseCoverages:    extractSection(raw, inPatientCaseFields, sectionCase),
      },
      OutPatient: extractSection(raw, outPatientFields, sectionOutpatient),
    })
  }
  return out
}

// extractSection binds each canonical field to the column whose header
// contains both the field name and the right section marker. Headers are
// matched on the raw row because normalization would fold the section prefix
// into the field text.
func extractSection(raw map[string]any, fields []string, section criteriaSection) map[string]types.CoverageItem {
  coverages := make(map[string]types.CoverageItem, len(fields))
  for _, field := range fields {
    item := types.CoverageItem{}
    if header, found := findColumn(raw, field, section); found {
      item.Notes = CellString(raw[header])
    }
    coverages[field] = item
  }
  return coverages
}

func findColumn(raw map[string]any, field string, section criteriaSection) (string, bool) {
  target := normalizeHeaderText(field)
  headers := make([]string, 0, len(raw))
  for header := range raw {
    headers = append(headers, header)
  }
  sort.Strings(headers)
  for _, header := range headers {
    normalized := normalizeHeaderText(header)
    if !strings.Contains(normalized, target) {
      continue
    }
    if headerSectionMatches(normalized, section) {
      return header, true
    }
  }
  return "", false
}

// headerSectionMatches disambiguates the four field names shared between the
// case and out-patient lists: "In-Patient Case: Diagnostic Tests" and
// "Out-Patient: Diagnostic Tests" contain the same field text and differ only
// in their section marker.
func headerSectionMatches(normalized string, section criteriaSection) bool {
  hasGeneral := strings.Contains(normalized, "general")
  hasCase := strings.Contains(normalized, "case")
  hasOutpatient := strings.Contains(normalized, "outpatient") || strings.Contains(normalized, "out patient")
  switch section {
  case sectionGeneral:
    return hasGeneral
  case sectionCase:
    return hasCase && !hasGeneral
  case sectionOutpatient:
    return hasOutpatient
  }
  return false
}

// normalizeHeaderText lowercases and collapses separators to single spaces so
// punctuation and casing drift in hand-edited headers still matches.
func normalizeHeaderText(text string) string {
  normalized := strings.ToLower(text)
  for _, sep := range []string{"_", "-", ":", ",", "."} {
    normalized = strings.ReplaceAll(normalized, sep, " ")
  }
  return strings.Join(strings.Fields(normalized), " ")
}
