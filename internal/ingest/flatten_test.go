package ingest

import (
  "testing"
)

func TestFlattenCriteriaSectionBinding(t *testing.T) {
  rows := []map[string]any{
    {
      "Policy ID": "1",
      "In-Patient General: Annual Limit - Notes":    "up to 250,000 USD",
      "In-Patient Case: Diagnostic Tests - Notes":   "in-patient only",
      "Out-Patient: Diagnostic Tests - Notes":       "requires pre-approval",
      "Out-Patient: Outpatient Annual Limit - Notes": "5,000 USD",
    },
  }

  out := FlattenCriteria(rows)
  if len(out) != 1 {
    t.Fatalf("expected 1 flattened row, got %d", len(out))
  }
  entry := out[0]
  if entry.PolicyID != 1 {
    t.Fatalf("unexpected policy id %d", entry.PolicyID)
  }
  if got := entry.InPatient.GeneralCoverages["annual_limit"].Notes; got != "up to 250,000 USD" {
    t.Errorf("general annual_limit notes = %q", got)
  }
  // The same field name exists in both the case and out-patient lists; each
  // must bind to the column carrying its own section marker.
  if got := entry.InPatient.CaseCoverages["diagnostic_tests"].Notes; got != "in-patient only" {
    t.Errorf("case diagnostic_tests notes = %q", got)
  }
  if got := entry.OutPatient["diagnostic_tests"].Notes; got != "requires pre-approval" {
    t.Errorf("outpatient diagnostic_tests notes = %q", got)
  }
  if got := entry.OutPatient["outpatient_annual_limit"].Notes; got != "5,000 USD" {
    t.Errorf("outpatient annual limit notes = %q", got)
  }
}

func TestFlattenCriteriaToleratesHeaderDrift(t *testing.T) {
  rows := []map[string]any{
    {
      "policy_id": 2,
      "in-patient general: WAITING PERIOD - notes": "90 days",
      "Out Patient: Outpatient Network Notes":      "network B",
    },
  }

  out := FlattenCriteria(rows)
  if len(out) != 1 {
    t.Fatalf("expected 1 row, got %d", len(out))
  }
  if got := out[0].InPatient.GeneralCoverages["waiting_period"].Notes; got != "90 days" {
    t.Errorf("waiting_period notes = %q", got)
  }
  if got := out[0].OutPatient["outpatient_network"].Notes; got != "network B" {
    t.Errorf("outpatient_network notes = %q", got)
  }
}

func TestFlattenCriteriaSkipsRowsWithoutPolicyID(t *testing.T) {
  rows := []map[string]any{
    {"In-Patient General: Network - Notes": "network A"},
    {"Policy ID": "", "In-Patient General: Network - Notes": "network B"},
    {"Policy ID": "3", "In-Patient General: Network - Notes": "network C"},
  }

  out := FlattenCriteria(rows)
  if len(out) != 1 {
    t.Fatalf("rows without policy_id must be dropped silently, got %d", len(out))
  }
  if out[0].PolicyID != 3 {
    t.Fatalf("unexpected surviving row %+v", out[0])
  }
}

func TestFlattenCriteriaUnmatchedColumnsDefaultEmpty(t *testing.T) {
  rows := []map[string]any{
    {"Policy ID": "1"},
  }

  out := FlattenCriteria(rows)
  entry := out[0]
  if len(entry.InPatient.GeneralCoverages) != len(inPatientGeneralFields) {
    t.Fatalf("every general field must be present, got %d", len(entry.InPatient.GeneralCoverages))
  }
  if len(entry.InPatient.CaseCoverages) != len(inPatientCaseFields) {
    t.Fatalf("every case field must be present, got %d", len(entry.InPatient.CaseCoverages))
  }
  if len(entry.OutPatient) != len(outPatientFields) {
    t.Fatalf("every outpatient field must be present, got %d", len(entry.OutPatient))
  }
  for field, item := range entry.OutPatient {
    if item.Notes != "" {
      t.Errorf("field %s should default to empty notes, got %q", field, item.Notes)
    }
  }
}
