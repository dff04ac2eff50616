package ingest

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "testing"

  "github.com/coverbridge/coverbridge-backend/internal/types"
)

// memorySink is an in-memory TariffSink with the same commit semantics as the
// repo-backed one: staged rows only become visible after CommitBatch.
type memorySink struct {
  planIDs   map[uint]struct{}
  stored    []*types.Tariff
  nextID    uint
  commits   int
  failAfter int // fail the Nth commit when > 0
}

func newMemorySink(planIDs ...uint) *memorySink {
  ids := make(map[uint]struct{}, len(planIDs))
  for _, id := range planIDs {
    ids[id] = struct{}{}
  }
  return &memorySink{planIDs: ids, nextID: 1}
}

func (s *memorySink) PlanIDs(ctx context.Context) (map[uint]struct{}, error) {
  return s.planIDs, nil
}

func (s *memorySink) ExistingTariffs(ctx context.Context) ([]*types.Tariff, error) {
  return s.stored, nil
}

func (s *memorySink) CommitBatch(ctx context.Context, created, updated []*types.Tariff) error {
  s.commits++
  if s.failAfter > 0 && s.commits >= s.failAfter {
    return errors.New("connection reset")
  }
  for _, tariff := range created {
    tariff.TariffID = s.nextID
    s.nextID++
    s.stored = append(s.stored, tariff)
  }
  return nil
}

func tariffRow(policyID, ageMin, ageMax any, class string, extras map[string]any) map[string]any {
  row := map[string]any{
    "policy_id":  policyID,
    "age_min":    ageMin,
    "age_max":    ageMax,
    "class_type": class,
  }
  for k, v := range extras {
    row[k] = v
  }
  return row
}

func TestIngestTariffsCreatesRows(t *testing.T) {
  sink := newMemorySink(1)
  rows := []map[string]any{
    tariffRow("1", "18", "65", "A", map[string]any{"total_usd": "100"}),
    tariffRow("1", "18", "65", "A", map[string]any{
      "total_usd":                      "150",
      "outpatient_coverage_percentage": "85",
      "outpatient_price_usd":           "30",
    }),
  }

  result, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if result.RecordsProcessed != 2 || result.RecordsCreated != 2 || result.RecordsUpdated != 0 {
    t.Fatalf("unexpected result %+v", result)
  }
  if len(result.Errors) != 0 {
    t.Fatalf("unexpected errors: %v", result.Errors)
  }
  if len(sink.stored) != 2 {
    t.Fatalf("expected 2 stored tariffs, got %d", len(sink.stored))
  }
  second := sink.stored[1]
  if second.OutpatientCoveragePercentage == nil || *second.OutpatientCoveragePercentage != 0.85 {
    t.Fatalf("percentage not normalized: %v", second.OutpatientCoveragePercentage)
  }
}

func TestIngestTariffsNonNumericAgeMin(t *testing.T) {
  sink := newMemorySink(1)
  rows := []map[string]any{
    tariffRow("1", "thirty", "65", "A", nil),
  }

  result, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if result.RecordsProcessed != 1 || result.RecordsCreated != 0 {
    t.Fatalf("unexpected result %+v", result)
  }
  if len(result.Errors) != 1 || result.Errors[0] != "Row 1: age_min is required and must be a valid integer" {
    t.Fatalf("unexpected errors: %v", result.Errors)
  }
}

func TestIngestTariffsIdempotent(t *testing.T) {
  sink := newMemorySink(1)
  rows := []map[string]any{
    tariffRow("1", "18", "65", "A", map[string]any{"total_usd": "100", "family_type": "Individual"}),
    tariffRow("1", "18", "65", "B", map[string]any{"total_usd": "120"}),
    tariffRow("1", "0", "17", "A", map[string]any{"total_usd": "80"}),
  }

  first, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("first pass: %v", err)
  }
  if first.RecordsCreated != 3 || first.RecordsUpdated != 0 {
    t.Fatalf("first pass result %+v", first)
  }

  second, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("second pass: %v", err)
  }
  if second.RecordsCreated != 0 || second.RecordsUpdated != 3 {
    t.Fatalf("second pass must update, not duplicate: %+v", second)
  }
  if len(sink.stored) != 3 {
    t.Fatalf("expected 3 stored tariffs after re-upload, got %d", len(sink.stored))
  }
}

func TestIngestTariffsDedupeWithinUpload(t *testing.T) {
  sink := newMemorySink(1)
  // Same identity tuple, different label and price: one row, last write wins.
  rows := []map[string]any{
    tariffRow("1", "18", "65", "A", map[string]any{"total_usd": "100", "family_type": "Single"}),
    tariffRow("1", "18", "65", "A", map[string]any{"total_usd": "110", "family_type": "Individual"}),
  }

  result, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if result.RecordsCreated != 1 || result.RecordsUpdated != 1 {
    t.Fatalf("expected 1 created + 1 updated, got %+v", result)
  }
  if len(sink.stored) != 1 {
    t.Fatalf("expected a single stored row, got %d", len(sink.stored))
  }
  stored := sink.stored[0]
  if stored.FamilyType != "Individual" || stored.TotalUSD == nil || stored.TotalUSD.String() != "110" {
    t.Fatalf("second row's fields must win: %+v", stored)
  }
}

func TestIngestTariffsUnknownPolicy(t *testing.T) {
  sink := newMemorySink(1)
  rows := []map[string]any{
    tariffRow("99", "18", "65", "A", nil),
  }

  result, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(result.Errors) != 1 || result.Errors[0] != "Row 1: policy with id 99 does not exist" {
    t.Fatalf("unexpected errors: %v", result.Errors)
  }
}

func TestIngestTariffsPlanIDAlias(t *testing.T) {
  sink := newMemorySink(1)
  rows := []map[string]any{
    {"Plan ID": "1", "Age Min": "18", "Age Max": "65", "Class Type": "A"},
  }

  result, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if result.RecordsCreated != 1 {
    t.Fatalf("legacy headers should still ingest: %+v", result)
  }
}

func TestIngestTariffsErrorCapAndSummary(t *testing.T) {
  sink := newMemorySink(1)
  rows := make([]map[string]any, 0, 120)
  for i := 0; i < 120; i++ {
    rows = append(rows, tariffRow("1", "bad", "65", "A", nil))
  }

  result, err := IngestTariffs(context.Background(), rows, sink)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(result.Errors) != maxDetailedErrors+1 {
    t.Fatalf("expected %d capped errors, got %d", maxDetailedErrors+1, len(result.Errors))
  }
  last := result.Errors[len(result.Errors)-1]
  if last != "... and 20 more errors (see summary below)" {
    t.Fatalf("unexpected overflow line: %q", last)
  }
  if !strings.Contains(result.Message, "Error Summary:") {
    t.Fatalf("message lacks summary: %q", result.Message)
  }
  if !strings.Contains(result.Message, "age_min is required and must be a valid integer: 120 occurrences") {
    t.Fatalf("message lacks grouped count: %q", result.Message)
  }
}

func TestIngestTariffsBatchCommitFailure(t *testing.T) {
  sink := newMemorySink(1)
  sink.failAfter = 1

  rows := make([]map[string]any, 0, BatchSize)
  for i := 0; i < BatchSize; i++ {
    rows = append(rows, tariffRow("1", fmt.Sprintf("%d", i), "200", "A", nil))
  }

  result, err := IngestTariffs(context.Background(), rows, sink)
  if err == nil {
    t.Fatal("expected a fatal commit error")
  }
  // Nothing was committed, so counts must not claim otherwise.
  if result.RecordsCreated != 0 || result.RecordsUpdated != 0 {
    t.Fatalf("counts must reflect committed work only: %+v", result)
  }
}
