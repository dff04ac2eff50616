package ingest

import (
  "context"
  "fmt"

  "github.com/coverbridge/coverbridge-backend/internal/types"
)

// TariffSink is the persistence boundary of tariff ingestion. The service
// layer backs it with the tariff repo; tests back it with an in-memory store.
type TariffSink interface {
  // PlanIDs returns the set of existing plan ids for referential validation.
  PlanIDs(ctx context.Context) (map[uint]struct{}, error)
  // ExistingTariffs loads every stored tariff so deduplication runs against
  // an in-memory index instead of one query per row.
  ExistingTariffs(ctx context.Context) ([]*types.Tariff, error)
  // CommitBatch persists staged rows in one transaction. Created rows must
  // have their ids filled in on return.
  CommitBatch(ctx context.Context, created, updated []*types.Tariff) error
}

// IngestTariffs runs the tariff upload pipeline over parsed rows: normalize
// keys, coerce types, validate, deduplicate against the identity tuple and
// upsert in commit batches. Row-level failures are recorded and skipped; a
// failed batch commit aborts the upload, and the returned result reflects
// only what was committed before the failure.
func IngestTariffs(ctx context.Context, rows []map[string]any, sink TariffSink) (*UploadResult, error) {
  result := &UploadResult{}
  var errs []string

  planIDs, err := sink.PlanIDs(ctx)
  if err != nil {
    return nil, fmt.Errorf("load plan ids: %w", err)
  }
  existing, err := sink.ExistingTariffs(ctx)
  if err != nil {
    return nil, fmt.Errorf("load existing tariffs: %w", err)
  }
  index := make(map[types.TariffKey]*types.Tariff, len(existing))
  for _, tariff := range existing {
    index[tariff.Key()] = tariff
  }

  var (
    created, updated int
    committedCreated int
    committedUpdated int
    pendingCreated   []*types.Tariff
    pendingUpdated   []*types.Tariff
    stagedUpdates    = make(map[uint]struct{})
  )

  commit := func(rowNum int) error {
    if err := sink.CommitBatch(ctx, pendingCreated, pendingUpdated); err != nil {
      errs = append(errs, fmt.Sprintf("Row %d: failed to commit batch: %v", rowNum, err))
      result.RecordsCreated = committedCreated
      result.RecordsUpdated = committedUpdated
      result.finalize(errs)
      return err
    }
    committedCreated = created
    committedUpdated = updated
    pendingCreated = pendingCreated[:0]
    pendingUpdated = pendingUpdated[:0]
    stagedUpdates = make(map[uint]struct{})
    return nil
  }

  for idx, raw := range rows {
    rowNum := idx + 1
    result.RecordsProcessed++

    row := NormalizeKeys(raw)

    policyID, policyOK := SafeInt(row["policy_id"], 0)
    ageMin, ageMinOK := SafeInt(row["age_min"], 0)
    ageMax, ageMaxOK := SafeInt(row["age_max"], 0)
    classType := CellString(row["class_type"])

    if !policyOK {
      errs = append(errs, fmt.Sprintf("Row %d: policy_id is required and must be a valid integer", rowNum))
      continue
    }
    if !ageMinOK {
      errs = append(errs, fmt.Sprintf("Row %d: age_min is required and must be a valid integer", rowNum))
      continue
    }
    if !ageMaxOK {
      errs = append(errs, fmt.Sprintf("Row %d: age_max is required and must be a valid integer", rowNum))
      continue
    }
    if classType == "" {
      errs = append(errs, fmt.Sprintf("Row %d: class_type is required", rowNum))
      continue
    }
    if _, found := planIDs[uint(policyID)]; !found {
      errs = append(errs, fmt.Sprintf("Row %d: policy with id %d does not exist", rowNum, policyID))
      continue
    }

    familyMin, _ := SafeInt(row["family_min"], 1)
    familyMax, _ := SafeInt(row["family_max"], 1)

    incoming := &types.Tariff{
      PolicyID:                     uint(policyID),
      AgeMin:                       ageMin,
      AgeMax:                       ageMax,
      ClassType:                    classType,
      FamilyType:                   CellString(row["family_type"]),
      FamilyMin:                    familyMin,
      FamilyMax:                    familyMax,
      InpatientUSD:                 SafeDecimal(row["inpatient_usd"]),
      TotalUSD:                     SafeDecimal(row["total_usd"]),
      OutpatientCoveragePercentage: SafePercentage(row["outpatient_coverage_percentage"]),
      OutpatientPriceUSD:           SafeDecimal(row["outpatient_price_usd"]),
    }

    if found := index[incoming.Key()]; found != nil {
      found.FamilyType = incoming.FamilyType
      found.InpatientUSD = incoming.InpatientUSD
      found.TotalUSD = incoming.TotalUSD
      found.OutpatientCoveragePercentage = incoming.OutpatientCoveragePercentage
      found.OutpatientPriceUSD = incoming.OutpatientPriceUSD
      updated++
      // A row created earlier in this upload is still in pendingCreated;
      // mutating it in place is enough. Only stored rows need a save.
      if found.TariffID != 0 {
        if _, staged := stagedUpdates[found.TariffID]; !staged {
          pendingUpdated = append(pendingUpdated, found)
          stagedUpdates[found.TariffID] = struct{}{}
        }
      }
    } else {
      index[incoming.Key()] = incoming
      pendingCreated = append(pendingCreated, incoming)
      created++
    }

    if total := created + updated; total > 0 && total%BatchSize == 0 {
      if err := commit(rowNum); err != nil {
        return result, fmt.Errorf("commit batch: %w", err)
      }
    }
  }

  if len(pendingCreated) > 0 || len(pendingUpdated) > 0 {
    if err := commit(len(rows)); err != nil {
      return result, fmt.Errorf("commit remaining records: %w", err)
    }
  }

  result.RecordsCreated = created
  result.RecordsUpdated = updated
  result.finalize(errs)
  return result, nil
}
