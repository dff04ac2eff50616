package ingest

import (
  "context"
  "encoding/json"
  "fmt"

  "github.com/coverbridge/coverbridge-backend/internal/types"
)

// CriteriaSink is the persistence boundary of the criteria upload path.
type CriteriaSink interface {
  PlanIDs(ctx context.Context) (map[uint]struct{}, error)
  // FindByPolicyID returns nil, nil when the plan has no stored criteria.
  FindByPolicyID(ctx context.Context, policyID uint) (*types.PlanCriteria, error)
  Create(ctx context.Context, criteria *types.PlanCriteria) error
  Update(ctx context.Context, criteria *types.PlanCriteria) error
}

// CriteriaFromJSON converts a nested JSON upload into flat entries. Each row
// must carry policy_id plus both criteria documents; structural problems are
// returned as row errors alongside the usable entries.
func CriteriaFromJSON(rows []map[string]any) ([]FlatCriteria, []string) {
  var entries []FlatCriteria
  var errs []string
  for idx, raw := range rows {
    rowNum := idx + 1
    row := NormalizeKeys(raw)

    policyID, ok := SafeInt(row["policy_id"], 0)
    if !ok || policyID <= 0 {
      errs = append(errs, fmt.Sprintf("Row %d: policy_id is required and must be a valid integer", rowNum))
      continue
    }
    inRaw, found := row["criteria_data"]
    if !found {
      errs = append(errs, fmt.Sprintf("Row %d: Missing required field: criteria_data", rowNum))
      continue
    }
    outRaw, found := row["outpatient_criteria_data"]
    if !found {
      errs = append(errs, fmt.Sprintf("Row %d: Missing required field: outpatient_criteria_data", rowNum))
      continue
    }

    var inPatient types.InPatientCriteria
    if err := reencode(inRaw, &inPatient); err != nil {
      errs = append(errs, fmt.Sprintf("Row %d: invalid criteria_data: %v", rowNum, err))
      continue
    }
    var outPatient types.OutPatientCriteria
    if err := reencode(outRaw, &outPatient); err != nil {
      errs = append(errs, fmt.Sprintf("Row %d: invalid outpatient_criteria_data: %v", rowNum, err))
      continue
    }

    entries = append(entries, FlatCriteria{
      PolicyID:   uint(policyID),
      InPatient:  inPatient,
      OutPatient: outPatient,
    })
  }
  return entries, errs
}

func reencode(value any, target any) error {
  data, err := json.Marshal(value)
  if err != nil {
    return err
  }
  return json.Unmarshal(data, target)
}

// IngestCriteria upserts one PlanCriteria row per entry, keyed by policy_id.
// priorErrs carries row errors surfaced while the file was being converted to
// entries, so they land in the same result.
func IngestCriteria(ctx context.Context, entries []FlatCriteria, priorErrs []string, sink CriteriaSink) (*UploadResult, error) {
  result := &UploadResult{}
  errs := append([]string(nil), priorErrs...)

  planIDs, err := sink.PlanIDs(ctx)
  if err != nil {
    return nil, fmt.Errorf("load plan ids: %w", err)
  }

  for idx, entry := range entries {
    rowNum := idx + 1
    result.RecordsProcessed++

    if _, found := planIDs[entry.PolicyID]; !found {
      errs = append(errs, fmt.Sprintf("Row %d: policy with id %d does not exist", rowNum, entry.PolicyID))
      continue
    }

    inData, err := json.Marshal(entry.InPatient)
    if err != nil {
      errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
      continue
    }
    outData, err := json.Marshal(entry.OutPatient)
    if err != nil {
      errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
      continue
    }

    existing, err := sink.FindByPolicyID(ctx, entry.PolicyID)
    if err != nil {
      errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
      continue
    }
    if existing != nil {
      existing.CriteriaData = inData
      existing.OutpatientCriteriaData = outData
      if err := sink.Update(ctx, existing); err != nil {
        errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
        continue
      }
      result.RecordsUpdated++
    } else {
      criteria := &types.PlanCriteria{
        PolicyID:               entry.PolicyID,
        CriteriaData:           inData,
        OutpatientCriteriaData: outData,
      }
      if err := sink.Create(ctx, criteria); err != nil {
        errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
        continue
      }
      result.RecordsCreated++
    }
  }

  result.finalize(errs)
  return result, nil
}
