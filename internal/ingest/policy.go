package ingest

import (
  "context"
  "fmt"

  "github.com/coverbridge/coverbridge-backend/internal/types"
)

// PolicySink is the persistence boundary of the policies upload path.
type PolicySink interface {
  ProviderIDs(ctx context.Context) (map[uint]struct{}, error)
  TypeIDs(ctx context.Context) (map[uint]struct{}, error)
  // FindByNameAndProvider returns nil, nil when no plan matches; a plan is
  // identified across uploads by its name within one provider.
  FindByNameAndProvider(ctx context.Context, name string, providerID uint) (*types.InsurancePlan, error)
  Create(ctx context.Context, plan *types.InsurancePlan) error
  Update(ctx context.Context, plan *types.InsurancePlan) error
}

// IngestPolicies upserts plan rows keyed by (name, provider_id). Existing
// plans only have non-blank incoming fields applied, so a sparse refresh file
// cannot blank out catalog copy.
func IngestPolicies(ctx context.Context, rows []map[string]any, sink PolicySink) (*UploadResult, error) {
  result := &UploadResult{}
  var errs []string

  providerIDs, err := sink.ProviderIDs(ctx)
  if err != nil {
    return nil, fmt.Errorf("load provider ids: %w", err)
  }
  typeIDs, err := sink.TypeIDs(ctx)
  if err != nil {
    return nil, fmt.Errorf("load type ids: %w", err)
  }

  for idx, raw := range rows {
    rowNum := idx + 1
    result.RecordsProcessed++

    row := NormalizeKeys(raw)

    name := CellString(row["name"])
    typeID, typeOK := SafeInt(row["type_id"], 0)
    providerID, providerOK := SafeInt(row["provider_id"], 0)

    if name == "" {
      errs = append(errs, fmt.Sprintf("Row %d: name is required", rowNum))
      continue
    }
    if !typeOK {
      errs = append(errs, fmt.Sprintf("Row %d: type_id is required and must be a valid integer", rowNum))
      continue
    }
    if !providerOK {
      errs = append(errs, fmt.Sprintf("Row %d: provider_id is required and must be a valid integer", rowNum))
      continue
    }
    if _, found := typeIDs[uint(typeID)]; !found {
      errs = append(errs, fmt.Sprintf("Row %d: insurance type with id %d does not exist", rowNum, typeID))
      continue
    }
    if _, found := providerIDs[uint(providerID)]; !found {
      errs = append(errs, fmt.Sprintf("Row %d: provider with id %d does not exist", rowNum, providerID))
      continue
    }

    status := types.PlanStatus(CellString(row["status"]))
    if status == "" {
      status = types.PlanStatusActive
    }

    incoming := &types.InsurancePlan{
      TypeID:            uint(typeID),
      ProviderID:        uint(providerID),
      Name:              name,
      Description:       CellString(row["description"]),
      CoverageSummary:   CellString(row["coverage_summary"]),
      ExclusionsSummary: CellString(row["exclusions_summary"]),
      Premium:           SafeDecimal(row["premium"]),
      Duration:          CellString(row["duration"]),
      Status:            status,
      ContractPDFURL:    CellString(row["contract_pdf_url"]),
    }

    existing, err := sink.FindByNameAndProvider(ctx, name, uint(providerID))
    if err != nil {
      errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
      continue
    }
    if existing != nil {
      applyPlanUpdate(existing, incoming)
      if err := sink.Update(ctx, existing); err != nil {
        errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
        continue
      }
      result.RecordsUpdated++
    } else {
      if err := sink.Create(ctx, incoming); err != nil {
        errs = append(errs, fmt.Sprintf("Row %d: %v", rowNum, err))
        continue
      }
      result.RecordsCreated++
    }
  }

  result.finalize(errs)
  return result, nil
}

// applyPlanUpdate copies only present incoming fields onto the stored plan.
func applyPlanUpdate(existing, incoming *types.InsurancePlan) {
  existing.TypeID = incoming.TypeID
  existing.Status = incoming.Status
  if incoming.Description != "" {
    existing.Description = incoming.Description
  }
  if incoming.CoverageSummary != "" {
    existing.CoverageSummary = incoming.CoverageSummary
  }
  if incoming.ExclusionsSummary != "" {
    existing.ExclusionsSummary = incoming.ExclusionsSummary
  }
  if incoming.Premium != nil {
    existing.Premium = incoming.Premium
  }
  if incoming.Duration != "" {
    existing.Duration = incoming.Duration
  }
  if incoming.ContractPDFURL != "" {
    existing.ContractPDFURL = incoming.ContractPDFURL
  }
}
