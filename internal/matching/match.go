package matching

import (
  "errors"
  "sort"
  "strings"

  "github.com/shopspring/decimal"

  "github.com/coverbridge/coverbridge-backend/internal/normalization"
  "github.com/coverbridge/coverbridge-backend/internal/types"
)

const (
  InsuranceTypeIndividual = "individual"
  InsuranceTypeFamily     = "family"
)

// ErrFamilySizeRequired is a caller input error, not an empty-match condition.
var ErrFamilySizeRequired = errors.New("family_size is required for family insurance")

// Criteria is the applicant profile a quote request carries.
type Criteria struct {
  InsuranceType  string `json:"insurance_type" binding:"required"`
  InsuranceClass string `json:"insurance_class" binding:"required"`
  PrimaryAge     int    `json:"primary_age" binding:"required"`
  FamilySize     *int   `json:"family_size,omitempty"`
  FamilyAges     []int  `json:"family_ages,omitempty"`
}

// OutpatientOption is one selectable outpatient tier over a plan's base price.
type OutpatientOption struct {
  OutpatientCoveragePercentage float64          `json:"outpatient_coverage_percentage"`
  OutpatientPriceUSD           *decimal.Decimal `json:"outpatient_price_usd"`
  TariffID                     uint             `json:"tariff_id"`
}

// MatchedPlan pairs a plan with its cheapest eligible tariff and the menu of
// outpatient add-ons layered over it.
type MatchedPlan struct {
  Plan              *types.InsurancePlan `json:"policy"`
  MatchingTariff    *types.Tariff        `json:"matching_tariff"`
  OutpatientOptions []OutpatientOption   `json:"outpatient_options"`
}

// TariffSource supplies the tariff rows for one plan. Implemented by the
// tariff repo in production and by fixtures in tests.
type TariffSource interface {
  TariffsForPlan(policyID uint) ([]*types.Tariff, error)
}

// Match scans every plan's tariffs against the criteria. Plans with no
// eligible tariff are simply absent from the result; that is not an error.
func Match(criteria Criteria, plans []*types.InsurancePlan, source TariffSource) ([]MatchedPlan, error) {
  criteria.InsuranceType = normalization.ParseInputString(criteria.InsuranceType)
  criteria.InsuranceClass = normalization.ParseInputString(criteria.InsuranceClass)
  if criteria.InsuranceType == InsuranceTypeFamily && criteria.FamilySize == nil {
    return nil, ErrFamilySizeRequired
  }

  results := make([]MatchedPlan, 0, len(plans))
  for _, plan := range plans {
    tariffs, err := source.TariffsForPlan(plan.PolicyID)
    if err != nil {
      return nil, err
    }
    matched := matchingTariffs(criteria, tariffs)
    if len(matched) == 0 {
      continue
    }
    results = append(results, MatchedPlan{
      Plan:              plan,
      MatchingTariff:    baseTariff(matched),
      OutpatientOptions: outpatientOptions(matched),
    })
  }
  return results, nil
}

func matchingTariffs(criteria Criteria, tariffs []*types.Tariff) []*types.Tariff {
  var matched []*types.Tariff
  for _, tariff := range tariffs {
    if !strings.EqualFold(tariff.ClassType, criteria.InsuranceClass) {
      continue
    }
    if !familyFits(criteria, tariff) {
      continue
    }
    if !agesFit(criteria, tariff) {
      continue
    }
    matched = append(matched, tariff)
  }
  return matched
}

func familyFits(criteria Criteria, tariff *types.Tariff) bool {
  if criteria.InsuranceType == InsuranceTypeFamily {
    size := *criteria.FamilySize
    return tariff.FamilyMin <= size && size <= tariff.FamilyMax
  }
  // An individual can use any band whose family range includes 1.
  return tariff.FamilyMin <= 1 && 1 <= tariff.FamilyMax
}

// agesFit is all-or-nothing: one out-of-range family member disqualifies the
// band for the whole household.
func agesFit(criteria Criteria, tariff *types.Tariff) bool {
  if criteria.PrimaryAge < tariff.AgeMin || criteria.PrimaryAge > tariff.AgeMax {
    return false
  }
  if criteria.InsuranceType == InsuranceTypeFamily {
    for _, age := range criteria.FamilyAges {
      if age < tariff.AgeMin || age > tariff.AgeMax {
        return false
      }
    }
  }
  return true
}

func coverageFraction(tariff *types.Tariff) float64 {
  if tariff.OutpatientCoveragePercentage == nil {
    return 0.0
  }
  return *tariff.OutpatientCoveragePercentage
}

// baseTariff picks the lowest-fraction row, first-wins on ties, so the quote
// shows one inpatient base price with add-ons rather than one row per rider.
func baseTariff(matched []*types.Tariff) *types.Tariff {
  base := matched[0]
  for _, tariff := range matched[1:] {
    if coverageFraction(tariff) < coverageFraction(base) {
      base = tariff
    }
  }
  return base
}

func outpatientOptions(matched []*types.Tariff) []OutpatientOption {
  options := make([]OutpatientOption, 0, len(matched))
  for _, tariff := range matched {
    if tariff.OutpatientCoveragePercentage == nil || *tariff.OutpatientCoveragePercentage <= 0 {
      continue
    }
    options = append(options, OutpatientOption{
      OutpatientCoveragePercentage: *tariff.OutpatientCoveragePercentage,
      OutpatientPriceUSD:           tariff.OutpatientPriceUSD,
      TariffID:                     tariff.TariffID,
    })
  }
  sort.SliceStable(options, func(i, j int) bool {
    return options[i].OutpatientCoveragePercentage < options[j].OutpatientCoveragePercentage
  })
  return options
}
