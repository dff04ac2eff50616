package matching

import (
  "testing"

  "github.com/shopspring/decimal"

  "github.com/coverbridge/coverbridge-backend/internal/types"
)

type fixtureSource map[uint][]*types.Tariff

func (f fixtureSource) TariffsForPlan(policyID uint) ([]*types.Tariff, error) {
  return f[policyID], nil
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func decPtr(v string) *decimal.Decimal {
  d, err := decimal.NewFromString(v)
  if err != nil {
    panic(err)
  }
  return &d
}

func tariff(id, policyID uint, ageMin, ageMax int, class string, famMin, famMax int, fraction *float64, price *decimal.Decimal, outPrice *decimal.Decimal) *types.Tariff {
  return &types.Tariff{
    TariffID:                     id,
    PolicyID:                     policyID,
    AgeMin:                       ageMin,
    AgeMax:                       ageMax,
    ClassType:                    class,
    FamilyMin:                    famMin,
    FamilyMax:                    famMax,
    OutpatientCoveragePercentage: fraction,
    TotalUSD:                     price,
    OutpatientPriceUSD:           outPrice,
  }
}

func TestMatchIndividualBaseAndOption(t *testing.T) {
  plan := &types.InsurancePlan{PolicyID: 1, Name: "Silver"}
  source := fixtureSource{
    1: {
      tariff(10, 1, 18, 65, "A", 1, 1, nil, decPtr("100"), nil),
      tariff(11, 1, 18, 65, "A", 1, 1, floatPtr(0.85), decPtr("150"), decPtr("30")),
    },
  }

  results, err := Match(Criteria{
    InsuranceType:  InsuranceTypeIndividual,
    InsuranceClass: "a",
    PrimaryAge:     30,
  }, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(results) != 1 {
    t.Fatalf("expected 1 matched plan, got %d", len(results))
  }
  got := results[0]
  if got.MatchingTariff.TariffID != 10 {
    t.Fatalf("expected base tariff 10, got %d", got.MatchingTariff.TariffID)
  }
  if len(got.OutpatientOptions) != 1 {
    t.Fatalf("expected 1 outpatient option, got %d", len(got.OutpatientOptions))
  }
  option := got.OutpatientOptions[0]
  if option.OutpatientCoveragePercentage != 0.85 || option.TariffID != 11 {
    t.Fatalf("unexpected option %+v", option)
  }
  if option.OutpatientPriceUSD == nil || !option.OutpatientPriceUSD.Equal(decimal.NewFromInt(30)) {
    t.Fatalf("expected option price 30, got %v", option.OutpatientPriceUSD)
  }
}

func TestMatchFamilySizeOutOfRange(t *testing.T) {
  plan := &types.InsurancePlan{PolicyID: 1}
  source := fixtureSource{
    1: {tariff(10, 1, 18, 65, "A", 1, 1, nil, decPtr("100"), nil)},
  }

  results, err := Match(Criteria{
    InsuranceType:  InsuranceTypeFamily,
    InsuranceClass: "A",
    PrimaryAge:     30,
    FamilySize:     intPtr(3),
  }, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(results) != 0 {
    t.Fatalf("expected no matches, got %d", len(results))
  }
}

func TestMatchFamilySizeRequired(t *testing.T) {
  _, err := Match(Criteria{
    InsuranceType:  InsuranceTypeFamily,
    InsuranceClass: "A",
    PrimaryAge:     30,
  }, nil, fixtureSource{})
  if err != ErrFamilySizeRequired {
    t.Fatalf("expected ErrFamilySizeRequired, got %v", err)
  }
}

func TestMatchFamilyAgesAllOrNothing(t *testing.T) {
  plan := &types.InsurancePlan{PolicyID: 1}
  source := fixtureSource{
    1: {tariff(10, 1, 18, 65, "A", 1, 5, nil, decPtr("100"), nil)},
  }

  criteria := Criteria{
    InsuranceType:  InsuranceTypeFamily,
    InsuranceClass: "A",
    PrimaryAge:     40,
    FamilySize:     intPtr(3),
    FamilyAges:     []int{35, 70},
  }
  results, err := Match(criteria, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(results) != 0 {
    t.Fatalf("a 70yo dependent should disqualify the 18-65 band, got %d matches", len(results))
  }

  criteria.FamilyAges = []int{35, 12}
  results, err = Match(criteria, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(results) != 0 {
    t.Fatalf("a 12yo dependent is below the band, expected no matches")
  }

  criteria.FamilyAges = []int{35, 20}
  results, err = Match(criteria, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(results) != 1 {
    t.Fatalf("all ages inside the band, expected 1 match, got %d", len(results))
  }
}

func TestBaseTariffLowestFractionFirstWins(t *testing.T) {
  plan := &types.InsurancePlan{PolicyID: 1}
  source := fixtureSource{
    1: {
      tariff(20, 1, 18, 65, "B", 1, 1, floatPtr(0.5), decPtr("120"), decPtr("25")),
      tariff(21, 1, 18, 65, "B", 1, 1, floatPtr(0.85), decPtr("150"), decPtr("40")),
      tariff(22, 1, 18, 65, "B", 1, 1, floatPtr(0.5), decPtr("110"), decPtr("20")),
    },
  }

  results, err := Match(Criteria{
    InsuranceType:  InsuranceTypeIndividual,
    InsuranceClass: "B",
    PrimaryAge:     25,
  }, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  got := results[0]
  // No 0%/null row exists, so the lowest nonzero fraction is the base; the
  // first of the two 0.5 rows wins the tie.
  if got.MatchingTariff.TariffID != 20 {
    t.Fatalf("expected first 0.5 row (20) as base, got %d", got.MatchingTariff.TariffID)
  }

  if len(got.OutpatientOptions) != 3 {
    t.Fatalf("expected 3 options, got %d", len(got.OutpatientOptions))
  }
  for i := 1; i < len(got.OutpatientOptions); i++ {
    if got.OutpatientOptions[i-1].OutpatientCoveragePercentage > got.OutpatientOptions[i].OutpatientCoveragePercentage {
      t.Fatalf("options not sorted ascending: %+v", got.OutpatientOptions)
    }
  }
}

func TestOutpatientOptionsExcludeZeroFraction(t *testing.T) {
  plan := &types.InsurancePlan{PolicyID: 1}
  source := fixtureSource{
    1: {
      tariff(30, 1, 0, 99, "C", 1, 1, floatPtr(0), decPtr("90"), nil),
      tariff(31, 1, 0, 99, "C", 1, 1, nil, decPtr("95"), nil),
      tariff(32, 1, 0, 99, "C", 1, 1, floatPtr(0.6), decPtr("130"), decPtr("35")),
    },
  }

  results, err := Match(Criteria{
    InsuranceType:  InsuranceTypeIndividual,
    InsuranceClass: "c",
    PrimaryAge:     50,
  }, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  got := results[0]
  if len(got.OutpatientOptions) != 1 || got.OutpatientOptions[0].TariffID != 32 {
    t.Fatalf("zero and null fractions must not become options: %+v", got.OutpatientOptions)
  }
}

func TestMatchClassMismatchProducesNoResult(t *testing.T) {
  plan := &types.InsurancePlan{PolicyID: 1}
  source := fixtureSource{
    1: {tariff(40, 1, 18, 65, "A", 1, 1, nil, decPtr("100"), nil)},
  }

  results, err := Match(Criteria{
    InsuranceType:  InsuranceTypeIndividual,
    InsuranceClass: "B",
    PrimaryAge:     30,
  }, []*types.InsurancePlan{plan}, source)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(results) != 0 {
    t.Fatalf("expected no matches for class B, got %d", len(results))
  }
}
