package types

import (
	"github.com/shopspring/decimal"
)

// Tariff is one priced eligibility band of a plan. Several rows may share the
// same age/class/family bounds and differ only in the outpatient tier; those
// rows are the selectable outpatient riders over one inpatient base.
type Tariff struct {
	TariffID uint           `gorm:"column:tariff_id;primaryKey;autoIncrement" json:"tariff_id"`
	PolicyID uint           `gorm:"column:policy_id;not null;index" json:"policy_id"`
	Plan     *InsurancePlan `gorm:"foreignKey:PolicyID;references:PolicyID" json:"plan,omitempty"`

	AgeMin    int    `gorm:"column:age_min;not null" json:"age_min"`
	AgeMax    int    `gorm:"column:age_max;not null" json:"age_max"`
	ClassType string `gorm:"column:class_type;size:50;not null" json:"class_type"`

	// FamilyType is a display label only; matching uses the min/max bounds.
	FamilyType string `gorm:"column:family_type;size:100" json:"family_type,omitempty"`
	FamilyMin  int    `gorm:"column:family_min;not null;default:1" json:"family_min"`
	FamilyMax  int    `gorm:"column:family_max;not null;default:1" json:"family_max"`

	InpatientUSD *decimal.Decimal `gorm:"column:inpatient_usd;type:numeric(10,2)" json:"inpatient_usd,omitempty"`
	TotalUSD     *decimal.Decimal `gorm:"column:total_usd;type:numeric(10,2)" json:"total_usd,omitempty"`

	// Fraction in [0,1]; nil means the row carries no outpatient tier.
	OutpatientCoveragePercentage *float64         `gorm:"column:outpatient_coverage_percentage" json:"outpatient_coverage_percentage,omitempty"`
	OutpatientPriceUSD           *decimal.Decimal `gorm:"column:outpatient_price_usd;type:numeric(10,2)" json:"outpatient_price_usd,omitempty"`
}

func (Tariff) TableName() string { return "tariffs" }

// TariffKey is the ingestion identity tuple: rows agreeing on every field are
// the same logical tariff and a re-upload updates instead of duplicating.
type TariffKey struct {
	PolicyID  uint
	AgeMin    int
	AgeMax    int
	ClassType string
	FamilyMin int
	FamilyMax int
	// -1 encodes a nil coverage fraction so the key stays comparable.
	OutpatientCoveragePercentage float64
}

func (t *Tariff) Key() TariffKey {
	frac := -1.0
	if t.OutpatientCoveragePercentage != nil {
		frac = *t.OutpatientCoveragePercentage
	}
	return TariffKey{
		PolicyID:                     t.PolicyID,
		AgeMin:                       t.AgeMin,
		AgeMax:                       t.AgeMax,
		ClassType:                    t.ClassType,
		FamilyMin:                    t.FamilyMin,
		FamilyMax:                    t.FamilyMax,
		OutpatientCoveragePercentage: frac,
	}
}
