package types

import (
	"gorm.io/datatypes"
)

// PlanCriteria stores the two criteria documents as jsonb. The documents are
// independent: criteria_data nests general + case in-patient coverages,
// outpatient_criteria_data is a flat coverage map.
type PlanCriteria struct {
	CriteriaID             uint           `gorm:"column:criteria_id;primaryKey;autoIncrement" json:"criteria_id"`
	PolicyID               uint           `gorm:"column:policy_id;not null;uniqueIndex" json:"policy_id"`
	Plan                   *InsurancePlan `gorm:"foreignKey:PolicyID;references:PolicyID" json:"plan,omitempty"`
	CriteriaData           datatypes.JSON `gorm:"column:criteria_data;type:jsonb" json:"criteria_data"`
	OutpatientCriteriaData datatypes.JSON `gorm:"column:outpatient_criteria_data;type:jsonb" json:"outpatient_criteria_data"`
}

func (PlanCriteria) TableName() string { return "plan_criteria" }

// CoverageItem is the leaf schema for every coverage entry. Spreadsheet-driven
// uploads only ever populate Notes; the other fields keep their defaults.
type CoverageItem struct {
	CoverageType      string   `json:"coverage_type"`
	CoverageAmount    *float64 `json:"coverage_amount"`
	Currency          string   `json:"currency"`
	WaitingPeriodDays *int     `json:"waiting_period_days"`
	Notes             string   `json:"notes"`
}

// InPatientCriteria is the nested in-patient document.
type InPatientCriteria struct {
	GeneralCoverages map[string]CoverageItem `json:"general_coverages"`
	CaseCoverages    map[string]CoverageItem `json:"case_coverages"`
}

// OutPatientCriteria is the flat out-patient document.
type OutPatientCriteria map[string]CoverageItem
