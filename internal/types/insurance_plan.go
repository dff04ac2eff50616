package types

import (
	"github.com/shopspring/decimal"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

type InsurancePlan struct {
	PolicyID          uint             `gorm:"column:policy_id;primaryKey;autoIncrement" json:"policy_id"`
	TypeID            uint             `gorm:"column:type_id;not null;index" json:"type_id"`
	InsuranceType     *InsuranceType   `gorm:"foreignKey:TypeID;references:TypeID" json:"insurance_type,omitempty"`
	ProviderID        uint             `gorm:"column:provider_id;not null;index" json:"provider_id"`
	Provider          *Provider        `gorm:"foreignKey:ProviderID;references:ProviderID" json:"provider,omitempty"`
	Name              string           `gorm:"column:name;size:150;not null" json:"name"`
	Description       string           `gorm:"column:description;type:text" json:"description,omitempty"`
	CoverageSummary   string           `gorm:"column:coverage_summary;type:text" json:"coverage_summary,omitempty"`
	ExclusionsSummary string           `gorm:"column:exclusions_summary;type:text" json:"exclusions_summary,omitempty"`
	Premium           *decimal.Decimal `gorm:"column:premium;type:numeric(10,2)" json:"premium,omitempty"`
	Duration          string           `gorm:"column:duration;size:50" json:"duration,omitempty"`
	Status            PlanStatus       `gorm:"column:status;size:20;not null;default:'active'" json:"status"`
	ContractPDFURL    string           `gorm:"column:contract_pdf_url;size:255" json:"contract_pdf_url,omitempty"`
}

func (InsurancePlan) TableName() string { return "insurance_plans" }
