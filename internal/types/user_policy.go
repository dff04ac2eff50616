package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserPolicyStatus string

const (
	UserPolicyActive         UserPolicyStatus = "active"
	UserPolicyExpired        UserPolicyStatus = "expired"
	UserPolicyPendingPayment UserPolicyStatus = "pending_payment"
)

type UserPolicy struct {
	UserPolicyID      uint                   `gorm:"column:user_policy_id;primaryKey;autoIncrement" json:"user_policy_id"`
	UserID            uint                   `gorm:"column:user_id;not null;index" json:"user_id"`
	User              *User                  `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	PolicyID          uint                   `gorm:"column:policy_id;not null;index" json:"policy_id"`
	Plan              *InsurancePlan         `gorm:"foreignKey:PolicyID;references:PolicyID" json:"policy,omitempty"`
	VersionID         *uint                  `gorm:"column:version_id" json:"version_id,omitempty"`
	Version           *PolicyDocumentVersion `gorm:"foreignKey:VersionID;references:VersionID" json:"version,omitempty"`
	StartDate         *time.Time             `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate           *time.Time             `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	PolicyNumber      string                 `gorm:"column:policy_number;size:100" json:"policy_number,omitempty"`
	PremiumPaid       *decimal.Decimal       `gorm:"column:premium_paid;type:numeric(10,2)" json:"premium_paid,omitempty"`
	Status            UserPolicyStatus       `gorm:"column:status;size:20;not null;default:'pending_payment'" json:"status"`
	SignedContractURL string                 `gorm:"column:signed_contract_url;size:255" json:"signed_contract_url,omitempty"`
	IssuedAt          time.Time              `gorm:"column:issued_at;not null;default:CURRENT_TIMESTAMP" json:"issued_at"`
}

func (UserPolicy) TableName() string { return "user_policies" }
