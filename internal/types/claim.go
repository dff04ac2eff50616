package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClaimStatus string

const (
	ClaimSubmitted ClaimStatus = "submitted"
	ClaimInReview  ClaimStatus = "in_review"
	ClaimApproved  ClaimStatus = "approved"
	ClaimRejected  ClaimStatus = "rejected"
)

type Claim struct {
	ClaimID      uint             `gorm:"column:claim_id;primaryKey;autoIncrement" json:"claim_id"`
	UserPolicyID uint             `gorm:"column:user_policy_id;not null;index" json:"user_policy_id"`
	UserPolicy   *UserPolicy      `gorm:"foreignKey:UserPolicyID;references:UserPolicyID" json:"user_policy,omitempty"`
	DateFiled    time.Time        `gorm:"column:date_filed;type:date;not null;default:CURRENT_TIMESTAMP" json:"date_filed"`
	ClaimAmount  *decimal.Decimal `gorm:"column:claim_amount;type:numeric(10,2)" json:"claim_amount,omitempty"`
	Status       ClaimStatus      `gorm:"column:status;size:20;not null;default:'submitted'" json:"status"`
	Description  string           `gorm:"column:description;type:text" json:"description,omitempty"`
}

func (Claim) TableName() string { return "claims" }
