package types

import (
	"time"
)

type RequirementLevel string

const (
	RequirementMandatoryForQuote        RequirementLevel = "mandatory_for_quote"
	RequirementRequiredBySome           RequirementLevel = "required_by_some"
	RequirementMandatoryForUnderwriting RequirementLevel = "mandatory_for_underwriting"
	RequirementOptionalBoost            RequirementLevel = "optional_boost"
)

type RequiredDocument struct {
	DocID              uint   `gorm:"column:doc_id;primaryKey;autoIncrement" json:"doc_id"`
	Name               string `gorm:"column:name;size:150;not null" json:"name"`
	Description        string `gorm:"column:description;type:text" json:"description,omitempty"`
	FileType           string `gorm:"column:file_type;size:50" json:"file_type,omitempty"`
	UploadInstructions string `gorm:"column:upload_instructions;type:text" json:"upload_instructions,omitempty"`
}

func (RequiredDocument) TableName() string { return "required_documents" }

type PolicyDocumentRequirement struct {
	PolicyDocID      uint              `gorm:"column:policy_doc_id;primaryKey;autoIncrement" json:"policy_doc_id"`
	PolicyID         uint              `gorm:"column:policy_id;not null;index" json:"policy_id"`
	DocID            uint              `gorm:"column:doc_id;not null;index" json:"doc_id"`
	Document         *RequiredDocument `gorm:"foreignKey:DocID;references:DocID" json:"document,omitempty"`
	RequirementLevel RequirementLevel  `gorm:"column:requirement_level;size:50;not null" json:"requirement_level"`
	Notes            string            `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (PolicyDocumentRequirement) TableName() string { return "policy_document_requirements" }

type UserDocument struct {
	UserDocID  uint              `gorm:"column:user_doc_id;primaryKey;autoIncrement" json:"user_doc_id"`
	UserID     uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	DocID      uint              `gorm:"column:doc_id;not null;index" json:"doc_id"`
	Document   *RequiredDocument `gorm:"foreignKey:DocID;references:DocID" json:"document,omitempty"`
	FileURL    string            `gorm:"column:file_url;size:255;not null" json:"file_url"`
	Verified   bool              `gorm:"column:verified;not null;default:false" json:"verified"`
	UploadedAt time.Time         `gorm:"column:uploaded_at;not null;default:CURRENT_TIMESTAMP" json:"uploaded_at"`
}

func (UserDocument) TableName() string { return "user_documents" }

type PolicyDocumentVersion struct {
	VersionID     uint       `gorm:"column:version_id;primaryKey;autoIncrement" json:"version_id"`
	PolicyID      uint       `gorm:"column:policy_id;not null;index" json:"policy_id"`
	VersionNumber string     `gorm:"column:version_number;size:50" json:"version_number,omitempty"`
	PDFURL        string     `gorm:"column:pdf_url;size:255" json:"pdf_url,omitempty"`
	EffectiveDate *time.Time `gorm:"column:effective_date;type:date" json:"effective_date,omitempty"`
	ExpiresDate   *time.Time `gorm:"column:expires_date;type:date" json:"expires_date,omitempty"`
	Notes         string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (PolicyDocumentVersion) TableName() string { return "policy_document_versions" }
