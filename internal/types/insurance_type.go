package types

type InsuranceType struct {
	TypeID       uint           `gorm:"column:type_id;primaryKey;autoIncrement" json:"type_id"`
	Name         string         `gorm:"column:name;size:150;not null" json:"name"`
	Description  string         `gorm:"column:description;type:text" json:"description,omitempty"`
	ParentTypeID *uint          `gorm:"column:parent_type_id" json:"parent_type_id,omitempty"`
	ParentType   *InsuranceType `gorm:"foreignKey:ParentTypeID;references:TypeID" json:"parent_type,omitempty"`
}

func (InsuranceType) TableName() string { return "insurance_types" }
