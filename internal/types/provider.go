package types

type Provider struct {
	ProviderID  uint     `gorm:"column:provider_id;primaryKey;autoIncrement" json:"provider_id"`
	Name        string   `gorm:"column:name;size:150;not null" json:"name"`
	ContactInfo string   `gorm:"column:contact_info;type:text" json:"contact_info,omitempty"`
	Rating      *float64 `gorm:"column:rating;type:numeric(3,2)" json:"rating,omitempty"`
	LogoURL     string   `gorm:"column:logo_url;size:255" json:"logo_url,omitempty"`
}

func (Provider) TableName() string { return "providers" }
