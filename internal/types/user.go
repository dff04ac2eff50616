package types

import (
	"time"
)

type User struct {
	UserID       uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Name         string    `gorm:"column:name;size:100;not null" json:"name"`
	Email        string    `gorm:"column:email;size:150;not null;uniqueIndex" json:"email"`
	Phone        string    `gorm:"column:phone;size:50" json:"phone,omitempty"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string { return "users" }
