package models

import (
	"time"

	"gorm.io/gorm"
)

// Account is the identity-provider credential record. It lives in SQL,
// not in the document store; the matching UserProfile document is keyed
// by the account ID.
type Account struct {
	ID           string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash string         `gorm:"type:varchar(255)" json:"-"`
	Provider     string         `gorm:"type:varchar(20);not null;default:'email'" json:"provider"`
	Guest        bool           `gorm:"not null;default:false" json:"guest"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
