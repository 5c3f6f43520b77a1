package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	Username          string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email             string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash      string         `gorm:"not null" json:"-"`
	PreferredLanguage string         `gorm:"size:10;not null;default:'en'" json:"preferred_language"`
	TasteProfile      *TasteProfile  `gorm:"constraint:OnDelete:CASCADE" json:"taste_profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = "en"
	}
	return nil
}
