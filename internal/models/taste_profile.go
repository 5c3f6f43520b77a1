package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultSpiceLevel    = 2
	DefaultOilPreference = "moderate"
)

// OilPreferences lists the accepted oil preference values.
var OilPreferences = []string{"low", "moderate", "high"}

// TasteProfile holds a user's food preferences. One per user.
type TasteProfile struct {
	ID                    uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID                uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Likes                 JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"likes"`
	Dislikes              JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dislikes"`
	DietaryPreferences    JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_preferences"`
	Allergies             JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	SpiceLevel            int             `gorm:"not null;default:2" json:"spice_level"`
	OilPreference         string          `gorm:"size:20;not null;default:'moderate'" json:"oil_preference"`
	CookingTimePreference *int            `json:"cooking_time_preference"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// NewTasteProfile returns a profile with default values for the given user.
func NewTasteProfile(userID uuid.UUID) *TasteProfile {
	return &TasteProfile{
		UserID:             userID,
		Likes:              JSONStringArray{},
		Dislikes:           JSONStringArray{},
		DietaryPreferences: JSONStringArray{},
		Allergies:          JSONStringArray{},
		SpiceLevel:         DefaultSpiceLevel,
		OilPreference:      DefaultOilPreference,
	}
}

func (p *TasteProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.SpiceLevel == 0 {
		p.SpiceLevel = DefaultSpiceLevel
	}
	if p.OilPreference == "" {
		p.OilPreference = DefaultOilPreference
	}
	return nil
}

// ValidOilPreference reports whether v is one of OilPreferences.
func ValidOilPreference(v string) bool {
	for _, o := range OilPreferences {
		if o == v {
			return true
		}
	}
	return false
}
