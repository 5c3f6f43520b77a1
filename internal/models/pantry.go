package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PantryItem is an ingredient the user has at home.
type PantryItem struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	IngredientName string     `gorm:"size:255;not null" json:"ingredient_name"`
	Quantity       string     `gorm:"size:50" json:"quantity"`
	Unit           string     `gorm:"size:50" json:"unit"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	Category       string     `gorm:"size:100" json:"category"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (p *PantryItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

const DefaultLeftoverState = "fresh"

// LeftoverIngredient is a cooked or partially used ingredient left over from a meal.
type LeftoverIngredient struct {
	ID                uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	IngredientName    string     `gorm:"size:255;not null" json:"ingredient_name"`
	Quantity          string     `gorm:"size:50" json:"quantity"`
	State             string     `gorm:"size:50;not null;default:'fresh'" json:"state"`
	CreatedFromRecipe *uuid.UUID `gorm:"type:varchar(36)" json:"created_from_recipe,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (l *LeftoverIngredient) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.State == "" {
		l.State = DefaultLeftoverState
	}
	return nil
}
