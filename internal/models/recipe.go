package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// EmbeddingDimensions is the width of SavedRecipe.Embedding.
const EmbeddingDimensions = 768

// SavedRecipe is a generated recipe the user chose to keep.
type SavedRecipe struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	RecipeData      JSONDocument     `gorm:"type:jsonb;not null" json:"recipe_data"`
	IngredientNames JSONStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"ingredient_names"`
	Tags            JSONStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	CookingTime     string           `gorm:"size:50" json:"cooking_time"`
	Difficulty      string           `gorm:"size:20" json:"difficulty"`
	Embedding       *pgvector.Vector `gorm:"type:vector(768)" json:"-"`
	CreatedAt       time.Time        `json:"created_at"`
}

func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// LeftoverTransformation is a saved leftover transformation idea.
type LeftoverTransformation struct {
	ID                    uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID                uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title                 string          `gorm:"size:255;not null" json:"title"`
	Description           string          `gorm:"type:text" json:"description"`
	TransformationIdea    string          `gorm:"type:text" json:"transformation_idea"`
	UsedLeftovers         JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"used_leftovers"`
	AdditionalIngredients JSONStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"additional_ingredients"`
	CookingTime           int             `json:"cooking_time"`
	Difficulty            string          `gorm:"size:20" json:"difficulty"`
	Language              string          `gorm:"size:10;not null;default:'en'" json:"language"`
	CreatedAt             time.Time       `json:"created_at"`
}

func (t *LeftoverTransformation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Language == "" {
		t.Language = "en"
	}
	return nil
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&TasteProfile{},
		&PantryItem{},
		&LeftoverIngredient{},
		&SavedRecipe{},
		&LeftoverTransformation{},
	}
}
