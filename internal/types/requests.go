package types

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username          string `json:"username" binding:"required,min=3,max=50"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=6"`
	PreferredLanguage string `json:"preferred_language"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GenerateRecipeRequest is the body of POST /recipes/generate.
type GenerateRecipeRequest struct {
	Theme     string `json:"theme" binding:"required"`
	Language  string `json:"language"`
	UsePantry bool   `json:"use_pantry"`
}

// LanguageRequest is the body of endpoints that only take a language.
type LanguageRequest struct {
	Language string `json:"language"`
}

type PantryItemRequest struct {
	IngredientName string     `json:"ingredient_name" binding:"required"`
	Quantity       string     `json:"quantity"`
	Unit           string     `json:"unit"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	Category       string     `json:"category"`
}

type BulkPantryRequest struct {
	Items []PantryItemRequest `json:"items" binding:"dive"`
}

type LeftoverRequest struct {
	IngredientName    string     `json:"ingredient_name" binding:"required"`
	Quantity          string     `json:"quantity"`
	State             string     `json:"state"`
	CreatedFromRecipe *uuid.UUID `json:"created_from_recipe"`
}

// SaveTransformationRequest stores one suggestion returned by /leftovers/transform.
type SaveTransformationRequest struct {
	TransformationSuggestion
	Language string `json:"language"`
}

type ExportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
