package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// TasteProfileStore reads a user's stored taste profile.
// Get returns common.ErrNotFound when the user has none.
type TasteProfileStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error)
}

// PantryStore lists a user's pantry.
type PantryStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error)
}

// LeftoverStore lists a user's leftovers.
type LeftoverStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.LeftoverIngredient, error)
}

// GenerationCounter tracks how many successful generations a user has made.
type GenerationCounter interface {
	Increment(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*types.TokenResponse, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// ITasteProfileService defines the interface for taste profile operations
type ITasteProfileService interface {
	TasteProfileStore
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error)
	Replace(ctx context.Context, userID uuid.UUID, req types.TasteProfileRequest) (*models.TasteProfile, error)
	Update(ctx context.Context, userID uuid.UUID, req types.TasteProfileUpdate) (*models.TasteProfile, error)
}

// IPantryService defines the interface for pantry operations
type IPantryService interface {
	PantryStore
	Add(ctx context.Context, userID uuid.UUID, req types.PantryItemRequest) (*models.PantryItem, error)
	BulkReplace(ctx context.Context, userID uuid.UUID, items []types.PantryItemRequest) ([]models.PantryItem, error)
	BulkAdd(ctx context.Context, userID uuid.UUID, items []types.PantryItemRequest) ([]models.PantryItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	Expiring(ctx context.Context, userID uuid.UUID, within time.Duration) ([]models.PantryItem, error)
}

// ILeftoverService defines the interface for leftover operations
type ILeftoverService interface {
	LeftoverStore
	Add(ctx context.Context, userID uuid.UUID, req types.LeftoverRequest) (*models.LeftoverIngredient, error)
	Delete(ctx context.Context, userID, leftoverID uuid.UUID) error
	SaveTransformation(ctx context.Context, userID uuid.UUID, req types.SaveTransformationRequest) (*models.LeftoverTransformation, error)
	ListTransformations(ctx context.Context, userID uuid.UUID) ([]models.LeftoverTransformation, error)
}

// ISavedRecipeService defines the interface for saved recipe operations
type ISavedRecipeService interface {
	Save(ctx context.Context, userID uuid.UUID, recipe types.GeneratedRecipe) (*models.SavedRecipe, error)
	Get(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error)
	List(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error)
	Delete(ctx context.Context, userID, recipeID uuid.UUID) error
}

// ISuggestionService defines the three generation operations.
type ISuggestionService interface {
	GenerateRecipe(ctx context.Context, userID uuid.UUID, req types.GenerateRecipeRequest) (*types.GeneratedRecipe, error)
	SuggestFromPantry(ctx context.Context, userID uuid.UUID, language string) ([]types.PantryRecipe, error)
	TransformLeftovers(ctx context.Context, userID uuid.UUID, language string) ([]types.TransformationSuggestion, error)
}

// IDashboardService defines the interface for dashboard statistics
type IDashboardService interface {
	Stats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, error)
}

// IRecipeExporter defines the interface for exporting saved recipes
type IRecipeExporter interface {
	Export(ctx context.Context, recipe *models.SavedRecipe) (*types.ExportResponse, error)
}
