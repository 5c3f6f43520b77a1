package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/generation"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// searchLimit caps the number of results of a saved recipe search.
const searchLimit = 20

// SavedRecipeService stores generated recipes and searches them.
type SavedRecipeService struct {
	db       *gorm.DB
	embedder generation.Embedder
}

// NewSavedRecipeService creates a new SavedRecipeService instance
func NewSavedRecipeService(db *gorm.DB, embedder generation.Embedder) *SavedRecipeService {
	return &SavedRecipeService{db: db, embedder: embedder}
}

// Save keeps a generated recipe. An embedding failure is logged and the recipe is
// stored without one.
func (s *SavedRecipeService) Save(ctx context.Context, userID uuid.UUID, recipe types.GeneratedRecipe) (*models.SavedRecipe, error) {
	if strings.TrimSpace(recipe.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRecipe)
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}

	saved := &models.SavedRecipe{
		UserID:          userID,
		Title:           recipe.Title,
		RecipeData:      models.JSONDocument(data),
		IngredientNames: stringList(recipe.IngredientNames()),
		Tags:            stringList(recipe.Tags),
		CookingTime:     string(recipe.CookingTime),
		Difficulty:      recipe.Difficulty,
	}

	if s.embedder != nil {
		vec, err := s.embedder.Embed(ctx, embeddingText(recipe))
		if err != nil {
			common.LogWarn("Failed to embed saved recipe", zap.Error(err))
		} else {
			v := pgvector.NewVector(vec)
			saved.Embedding = &v
		}
	}

	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return saved, nil
}

// ErrInvalidRecipe is returned when a recipe cannot be saved as given.
var ErrInvalidRecipe = errors.New("invalid recipe")

func (s *SavedRecipeService) Get(ctx context.Context, userID, recipeID uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// List returns the user's saved recipes newest first. A non-empty query ranks
// them by embedding distance on postgres and filters by substring elsewhere.
func (s *SavedRecipeService) List(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	query = strings.TrimSpace(query)

	switch {
	case query == "":
		q = q.Order("created_at DESC")
	case s.db.Dialector.Name() == "postgres" && s.embedder != nil:
		vec, err := s.embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to embed search query: %w", err)
		}
		q = q.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "embedding <=> ? NULLS LAST",
			Vars:               []interface{}{pgvector.NewVector(vec)},
			WithoutParentheses: true,
		}}).Limit(searchLimit)
	default:
		cast := ""
		if s.db.Dialector.Name() == "postgres" {
			cast = "::text"
		}
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where(fmt.Sprintf("LOWER(title) LIKE ? OR LOWER(ingredient_names%[1]s) LIKE ? OR LOWER(tags%[1]s) LIKE ?", cast),
			like, like, like).
			Order("created_at DESC").
			Limit(searchLimit)
	}

	var recipes []models.SavedRecipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

func (s *SavedRecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.SavedRecipe{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func embeddingText(r types.GeneratedRecipe) string {
	parts := []string{r.Title, r.Description}
	parts = append(parts, r.IngredientNames()...)
	parts = append(parts, r.Tags...)
	return strings.Join(parts, " ")
}
