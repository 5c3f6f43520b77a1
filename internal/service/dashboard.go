package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// DashboardService aggregates per-user counts.
type DashboardService struct {
	db      *gorm.DB
	counter GenerationCounter
}

// NewDashboardService creates a DashboardService. counter may be nil, in which
// case the generated count falls back to the number of saved recipes.
func NewDashboardService(db *gorm.DB, counter GenerationCounter) *DashboardService {
	return &DashboardService{db: db, counter: counter}
}

func (s *DashboardService) Stats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &types.DashboardStats{}

	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.PantryItem{}, &stats.PantryItemsCount},
		{&models.SavedRecipe{}, &stats.SavedRecipesCount},
		{&models.LeftoverIngredient{}, &stats.LeftoverItemsCount},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("user_id = ?", userID).Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	stats.RecipesGeneratedCount = stats.SavedRecipesCount
	if s.counter != nil {
		n, err := s.counter.Count(ctx, userID)
		if err != nil {
			common.LogWarn("Failed to read generation counter", zap.Error(err))
		} else {
			stats.RecipesGeneratedCount = n
		}
	}
	return stats, nil
}
