package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/prompt"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// LeftoverService handles leftover ingredients and saved transformations.
type LeftoverService struct {
	db *gorm.DB
}

func NewLeftoverService(db *gorm.DB) *LeftoverService {
	return &LeftoverService{db: db}
}

func (s *LeftoverService) List(ctx context.Context, userID uuid.UUID) ([]models.LeftoverIngredient, error) {
	var leftovers []models.LeftoverIngredient
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&leftovers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list leftovers: %w", err)
	}
	return leftovers, nil
}

func (s *LeftoverService) Add(ctx context.Context, userID uuid.UUID, req types.LeftoverRequest) (*models.LeftoverIngredient, error) {
	leftover := &models.LeftoverIngredient{
		UserID:            userID,
		IngredientName:    strings.TrimSpace(req.IngredientName),
		Quantity:          req.Quantity,
		State:             req.State,
		CreatedFromRecipe: req.CreatedFromRecipe,
	}
	if err := s.db.WithContext(ctx).Create(leftover).Error; err != nil {
		return nil, fmt.Errorf("failed to add leftover: %w", err)
	}
	return leftover, nil
}

func (s *LeftoverService) Delete(ctx context.Context, userID, leftoverID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", leftoverID, userID).
		Delete(&models.LeftoverIngredient{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete leftover: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SaveTransformation stores one suggestion returned by TransformLeftovers.
func (s *LeftoverService) SaveTransformation(ctx context.Context, userID uuid.UUID, req types.SaveTransformationRequest) (*models.LeftoverTransformation, error) {
	lang := req.Language
	if lang == "" {
		lang = prompt.DefaultLanguage
	}
	t := &models.LeftoverTransformation{
		UserID:                userID,
		Title:                 req.Title,
		Description:           req.Description,
		TransformationIdea:    req.TransformationIdea,
		UsedLeftovers:         stringList(req.UsedLeftovers),
		AdditionalIngredients: stringList(req.AdditionalIngredients),
		CookingTime:           int(req.CookingTime),
		Difficulty:            req.Difficulty,
		Language:              lang,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("failed to save transformation: %w", err)
	}
	return t, nil
}

// ListTransformations returns the user's saved transformations, newest first.
func (s *LeftoverService) ListTransformations(ctx context.Context, userID uuid.UUID) ([]models.LeftoverTransformation, error) {
	var out []models.LeftoverTransformation
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transformations: %w", err)
	}
	return out, nil
}

