package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// PantryService handles pantry item operations
type PantryService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPantryService creates a new PantryService instance
func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db, now: time.Now}
}

// List returns the user's pantry in insertion order.
func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	return items, nil
}

func (s *PantryService) Add(ctx context.Context, userID uuid.UUID, req types.PantryItemRequest) (*models.PantryItem, error) {
	item := newPantryItem(userID, req)
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add pantry item: %w", err)
	}
	return item, nil
}

// BulkReplace deletes every pantry item of the user and stores items instead.
func (s *PantryService) BulkReplace(ctx context.Context, userID uuid.UUID, items []types.PantryItemRequest) ([]models.PantryItem, error) {
	created := make([]models.PantryItem, 0, len(items))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.PantryItem{}).Error; err != nil {
			return err
		}
		for _, req := range items {
			item := newPantryItem(userID, req)
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			created = append(created, *item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace pantry: %w", err)
	}
	return created, nil
}

// BulkAdd stores items next to the existing pantry.
func (s *PantryService) BulkAdd(ctx context.Context, userID uuid.UUID, items []types.PantryItemRequest) ([]models.PantryItem, error) {
	created := make([]models.PantryItem, 0, len(items))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, req := range items {
			item := newPantryItem(userID, req)
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			created = append(created, *item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add pantry items: %w", err)
	}
	return created, nil
}

// Delete removes an item owned by the user. Missing or foreign items are common.ErrNotFound.
func (s *PantryService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.PantryItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete pantry item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Expiring returns items whose expiry date falls between now and now+within, soonest first.
func (s *PantryService) Expiring(ctx context.Context, userID uuid.UUID, within time.Duration) ([]models.PantryItem, error) {
	now := s.now()
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?",
			userID, now, now.Add(within)).
		Order("expiry_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring items: %w", err)
	}
	return items, nil
}

func newPantryItem(userID uuid.UUID, req types.PantryItemRequest) *models.PantryItem {
	return &models.PantryItem{
		UserID:         userID,
		IngredientName: strings.TrimSpace(req.IngredientName),
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		ExpiryDate:     req.ExpiryDate,
		Category:       req.Category,
	}
}
