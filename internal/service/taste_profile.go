package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// ErrInvalidTasteProfile wraps every taste profile validation failure.
var ErrInvalidTasteProfile = errors.New("invalid taste profile")

const (
	minSpiceLevel = 1
	maxSpiceLevel = 5
)

// TasteProfileService handles taste profile operations
type TasteProfileService struct {
	db *gorm.DB
}

// NewTasteProfileService creates a new TasteProfileService instance
func NewTasteProfileService(db *gorm.DB) *TasteProfileService {
	return &TasteProfileService{db: db}
}

// Get returns the user's profile or common.ErrNotFound.
func (s *TasteProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error) {
	var profile models.TasteProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get taste profile: %w", err)
	}
	return &profile, nil
}

// GetOrCreate returns the user's profile, creating a default one if absent.
func (s *TasteProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.TasteProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	profile = models.NewTasteProfile(userID)
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create taste profile: %w", err)
	}
	// a concurrent request may have won the insert
	return s.Get(ctx, userID)
}

// Replace overwrites every field of the user's profile, creating it if needed.
func (s *TasteProfileService) Replace(ctx context.Context, userID uuid.UUID, req types.TasteProfileRequest) (*models.TasteProfile, error) {
	spice := req.SpiceLevel
	if spice == 0 {
		spice = models.DefaultSpiceLevel
	}
	oil := req.OilPreference
	if oil == "" {
		oil = models.DefaultOilPreference
	}
	if err := validateTaste(spice, oil, req.CookingTimePreference); err != nil {
		return nil, err
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Likes = stringList(req.Likes)
	profile.Dislikes = stringList(req.Dislikes)
	profile.DietaryPreferences = stringList(req.DietaryPreferences)
	profile.Allergies = stringList(req.Allergies)
	profile.SpiceLevel = spice
	profile.OilPreference = oil
	profile.CookingTimePreference = req.CookingTimePreference

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save taste profile: %w", err)
	}
	return profile, nil
}

// Update changes only the fields present in req.
func (s *TasteProfileService) Update(ctx context.Context, userID uuid.UUID, req types.TasteProfileUpdate) (*models.TasteProfile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Likes != nil {
		profile.Likes = stringList(*req.Likes)
	}
	if req.Dislikes != nil {
		profile.Dislikes = stringList(*req.Dislikes)
	}
	if req.DietaryPreferences != nil {
		profile.DietaryPreferences = stringList(*req.DietaryPreferences)
	}
	if req.Allergies != nil {
		profile.Allergies = stringList(*req.Allergies)
	}
	if req.SpiceLevel != nil {
		profile.SpiceLevel = *req.SpiceLevel
	}
	if req.OilPreference != nil {
		profile.OilPreference = *req.OilPreference
	}
	if req.CookingTimePreference != nil {
		profile.CookingTimePreference = req.CookingTimePreference
	}

	if err := validateTaste(profile.SpiceLevel, profile.OilPreference, profile.CookingTimePreference); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update taste profile: %w", err)
	}
	return profile, nil
}

func validateTaste(spice int, oil string, cookingTime *int) error {
	if spice < minSpiceLevel || spice > maxSpiceLevel {
		return fmt.Errorf("%w: spice_level must be between %d and %d", ErrInvalidTasteProfile, minSpiceLevel, maxSpiceLevel)
	}
	if !models.ValidOilPreference(oil) {
		return fmt.Errorf("%w: oil_preference must be one of %v", ErrInvalidTasteProfile, models.OilPreferences)
	}
	if cookingTime != nil && *cookingTime < 0 {
		return fmt.Errorf("%w: cooking_time_preference must not be negative", ErrInvalidTasteProfile)
	}
	return nil
}

func stringList(in []string) models.JSONStringArray {
	if in == nil {
		return models.JSONStringArray{}
	}
	return models.JSONStringArray(in)
}
