package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/models"
)

// TestPassword is the plaintext password of users made by CreateTestUser.
const TestPassword = "testpass123"

// CreateTestUser inserts a user with a default taste profile.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	profile := models.NewTasteProfile(user.ID)
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create taste profile: %v", err)
	}
	user.TasteProfile = profile
	return user
}

// AddPantryItems stores one pantry item per name for userID.
func AddPantryItems(t *testing.T, db *gorm.DB, userID uuid.UUID, names ...string) {
	t.Helper()
	for _, name := range names {
		item := &models.PantryItem{UserID: userID, IngredientName: name}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("failed to add pantry item %q: %v", name, err)
		}
	}
}
