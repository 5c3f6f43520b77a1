package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(All()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func TestCreateUserWithDefaultProfile(t *testing.T) {
	db := setupTestDB(t)
	user := &User{Username: "testuser", Email: "test@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("User ID should be set after creation")
	}
	if user.PreferredLanguage != "en" {
		t.Errorf("expected default language en, got %q", user.PreferredLanguage)
	}

	profile := NewTasteProfile(user.ID)
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to create taste profile: %v", err)
	}

	var loaded TasteProfile
	if err := db.Where("user_id = ?", user.ID).First(&loaded).Error; err != nil {
		t.Fatalf("Failed to load taste profile: %v", err)
	}
	if loaded.SpiceLevel != DefaultSpiceLevel || loaded.OilPreference != DefaultOilPreference {
		t.Errorf("unexpected defaults: spice=%d oil=%q", loaded.SpiceLevel, loaded.OilPreference)
	}
	if loaded.Likes == nil || len(loaded.Likes) != 0 {
		t.Errorf("expected empty likes, got %#v", loaded.Likes)
	}
	if loaded.CookingTimePreference != nil {
		t.Error("cooking time preference should be unset")
	}
}

func TestJSONStringArrayRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	profile := NewTasteProfile(uuid.New())
	profile.Allergies = JSONStringArray{"peanut", "shellfish"}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to create taste profile: %v", err)
	}

	var loaded TasteProfile
	if err := db.First(&loaded, "id = ?", profile.ID).Error; err != nil {
		t.Fatalf("Failed to load taste profile: %v", err)
	}
	if len(loaded.Allergies) != 2 || loaded.Allergies[1] != "shellfish" {
		t.Errorf("allergies not preserved: %#v", loaded.Allergies)
	}
}

func TestLeftoverDefaultsToFresh(t *testing.T) {
	db := setupTestDB(t)
	item := &LeftoverIngredient{UserID: uuid.New(), IngredientName: "rice"}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("Failed to create leftover: %v", err)
	}
	if item.State != DefaultLeftoverState {
		t.Errorf("expected state %q, got %q", DefaultLeftoverState, item.State)
	}
}

func TestSavedRecipeDocument(t *testing.T) {
	db := setupTestDB(t)
	recipe := &SavedRecipe{
		UserID:     uuid.New(),
		Title:      "Menemen",
		RecipeData: JSONDocument(`{"title":"Menemen","servings":4}`),
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}

	var loaded SavedRecipe
	if err := db.First(&loaded, "id = ?", recipe.ID).Error; err != nil {
		t.Fatalf("Failed to load recipe: %v", err)
	}
	if string(loaded.RecipeData) != `{"title":"Menemen","servings":4}` {
		t.Errorf("recipe data changed: %s", loaded.RecipeData)
	}
	if loaded.Embedding != nil {
		t.Error("embedding should be nil when not set")
	}
}

func TestValidOilPreference(t *testing.T) {
	for _, v := range []string{"low", "moderate", "high"} {
		if !ValidOilPreference(v) {
			t.Errorf("%q should be valid", v)
		}
	}
	if ValidOilPreference("extra") {
		t.Error("extra should be invalid")
	}
}
