package preferences

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/pantrychef/backend/internal/models"
)

func TestAggregateNilProfile(t *testing.T) {
	agg := Aggregate(nil)

	assert.Equal(t, 2, agg.SpiceLevel)
	assert.Equal(t, "moderate", agg.OilPreference)
	assert.Nil(t, agg.CookingTimePreference)
	assert.NotNil(t, agg.Likes)
	assert.Empty(t, agg.Likes)
	assert.NotNil(t, agg.Exclusions)
	assert.Empty(t, agg.Exclusions)
}

func TestAggregateDefaultsInvalidValues(t *testing.T) {
	profile := models.NewTasteProfile(uuid.New())
	profile.SpiceLevel = 9
	profile.OilPreference = "drenched"
	zero := 0
	profile.CookingTimePreference = &zero

	agg := Aggregate(profile)
	assert.Equal(t, 2, agg.SpiceLevel)
	assert.Equal(t, "moderate", agg.OilPreference)
	assert.Nil(t, agg.CookingTimePreference)
}

func TestAggregateExclusions(t *testing.T) {
	profile := models.NewTasteProfile(uuid.New())
	profile.Allergies = models.JSONStringArray{"Peanut", " shellfish "}
	profile.Dislikes = models.JSONStringArray{"Cilantro", "peanut", ""}
	profile.SpiceLevel = 4
	profile.OilPreference = "Low"
	minutes := 30
	profile.CookingTimePreference = &minutes

	agg := Aggregate(profile)
	assert.Equal(t, []string{"peanut", "shellfish", "cilantro"}, agg.Exclusions)
	assert.Equal(t, []string{"Cilantro", "peanut"}, agg.Dislikes)
	assert.Equal(t, 4, agg.SpiceLevel)
	assert.Equal(t, "low", agg.OilPreference)
	assert.Equal(t, 30, *agg.CookingTimePreference)

	assert.True(t, agg.Excludes("PEANUT"))
	assert.True(t, agg.Excludes(" Shellfish"))
	assert.False(t, agg.Excludes("peanut butter"))
	assert.False(t, agg.Excludes(""))
}

func TestAggregateIsIdempotent(t *testing.T) {
	profile := models.NewTasteProfile(uuid.New())
	profile.Likes = models.JSONStringArray{"garlic", "lemon"}
	profile.Allergies = models.JSONStringArray{"milk"}
	profile.DietaryPreferences = models.JSONStringArray{"vegetarian"}

	first := Aggregate(profile)
	second := Aggregate(profile)
	assert.Equal(t, first, second)

	minutes := 20
	profile.CookingTimePreference = &minutes
	withTime := Aggregate(profile)
	*profile.CookingTimePreference = 45
	assert.Equal(t, 20, *withTime.CookingTimePreference)
}
