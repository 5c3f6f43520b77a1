package types

// TasteProfileRequest replaces a taste profile wholesale.
type TasteProfileRequest struct {
	Likes                 []string `json:"likes"`
	Dislikes              []string `json:"dislikes"`
	DietaryPreferences    []string `json:"dietary_preferences"`
	Allergies             []string `json:"allergies"`
	SpiceLevel            int      `json:"spice_level"`
	OilPreference         string   `json:"oil_preference"`
	CookingTimePreference *int     `json:"cooking_time_preference"`
}

// TasteProfileUpdate changes only the fields that are present.
type TasteProfileUpdate struct {
	Likes                 *[]string `json:"likes"`
	Dislikes              *[]string `json:"dislikes"`
	DietaryPreferences    *[]string `json:"dietary_preferences"`
	Allergies             *[]string `json:"allergies"`
	SpiceLevel            *int      `json:"spice_level"`
	OilPreference         *string   `json:"oil_preference"`
	CookingTimePreference *int      `json:"cooking_time_preference"`
}

type DashboardStats struct {
	PantryItemsCount      int64 `json:"pantry_items_count"`
	SavedRecipesCount     int64 `json:"saved_recipes_count"`
	RecipesGeneratedCount int64 `json:"recipes_generated_count"`
	LeftoverItemsCount    int64 `json:"leftover_items_count"`
}
