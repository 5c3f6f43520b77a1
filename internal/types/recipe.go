package types

// DefaultServings is used when a generated recipe omits servings.
const DefaultServings = 4

type Ingredient struct {
	Name     string     `json:"name"`
	Quantity FlexString `json:"quantity"`
	Unit     string     `json:"unit"`
}

type NutritionInfo struct {
	Calories FlexString `json:"calories"`
	Protein  FlexString `json:"protein"`
	Carbs    FlexString `json:"carbs"`
	Fat      FlexString `json:"fat"`
}

// GeneratedRecipe is a recipe produced by the freeform or pantry modes.
type GeneratedRecipe struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Ingredients   []Ingredient  `json:"ingredients"`
	Instructions  []string      `json:"instructions"`
	CookingTime   FlexString    `json:"cooking_time"`
	Difficulty    string        `json:"difficulty"`
	Servings      FlexInt       `json:"servings"`
	NutritionInfo NutritionInfo `json:"nutrition_info"`
	Tags          []string      `json:"tags"`
}

// IngredientNames returns the names of the recipe's ingredients in order.
func (r GeneratedRecipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// PantryRecipe is a pantry suggestion: the recipe plus which pantry items it uses
// and what is still missing. Both lists are always present in JSON.
type PantryRecipe struct {
	GeneratedRecipe
	UsedPantryIngredients []string `json:"used_pantry_ingredients"`
	MissingIngredients    []string `json:"missing_ingredients"`
}

// TransformationSuggestion is one idea for reusing leftovers.
type TransformationSuggestion struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	TransformationIdea    string   `json:"transformation_idea"`
	UsedLeftovers         []string `json:"used_leftovers"`
	AdditionalIngredients []string `json:"additional_ingredients"`
	CookingTime           FlexInt  `json:"cooking_time"`
	Difficulty            string   `json:"difficulty"`
}
