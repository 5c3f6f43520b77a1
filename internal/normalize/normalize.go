// Package normalize turns free-form model replies into typed results.
//
// Models often wrap the JSON payload in prose or code fences. Extract takes the
// greedy span from the first '{' to the last '}' after removing fence markers, so
// braces inside string values are fine while stray braces in trailing prose are not.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// Shape describes what the reply must contain. Zero values mean unset.
type Shape struct {
	// ListKey names the array holding the result items. Empty means the whole object is one item.
	ListKey string
	// ExactCount, when positive, is the required number of items.
	ExactCount int
}

const (
	RecipesKey         = "recipes"
	TransformationsKey = "transformations"
)

// Extract returns the JSON object candidate embedded in raw.
func Extract(raw string) (string, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", common.NewGenerationError(common.ErrMalformedGenerationOutput, raw, nil, "no JSON object found in response")
	}
	return cleaned[start : end+1], nil
}

// Parse extracts and validates the payload, returning one raw JSON value per result item.
func Parse(raw string, shape Shape) ([]json.RawMessage, error) {
	candidate, err := Extract(raw)
	if err != nil {
		return nil, err
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &object); err != nil {
		return nil, common.NewGenerationError(common.ErrMalformedGenerationOutput, raw, err, "failed to parse JSON")
	}

	var items []json.RawMessage
	if shape.ListKey == "" {
		items = []json.RawMessage{json.RawMessage(candidate)}
	} else {
		list, ok := object[shape.ListKey]
		if ok && string(list) != "null" {
			if err := json.Unmarshal(list, &items); err != nil {
				return nil, common.NewGenerationError(common.ErrMalformedGenerationOutput, raw, err, "%q is not a list", shape.ListKey)
			}
		}
		if items == nil {
			items = []json.RawMessage{}
		}
	}

	if shape.ExactCount > 0 && len(items) != shape.ExactCount {
		return nil, common.Cardinality(shape.ExactCount, len(items), raw)
	}
	return items, nil
}

func decode[T any](raw string, items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, common.NewGenerationError(common.ErrMalformedGenerationOutput, raw, err, "item %d has an unexpected shape", i)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseRecipe decodes a single freeform recipe.
func ParseRecipe(raw string) (*types.GeneratedRecipe, error) {
	items, err := Parse(raw, Shape{})
	if err != nil {
		return nil, err
	}
	recipes, err := decode[types.GeneratedRecipe](raw, items)
	if err != nil {
		return nil, err
	}
	recipe := fillRecipe(recipes[0])
	return &recipe, nil
}

// ParsePantryRecipes decodes the "recipes" list of a pantry reply. A missing list yields no recipes.
func ParsePantryRecipes(raw string) ([]types.PantryRecipe, error) {
	items, err := Parse(raw, Shape{ListKey: RecipesKey})
	if err != nil {
		return nil, err
	}
	recipes, err := decode[types.PantryRecipe](raw, items)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].GeneratedRecipe = fillRecipe(recipes[i].GeneratedRecipe)
		if recipes[i].UsedPantryIngredients == nil {
			recipes[i].UsedPantryIngredients = []string{}
		}
		if recipes[i].MissingIngredients == nil {
			recipes[i].MissingIngredients = []string{}
		}
	}
	return recipes, nil
}

// ParseTransformations decodes a leftover reply, which must hold exactly count items.
func ParseTransformations(raw string, count int) ([]types.TransformationSuggestion, error) {
	items, err := Parse(raw, Shape{ListKey: TransformationsKey, ExactCount: count})
	if err != nil {
		return nil, err
	}
	suggestions, err := decode[types.TransformationSuggestion](raw, items)
	if err != nil {
		return nil, err
	}
	for i := range suggestions {
		if suggestions[i].UsedLeftovers == nil {
			suggestions[i].UsedLeftovers = []string{}
		}
		if suggestions[i].AdditionalIngredients == nil {
			suggestions[i].AdditionalIngredients = []string{}
		}
	}
	return suggestions, nil
}

func fillRecipe(r types.GeneratedRecipe) types.GeneratedRecipe {
	if r.Servings <= 0 {
		r.Servings = types.DefaultServings
	}
	if r.Ingredients == nil {
		r.Ingredients = []types.Ingredient{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}
