package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/generation"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/normalize"
	"github.com/pageza/pantrychef/backend/internal/preferences"
	"github.com/pageza/pantrychef/backend/internal/prompt"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// SuggestionService runs the preference, prompt, generation and normalization
// steps for each suggestion kind. It either returns the full result or the
// first error; nothing is retried.
type SuggestionService struct {
	profiles  TasteProfileStore
	pantry    PantryStore
	leftovers LeftoverStore
	generator generation.Generator
	counter   GenerationCounter
}

// NewSuggestionService wires the orchestrator. counter may be nil.
func NewSuggestionService(profiles TasteProfileStore, pantry PantryStore, leftovers LeftoverStore,
	generator generation.Generator, counter GenerationCounter) *SuggestionService {
	return &SuggestionService{
		profiles:  profiles,
		pantry:    pantry,
		leftovers: leftovers,
		generator: generator,
		counter:   counter,
	}
}

// GenerateRecipe builds one recipe for a free-text theme.
func (s *SuggestionService) GenerateRecipe(ctx context.Context, userID uuid.UUID, req types.GenerateRecipeRequest) (*types.GeneratedRecipe, error) {
	agg, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var available []string
	if req.UsePantry {
		items, err := s.pantry.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		available = prompt.FilterIngredients(pantryNames(items), agg)
	}

	text := prompt.Build(prompt.Request{
		Mode:        prompt.ModeFreeform,
		Theme:       req.Theme,
		Ingredients: available,
		Language:    req.Language,
	}, agg)

	raw, err := s.generate(ctx, userID, prompt.ModeFreeform, text)
	if err != nil {
		return nil, err
	}
	recipe, err := normalize.ParseRecipe(raw)
	if err != nil {
		return nil, s.fail(userID, prompt.ModeFreeform, err)
	}
	s.count(ctx, userID)
	return recipe, nil
}

// SuggestFromPantry asks for recipes using only what is in the user's pantry.
// An empty pantry, or one where every item is excluded, fails without calling
// the generator.
func (s *SuggestionService) SuggestFromPantry(ctx context.Context, userID uuid.UUID, language string) ([]types.PantryRecipe, error) {
	items, err := s.pantry.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.NoIngredients("pantry")
	}

	agg, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}
	available := prompt.FilterIngredients(pantryNames(items), agg)
	if len(available) == 0 {
		return nil, common.NewGenerationError(common.ErrNoIngredientsAvailable, "", nil,
			"every pantry ingredient is excluded by the taste profile")
	}

	text := prompt.Build(prompt.Request{
		Mode:        prompt.ModePantry,
		Ingredients: available,
		Language:    language,
	}, agg)

	raw, err := s.generate(ctx, userID, prompt.ModePantry, text)
	if err != nil {
		return nil, err
	}
	recipes, err := normalize.ParsePantryRecipes(raw)
	if err != nil {
		return nil, s.fail(userID, prompt.ModePantry, err)
	}
	s.count(ctx, userID)
	return recipes, nil
}

// TransformLeftovers asks for exactly prompt.LeftoverTransformCount ideas.
// Leftovers are not filtered by the exclusion set.
func (s *SuggestionService) TransformLeftovers(ctx context.Context, userID uuid.UUID, language string) ([]types.TransformationSuggestion, error) {
	leftovers, err := s.leftovers.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(leftovers) == 0 {
		return nil, common.NoIngredients("leftover")
	}

	agg, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}

	text := prompt.Build(prompt.Request{
		Mode:        prompt.ModeLeftoverTransform,
		Ingredients: leftoverLabels(leftovers),
		Language:    language,
	}, agg)

	raw, err := s.generate(ctx, userID, prompt.ModeLeftoverTransform, text)
	if err != nil {
		return nil, err
	}
	ideas, err := normalize.ParseTransformations(raw, prompt.LeftoverTransformCount)
	if err != nil {
		return nil, s.fail(userID, prompt.ModeLeftoverTransform, err)
	}
	s.count(ctx, userID)
	return ideas, nil
}

// aggregate loads the profile; a missing profile means defaults.
func (s *SuggestionService) aggregate(ctx context.Context, userID uuid.UUID) (preferences.Aggregated, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return preferences.Aggregated{}, fmt.Errorf("failed to load taste profile: %w", err)
	}
	return preferences.Aggregate(profile), nil
}

func (s *SuggestionService) generate(ctx context.Context, userID uuid.UUID, mode prompt.Mode, text string) (string, error) {
	raw, err := s.generator.Generate(ctx, text)
	if err != nil {
		if !errors.Is(err, common.ErrGenerationUnavailable) {
			err = common.Unavailable(err)
		}
		return "", s.fail(userID, mode, err)
	}
	return raw, nil
}

func (s *SuggestionService) fail(userID uuid.UUID, mode prompt.Mode, err error) error {
	fields := []zap.Field{
		zap.String("user_id", userID.String()),
		zap.String("mode", string(mode)),
		zap.String("kind", common.Kind(err)),
		zap.Error(err),
	}
	common.LogError("Suggestion failed", fields...)

	var genErr *common.GenerationError
	if errors.As(err, &genErr) && genErr.Raw != "" {
		common.LogDebug("Unusable model output", zap.String("mode", string(mode)), zap.String("raw", genErr.Raw))
	}
	return err
}

// count is best effort; a failing counter never fails the request.
func (s *SuggestionService) count(ctx context.Context, userID uuid.UUID) {
	if s.counter == nil {
		return
	}
	if err := s.counter.Increment(ctx, userID); err != nil {
		common.LogWarn("Failed to increment generation counter",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func pantryNames(items []models.PantryItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name := strings.TrimSpace(item.IngredientName); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// leftoverLabels formats leftovers as "name (quantity)", or just the name.
func leftoverLabels(leftovers []models.LeftoverIngredient) []string {
	labels := make([]string, 0, len(leftovers))
	for _, l := range leftovers {
		name := strings.TrimSpace(l.IngredientName)
		if q := strings.TrimSpace(l.Quantity); q != "" {
			name = fmt.Sprintf("%s (%s)", name, q)
		}
		labels = append(labels, name)
	}
	return labels
}
