// Package preferences turns a stored taste profile into the fully defaulted
// view used when building generation prompts.
package preferences

import (
	"strings"

	"github.com/pageza/pantrychef/backend/internal/models"
)

// Aggregated is a taste profile with every field defaulted and the exclusion set computed.
type Aggregated struct {
	Likes                 []string
	Dislikes              []string
	DietaryPreferences    []string
	Allergies             []string
	SpiceLevel            int
	OilPreference         string
	CookingTimePreference *int
	// Exclusions is the lowercased union of allergies and dislikes, allergies first.
	Exclusions []string
}

// Aggregate never fails. A nil profile yields the defaults.
func Aggregate(profile *models.TasteProfile) Aggregated {
	agg := Aggregated{
		Likes:              []string{},
		Dislikes:           []string{},
		DietaryPreferences: []string{},
		Allergies:          []string{},
		SpiceLevel:         models.DefaultSpiceLevel,
		OilPreference:      models.DefaultOilPreference,
		Exclusions:         []string{},
	}
	if profile == nil {
		return agg
	}

	agg.Likes = clean(profile.Likes)
	agg.Dislikes = clean(profile.Dislikes)
	agg.DietaryPreferences = clean(profile.DietaryPreferences)
	agg.Allergies = clean(profile.Allergies)

	if profile.SpiceLevel >= 1 && profile.SpiceLevel <= 5 {
		agg.SpiceLevel = profile.SpiceLevel
	}
	if oil := strings.ToLower(strings.TrimSpace(profile.OilPreference)); models.ValidOilPreference(oil) {
		agg.OilPreference = oil
	}
	if profile.CookingTimePreference != nil && *profile.CookingTimePreference > 0 {
		minutes := *profile.CookingTimePreference
		agg.CookingTimePreference = &minutes
	}

	seen := make(map[string]struct{})
	for _, group := range [][]string{agg.Allergies, agg.Dislikes} {
		for _, item := range group {
			key := strings.ToLower(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			agg.Exclusions = append(agg.Exclusions, key)
		}
	}
	return agg
}

// Excludes reports whether name, compared case-insensitively, is in the exclusion set.
func (a Aggregated) Excludes(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return false
	}
	for _, e := range a.Exclusions {
		if e == key {
			return true
		}
	}
	return false
}

// clean trims entries and drops empty ones, always returning a non-nil slice.
func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
