// Package prompt renders generation prompts from a request and the user's aggregated preferences.
package prompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/pageza/pantrychef/backend/internal/preferences"
)

type Mode string

const (
	ModeFreeform          Mode = "freeform"
	ModePantry            Mode = "pantry"
	ModeLeftoverTransform Mode = "leftover_transform"
)

const (
	DefaultLanguage = "en"

	// PantryRecipeCount is how many recipes the pantry prompt asks for.
	PantryRecipeCount = 3
	// LeftoverTransformCount is how many transformation ideas must come back.
	LeftoverTransformCount = 3

	SubstitutionMarker = "SUBSTITUTION RULE"
	ExactDishMarker    = "EXACT DISH RULE"
)

// basicStaples may be used in pantry recipes unless the user excludes them.
var basicStaples = []string{"salt", "pepper", "water"}

// Request is the transient input to Build. Ingredients is ignored in freeform
// mode unless the caller attached pantry items to the theme.
type Request struct {
	Mode        Mode
	Theme       string
	Ingredients []string
	Language    string
}

// Build renders the prompt for req. It is pure string formatting.
func Build(req Request, agg preferences.Aggregated) string {
	lang := languageName(req.Language)
	switch req.Mode {
	case ModePantry:
		return buildPantry(req, agg, lang)
	case ModeLeftoverTransform:
		return buildLeftover(req, agg, lang)
	default:
		return buildFreeform(req, agg, lang)
	}
}

// FilterIngredients drops every ingredient that is in the exclusion set, keeping order.
func FilterIngredients(ingredients []string, agg preferences.Aggregated) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if strings.TrimSpace(ing) == "" || agg.Excludes(ing) {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// ThemeConflicts returns the exclusions that appear as a whole word or phrase in theme.
// Plurals match in both directions: "egg" matches "eggs" and "peanuts" matches "peanut".
func ThemeConflicts(theme string, agg preferences.Aggregated) []string {
	lowered := strings.ToLower(theme)
	var conflicts []string
	for _, ex := range agg.Exclusions {
		for _, form := range singularForms(ex) {
			if containsPhrase(lowered, form) {
				conflicts = append(conflicts, ex)
				break
			}
		}
	}
	return conflicts
}

// singularForms returns phrase plus the variants with a trailing "es" or "s" removed.
func singularForms(phrase string) []string {
	forms := []string{phrase}
	for _, suffix := range []string{"es", "s"} {
		stem := strings.TrimSuffix(phrase, suffix)
		if stem != phrase && utf8.RuneCountInString(stem) >= 3 {
			forms = append(forms, stem)
		}
	}
	return forms
}

func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	rest := text[i:]
	for _, suffix := range []string{"es", "s", ""} {
		if !strings.HasPrefix(rest, suffix) {
			continue
		}
		tail := rest[len(suffix):]
		if tail == "" {
			return true
		}
		r, _ := utf8.DecodeRuneInString(tail)
		if !isWordRune(r) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// languageName turns a BCP 47 tag into "English name (tag)". Unparseable tags pass through.
func languageName(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = DefaultLanguage
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	name := display.English.Tags().Name(parsed)
	if name == "" {
		return tag
	}
	return fmt.Sprintf("%s (%s)", name, tag)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// writePreferences lists the profile. Pantry prompts pass named=false so excluded
// items are never written into the prompt text.
func writePreferences(b *strings.Builder, agg preferences.Aggregated, heading string, named bool) {
	fmt.Fprintf(b, "%s:\n", heading)
	fmt.Fprintf(b, "- Spice level: %d/5\n", agg.SpiceLevel)
	fmt.Fprintf(b, "- Oil preference: %s\n", agg.OilPreference)
	if agg.CookingTimePreference != nil {
		fmt.Fprintf(b, "- Cooking time: %d minutes preferred\n", *agg.CookingTimePreference)
	} else {
		b.WriteString("- Cooking time: no preference\n")
	}
	likes := agg.Likes
	if !named {
		likes = FilterIngredients(likes, agg)
	}
	fmt.Fprintf(b, "- Likes: %s\n", joinOr(likes, "None specified"))
	if named {
		fmt.Fprintf(b, "- Dislikes: %s\n", joinOr(agg.Dislikes, "None"))
		fmt.Fprintf(b, "- Allergies: %s\n", joinOr(agg.Allergies, "None"))
	}
	fmt.Fprintf(b, "- Dietary: %s\n", joinOr(agg.DietaryPreferences, "None"))
}

func writeLanguage(b *strings.Builder, lang string) {
	fmt.Fprintf(b, "\nWrite every text value (title, description, ingredient names, instructions, tags) in %s. Keep the JSON keys in English.\n", lang)
	b.WriteString("Respond with the JSON object only.\n")
}

func buildFreeform(req Request, agg preferences.Aggregated, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a detailed recipe in %s with the following requirements:\n\n", lang)
	fmt.Fprintf(&b, "Requested dish or theme: %s\n\n", req.Theme)

	if available := FilterIngredients(req.Ingredients, agg); len(available) > 0 {
		fmt.Fprintf(&b, "Ingredients the user already has (prefer these where they fit): %s\n\n", strings.Join(available, ", "))
	}

	writePreferences(&b, agg, "User preferences", true)
	b.WriteString("\n")

	if conflicts := ThemeConflicts(req.Theme, agg); len(conflicts) > 0 {
		fmt.Fprintf(&b, "%s:\n", SubstitutionMarker)
		fmt.Fprintf(&b, "The requested dish relies on items the user must avoid: %s.\n", strings.Join(conflicts, ", "))
		b.WriteString("Do not make the requested dish as-is. Create the closest substitute dish of the same category ")
		b.WriteString("(same course, cooking method and character) that avoids those items entirely.\n")
		b.WriteString("The description MUST explain which item was replaced, what it was replaced with and why.\n")
	} else {
		fmt.Fprintf(&b, "%s:\n", ExactDishMarker)
		b.WriteString("Produce exactly the requested dish. Only adjust style, seasoning and spice to match the user preferences.\n")
	}
	if len(agg.Exclusions) > 0 {
		fmt.Fprintf(&b, "Under no circumstances include any of these in the ingredient list: %s.\n", strings.Join(agg.Exclusions, ", "))
	}

	b.WriteString("\nProvide the recipe in this exact JSON format:\n")
	b.WriteString(recipeSchema)
	writeLanguage(&b, lang)
	return b.String()
}

func buildPantry(req Request, agg preferences.Aggregated, lang string) string {
	available := FilterIngredients(req.Ingredients, agg)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d complete recipes in %s that can be made primarily with these available pantry ingredients: %s\n\n",
		PantryRecipeCount, lang, strings.Join(available, ", "))

	writePreferences(&b, agg, "Consider user preferences", false)
	b.WriteString("\nRules:\n")
	if staples := FilterIngredients(basicStaples, agg); len(staples) > 0 {
		fmt.Fprintf(&b, "1. Use only the available ingredients listed above plus basic staples (%s).\n", strings.Join(staples, ", "))
	} else {
		b.WriteString("1. Use only the available ingredients listed above.\n")
	}
	if len(agg.Exclusions) > 0 {
		b.WriteString("2. Some pantry items were removed because the user is allergic to them or dislikes them. Never reintroduce removed items, not even as missing ingredients or garnish.\n")
	} else {
		b.WriteString("2. Do not add ingredients beyond what the recipe genuinely needs.\n")
	}
	if likes := FilterIngredients(agg.Likes, agg); len(likes) > 0 {
		fmt.Fprintf(&b, "3. Prioritize recipes featuring the user's likes: %s.\n", strings.Join(likes, ", "))
	} else {
		b.WriteString("3. Prioritize recipes that use as many available ingredients as possible.\n")
	}
	b.WriteString("4. For each recipe list the available ingredients actually used in used_pantry_ingredients.\n")
	b.WriteString("5. List any ingredient still required but not available in missing_ingredients.\n")
	b.WriteString("6. Provide complete cooking instructions and nutrition information.\n")

	b.WriteString("\nReturn in JSON format:\n")
	b.WriteString(pantrySchema)
	writeLanguage(&b, lang)
	return b.String()
}

func buildLeftover(req Request, agg preferences.Aggregated, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest exactly %d creative recipe transformations in %s using these leftover ingredients: %s\n\n",
		LeftoverTransformCount, lang, strings.Join(req.Ingredients, ", "))

	writePreferences(&b, agg, "User preferences (soft guidance, the leftovers must still be used)", true)
	b.WriteString("\nFocus on:\n")
	b.WriteString("- Creative ways to reuse leftovers\n")
	b.WriteString("- Reducing food waste\n")
	b.WriteString("- Making completely new dishes\n")
	fmt.Fprintf(&b, "\nReturn exactly %d transformations, no more and no fewer.\n", LeftoverTransformCount)

	b.WriteString("\nReturn in JSON format:\n")
	b.WriteString(transformationSchema)
	writeLanguage(&b, lang)
	return b.String()
}

const recipeFields = `"title": "string",
    "description": "string",
    "ingredients": [{"name": "string", "quantity": "string", "unit": "string"}],
    "instructions": ["string"],
    "cooking_time": "string",
    "difficulty": "Easy | Medium | Hard",
    "servings": 4,
    "nutrition_info": {"calories": "string", "protein": "string", "carbs": "string", "fat": "string"},
    "tags": ["string"]`

var recipeSchema = "{\n    " + recipeFields + "\n}\n"

var pantrySchema = `{
  "recipes": [
    {
    ` + recipeFields + `,
    "used_pantry_ingredients": ["string"],
    "missing_ingredients": ["string"]
    }
  ]
}
`

const transformationSchema = `{
  "transformations": [
    {
      "title": "string",
      "description": "string",
      "transformation_idea": "string",
      "used_leftovers": ["string"],
      "additional_ingredients": ["string"],
      "cooking_time": 20,
      "difficulty": "Easy | Medium | Hard"
    }
  ]
}
`
