package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/generation"
	"github.com/pageza/pantrychef/backend/internal/mocks"
	"github.com/pageza/pantrychef/backend/internal/router"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
)

const pantryReply = "Here you go:\n```json\n" + `{"recipes":[
	{"title":"Garlic chicken rice","ingredients":[{"name":"chicken breast"},{"name":"rice"}],"cooking_time":"30"},
	{"title":"Onion fried rice","ingredients":[{"name":"rice"},{"name":"onion"}]},
	{"title":"Chicken soup","ingredients":[{"name":"chicken breast"}],"servings":"2"}
]}` + "\n```"

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockGenerator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupPostgresDB(t)

	generator := new(mocks.MockGenerator)
	profiles := service.NewTasteProfileService(db)
	pantry := service.NewPantryService(db)
	leftovers := service.NewLeftoverService(db)

	r := router.SetupRouter(config.ServerConfig{}, api.Services{
		DB:          db,
		Auth:        service.NewAuthService(db, "integration-secret", time.Hour),
		Profiles:    profiles,
		Pantry:      pantry,
		Leftovers:   leftovers,
		Recipes:     service.NewSavedRecipeService(db, generation.HashEmbedder{}),
		Suggestions: service.NewSuggestionService(profiles, pantry, leftovers, generator, nil),
		Dashboard:   service.NewDashboardService(db, nil),
	})
	return r, generator
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPantryToSavedRecipeFlow(t *testing.T) {
	r, generator := setupRouter(t)

	w := call(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "flowcook", "email": "flowcook@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "flowcook@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	token := login.AccessToken

	w = call(t, r, http.MethodPut, "/api/v1/users/taste-profile", token, gin.H{
		"dislikes": []string{"cilantro"}, "spice_level": 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, r, http.MethodPut, "/api/v1/pantry/items/bulk", token, gin.H{"items": []gin.H{
		{"ingredient_name": "chicken breast"},
		{"ingredient_name": "rice"},
		{"ingredient_name": "onion"},
		{"ingredient_name": "Cilantro"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	generator.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "chicken breast") && !strings.Contains(strings.ToLower(p), "cilantro")
	})).Return(pantryReply, nil).Once()

	w = call(t, r, http.MethodPost, "/api/v1/recipes/suggest-from-pantry", token, gin.H{"language": "en"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var suggestions struct {
		Recipes []map[string]interface{} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestions))
	require.Len(t, suggestions.Recipes, 3)
	generator.AssertExpectations(t)

	for _, recipe := range suggestions.Recipes {
		w = call(t, r, http.MethodPost, "/api/v1/recipes/save-generated", token, recipe)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodGet, "/api/v1/recipes/saved?q=Chicken+soup", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved, 3)
	assert.Equal(t, "Chicken soup", saved[0]["title"])

	w = call(t, r, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pantry_items_count":4,"saved_recipes_count":3,"recipes_generated_count":3,"leftover_items_count":0}`, w.Body.String())
}

func TestEmptyLeftoversNeverReachGenerator(t *testing.T) {
	r, generator := setupRouter(t)

	w := call(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "noleft", "email": "noleft@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "noleft@example.com", "password": "secret123",
	})
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = call(t, r, http.MethodPost, "/api/v1/leftovers/transform", login.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no_ingredients_available")
	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
