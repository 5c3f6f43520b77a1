package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/mocks"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type testAPI struct {
	router    *gin.Engine
	db        *gorm.DB
	auth      *service.AuthService
	generator *mocks.MockGenerator
}

func setupTestAPI(t *testing.T) *testAPI {
	return setupTestAPIWithExporter(t, nil)
}

func setupTestAPIWithExporter(t *testing.T, exporter service.IRecipeExporter) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDB(t)

	a := &testAPI{
		router:    gin.New(),
		db:        db,
		auth:      service.NewAuthService(db, "test-secret", 30*time.Minute),
		generator: new(mocks.MockGenerator),
	}
	profiles := service.NewTasteProfileService(db)
	pantry := service.NewPantryService(db)
	leftovers := service.NewLeftoverService(db)

	RegisterRoutes(a.router, Services{
		DB:          db,
		Auth:        a.auth,
		Profiles:    profiles,
		Pantry:      pantry,
		Leftovers:   leftovers,
		Recipes:     service.NewSavedRecipeService(db, nil),
		Suggestions: service.NewSuggestionService(profiles, pantry, leftovers, a.generator, nil),
		Dashboard:   service.NewDashboardService(db, nil),
		Exporter:    exporter,
	})
	return a
}

// login creates a user and returns its bearer token.
func (a *testAPI) login(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, a.db, username)
	token, err := a.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	a := setupTestAPI(t)
	w := a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"ok"}`, w.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	a := setupTestAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "newcook",
		"email":    "newcook@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "newcook",
		"email":    "newcook@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "x", "email": "bad", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "newcook@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, w, &token)
	assert.Equal(t, "bearer", token.TokenType)

	w = a.do(t, http.MethodGet, "/api/v1/users/profile", token.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"taste_profile"`)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "newcook@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := setupTestAPI(t)
	for _, path := range []string{"/api/v1/pantry/items", "/api/v1/users/taste-profile", "/api/v1/dashboard/stats"} {
		w := a.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestTasteProfileRoutes(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.login(t, "taster")

	w := a.do(t, http.MethodPut, "/api/v1/users/taste-profile", token, gin.H{"spice_level": 5, "allergies": []string{"peanuts"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/v1/users/taste-profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.TasteProfile
	decodeBody(t, w, &profile)
	assert.Equal(t, 5, profile.SpiceLevel)
	assert.Equal(t, []string{"peanuts"}, []string(profile.Allergies))

	w = a.do(t, http.MethodPut, "/api/v1/users/taste-profile", token, gin.H{"oil_preference": "lots"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/users/taste-profile", token, gin.H{"likes": []string{"basil"}})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &profile)
	assert.Empty(t, profile.Allergies)
	assert.Equal(t, models.DefaultSpiceLevel, profile.SpiceLevel)
}

func TestTasteProfileMissingAndOrCreate(t *testing.T) {
	a := setupTestAPI(t)
	user, token := a.login(t, "noprofile")
	require.NoError(t, a.db.Where("user_id = ?", user.ID).Delete(&models.TasteProfile{}).Error)

	w := a.do(t, http.MethodGet, "/api/v1/users/taste-profile", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/users/taste-profile/or-create", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/users/taste-profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPantryRoutes(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.login(t, "pantry")

	w := a.do(t, http.MethodPost, "/api/v1/pantry/items", token, gin.H{"ingredient_name": "rice", "quantity": "1", "unit": "kg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item models.PantryItem
	decodeBody(t, w, &item)

	w = a.do(t, http.MethodPost, "/api/v1/pantry/items", token, gin.H{"quantity": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/pantry/items/bulk-add", token, gin.H{"items": []gin.H{{"ingredient_name": "beans"}}})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/pantry/items", token, nil)
	var items []models.PantryItem
	decodeBody(t, w, &items)
	assert.Len(t, items, 2)

	w = a.do(t, http.MethodPut, "/api/v1/pantry/items/bulk", token, gin.H{"items": []gin.H{{"ingredient_name": "eggs"}}})
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodGet, "/api/v1/pantry/items", token, nil)
	decodeBody(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "eggs", items[0].IngredientName)

	w = a.do(t, http.MethodDelete, "/api/v1/pantry/items/"+item.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(t, http.MethodDelete, "/api/v1/pantry/items/"+items[0].ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(t, http.MethodDelete, "/api/v1/pantry/items/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/pantry/items/expiring?days=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(t, http.MethodGet, "/api/v1/pantry/items/expiring", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuggestFromEmptyPantry(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.login(t, "emptypantry")

	w := a.do(t, http.MethodPost, "/api/v1/recipes/suggest-from-pantry", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "no_ingredients_available", body["kind"])
	a.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateRecipeRoute(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.login(t, "generator")
	a.generator.On("Generate", mock.Anything, mock.Anything).
		Return("```json\n{\"title\":\"Pad thai\",\"ingredients\":[{\"name\":\"noodles\"}]}\n```", nil).Once()

	w := a.do(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{"theme": "pad thai", "language": "en"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var recipe map[string]interface{}
	decodeBody(t, w, &recipe)
	assert.Equal(t, "Pad thai", recipe["title"])
	assert.EqualValues(t, 4, recipe["servings"])

	w = a.do(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	a.generator.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("upstream 503")).Once()
	w = a.do(t, http.MethodPost, "/api/v1/recipes/generate", token, gin.H{"theme": "soup"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "generation_unavailable", body["kind"])
}

func TestLeftoverRoutes(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.login(t, "leftovers")

	w := a.do(t, http.MethodPost, "/api/v1/leftovers/ingredients", token, gin.H{"ingredient_name": "rice", "quantity": "1 cup"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var leftover models.LeftoverIngredient
	decodeBody(t, w, &leftover)
	assert.Equal(t, "fresh", leftover.State)

	a.generator.On("Generate", mock.Anything, mock.Anything).
		Return(`{"transformations":[{"title":"a"},{"title":"b"}]}`, nil).Once()
	w = a.do(t, http.MethodPost, "/api/v1/leftovers/transform", token, gin.H{"language": "en"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "unexpected_result_cardinality", body["kind"])
	assert.EqualValues(t, 2, body["count"])

	a.generator.On("Generate", mock.Anything, mock.Anything).
		Return(`{"transformations":[{"title":"a","cooking_time":"10"},{"title":"b"},{"title":"c"}]}`, nil).Once()
	w = a.do(t, http.MethodPost, "/api/v1/leftovers/transform", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ideas struct {
		Transformations []map[string]interface{} `json:"transformations"`
	}
	decodeBody(t, w, &ideas)
	require.Len(t, ideas.Transformations, 3)

	w = a.do(t, http.MethodPost, "/api/v1/leftovers/transformations", token, gin.H{"title": "a", "cooking_time": 10, "language": "fr"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = a.do(t, http.MethodGet, "/api/v1/leftovers/transformations", token, nil)
	var saved []models.LeftoverTransformation
	decodeBody(t, w, &saved)
	require.Len(t, saved, 1)
	assert.Equal(t, "fr", saved[0].Language)

	w = a.do(t, http.MethodDelete, "/api/v1/leftovers/ingredients/"+leftover.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSavedRecipeRoutes(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.login(t, "saver")

	w := a.do(t, http.MethodPost, "/api/v1/recipes/save-generated", token, gin.H{
		"title":        "Lentil soup",
		"ingredients":  []gin.H{{"name": "lentils", "quantity": 1, "unit": "cup"}},
		"cooking_time": 45,
		"tags":         []string{"soup"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var saved models.SavedRecipe
	decodeBody(t, w, &saved)
	assert.Equal(t, "45", saved.CookingTime)

	w = a.do(t, http.MethodGet, "/api/v1/recipes/saved?q=lentil", token, nil)
	var list []models.SavedRecipe
	decodeBody(t, w, &list)
	assert.Len(t, list, 1)

	w = a.do(t, http.MethodGet, "/api/v1/recipes/saved?q=pizza", token, nil)
	decodeBody(t, w, &list)
	assert.Empty(t, list)

	w = a.do(t, http.MethodPost, "/api/v1/recipes/saved/"+saved.ID.String()+"/export", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pantry_items_count":0,"saved_recipes_count":1,"recipes_generated_count":1,"leftover_items_count":0}`, w.Body.String())

	w = a.do(t, http.MethodDelete, "/api/v1/recipes/saved/"+saved.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestExportSavedRecipe(t *testing.T) {
	client := new(mocks.MockS3Client)
	presigner := new(mocks.MockPresigner)
	client.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)
	presigner.On("PresignGetObject", mock.Anything, mock.Anything).
		Return(&config.PresignedRequest{URL: "https://example.com/export"}, nil)
	exporter := service.NewS3RecipeExporter(&config.S3Config{Client: client, Presigner: presigner, BucketName: "b"})

	a := setupTestAPIWithExporter(t, exporter)
	user, token := a.login(t, "exporter")
	saved, err := service.NewSavedRecipeService(a.db, nil).Save(t.Context(), user.ID, types.GeneratedRecipe{Title: "Stew"})
	require.NoError(t, err)

	w := a.do(t, http.MethodPost, "/api/v1/recipes/saved/"+saved.ID.String()+"/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.ExportResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "https://example.com/export", resp.URL)

	_, otherToken := a.login(t, "someoneelse")
	w = a.do(t, http.MethodPost, "/api/v1/recipes/saved/"+saved.ID.String()+"/export", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
