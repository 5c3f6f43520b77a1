package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// RecipeHandler serves recipe generation and saved recipes.
type RecipeHandler struct {
	recipeService     service.ISavedRecipeService
	suggestionService service.ISuggestionService
	exporter          service.IRecipeExporter
}

// NewRecipeHandler creates a RecipeHandler. exporter may be nil.
func NewRecipeHandler(recipeService service.ISavedRecipeService, suggestionService service.ISuggestionService, exporter service.IRecipeExporter) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		suggestionService: suggestionService,
		exporter:          exporter,
	}
}

// RegisterRoutes registers the recipe routes. generationLimit guards the
// routes that call the generation service.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, generationLimit gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", generationLimit, h.Generate)
		recipes.POST("/suggest-from-pantry", generationLimit, h.SuggestFromPantry)
		recipes.POST("/save-generated", h.SaveGenerated)
		recipes.GET("/saved", h.ListSaved)
		recipes.DELETE("/saved/:id", h.DeleteSaved)
		recipes.POST("/saved/:id/export", h.Export)
	}
}

func (h *RecipeHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.suggestionService.GenerateRecipe(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) SuggestFromPantry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.LanguageRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	recipes, err := h.suggestionService.SuggestFromPantry(c.Request.Context(), userID, req.Language)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) SaveGenerated(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var recipe types.GeneratedRecipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.recipeService.Save(c.Request.Context(), userID, recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ListSaved lists saved recipes, newest first, or ranked by ?q=.
func (h *RecipeHandler) ListSaved(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.List(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) DeleteSaved(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export uploads a saved recipe to object storage and returns a download link.
func (h *RecipeHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if h.exporter == nil {
		respondError(c, config.ErrStorageNotConfigured)
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.exporter.Export(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
