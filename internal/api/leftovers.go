package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type LeftoverHandler struct {
	leftoverService   service.ILeftoverService
	suggestionService service.ISuggestionService
}

func NewLeftoverHandler(leftoverService service.ILeftoverService, suggestionService service.ISuggestionService) *LeftoverHandler {
	return &LeftoverHandler{
		leftoverService:   leftoverService,
		suggestionService: suggestionService,
	}
}

// RegisterRoutes registers the leftover routes. generationLimit guards the
// route that calls the generation service.
func (h *LeftoverHandler) RegisterRoutes(router *gin.RouterGroup, generationLimit gin.HandlerFunc) {
	leftovers := router.Group("/leftovers")
	{
		leftovers.GET("/ingredients", h.List)
		leftovers.POST("/ingredients", h.Add)
		leftovers.DELETE("/ingredients/:id", h.Delete)
		leftovers.POST("/transform", generationLimit, h.Transform)
		leftovers.GET("/transformations", h.ListTransformations)
		leftovers.POST("/transformations", h.SaveTransformation)
	}
}

func (h *LeftoverHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	leftovers, err := h.leftoverService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leftovers)
}

func (h *LeftoverHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.LeftoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leftover, err := h.leftoverService.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, leftover)
}

func (h *LeftoverHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	leftoverID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.leftoverService.Delete(c.Request.Context(), userID, leftoverID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Transform returns exactly three ideas for the user's leftovers.
func (h *LeftoverHandler) Transform(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.LanguageRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	ideas, err := h.suggestionService.TransformLeftovers(c.Request.Context(), userID, req.Language)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transformations": ideas})
}

func (h *LeftoverHandler) SaveTransformation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SaveTransformationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	saved, err := h.leftoverService.SaveTransformation(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *LeftoverHandler) ListTransformations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.leftoverService.ListTransformations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
