package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

const defaultExpiringDays = 3

type PantryHandler struct {
	pantryService service.IPantryService
}

func NewPantryHandler(pantryService service.IPantryService) *PantryHandler {
	return &PantryHandler{pantryService: pantryService}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry/items")
	{
		pantry.GET("", h.List)
		pantry.POST("", h.Add)
		pantry.PUT("/bulk", h.BulkReplace)
		pantry.POST("/bulk-add", h.BulkAdd)
		pantry.GET("/expiring", h.Expiring)
		pantry.DELETE("/:id", h.Delete)
	}
}

func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.pantryService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PantryHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.PantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.pantryService.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// BulkReplace swaps the whole pantry for the given items.
func (h *PantryHandler) BulkReplace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.BulkPantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.pantryService.BulkReplace(c.Request.Context(), userID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PantryHandler) BulkAdd(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.BulkPantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.pantryService.BulkAdd(c.Request.Context(), userID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, items)
}

// Expiring lists items expiring within ?days=N (default 3).
func (h *PantryHandler) Expiring(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	days := defaultExpiringDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = n
	}

	items, err := h.pantryService.Expiring(c.Request.Context(), userID, time.Duration(days)*24*time.Hour)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PantryHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.pantryService.Delete(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
