package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-manager/internal/database"
	"property-manager/internal/models"
	"property-manager/internal/query"
)

// PropertyHandler maps the listing HTTP surface onto the store.
type PropertyHandler struct {
	store database.Store
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(store database.Store) *PropertyHandler {
	return &PropertyHandler{store: store}
}

// List handles GET /api/properties. Filter and sort query parameters are
// optional; without them the response keeps the store's newest-first order.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.store.ListProperties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch properties"})
		return
	}

	// Build filters from query parameters
	filter := query.Filter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Search: c.Query("q"),
	}

	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		if minPrice, parseErr := strconv.ParseInt(minPriceStr, 10, 64); parseErr == nil {
			filter.MinPrice = minPrice
		}
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, parseErr := strconv.ParseInt(maxPriceStr, 10, 64); parseErr == nil {
			filter.MaxPrice = maxPrice
		}
	}
	if minAreaStr := c.Query("min_area"); minAreaStr != "" {
		if minArea, parseErr := strconv.ParseFloat(minAreaStr, 64); parseErr == nil {
			filter.MinArea = minArea
		}
	}
	if maxAreaStr := c.Query("max_area"); maxAreaStr != "" {
		if maxArea, parseErr := strconv.ParseFloat(maxAreaStr, 64); parseErr == nil {
			filter.MaxArea = maxArea
		}
	}

	var sortSpec *query.Sort
	if sortKey := c.Query("sort"); sortKey != "" {
		if !query.ValidSortKey(sortKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort key: " + sortKey})
			return
		}
		sortSpec = &query.Sort{
			Key:       sortKey,
			Direction: c.DefaultQuery("order", query.DirectionAsc),
		}
	}

	c.JSON(http.StatusOK, query.Select(properties, filter, sortSpec))
}

// Get handles GET /api/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id := c.Param("id")

	property, err := h.store.GetProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// Create handles POST /api/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var in models.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.store.CreateProperty(&in)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Update handles PATCH /api/properties/:id. Only fields present in the body
// are merged; id and createdAt are dropped during decoding.
func (h *PropertyHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var patch models.PropertyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.store.UpdateProperty(id, &patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// Delete handles DELETE /api/properties/:id. Deleting an absent id is an
// error (404), not a no-op.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.store.DeleteProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		return
	}

	c.Status(http.StatusNoContent)
}
