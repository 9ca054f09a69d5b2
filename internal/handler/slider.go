package handler

import (
	"errors"
	"net/http"

	"hotelsearch/internal/model"
	"hotelsearch/internal/service"

	"github.com/gin-gonic/gin"
)

// SliderHandler drives the price range selector over HTTP
type SliderHandler struct {
	searchService *service.SearchService
}

// NewSliderHandler creates a new slider handler
func NewSliderHandler(searchService *service.SearchService) *SliderHandler {
	return &SliderHandler{
		searchService: searchService,
	}
}

// Event handles POST /api/v1/sessions/:id/slider
func (h *SliderHandler) Event(c *gin.Context) {
	var req model.SliderEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	validEvents := map[string]bool{
		"start":  true,
		"move":   true,
		"end":    true,
		"cancel": true,
	}
	if !validEvents[req.Event] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event. Must be one of: start, move, end, cancel"})
		return
	}

	resp, err := h.searchService.SliderEvent(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
