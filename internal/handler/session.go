package handler

import (
	"errors"
	"net/http"

	"hotelsearch/internal/model"
	"hotelsearch/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles filter-session HTTP requests
type SessionHandler struct {
	searchService *service.SearchService
	maxListings   int
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(searchService *service.SearchService, maxListings int) *SessionHandler {
	return &SessionHandler{
		searchService: searchService,
		maxListings:   maxListings,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req model.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if h.maxListings > 0 && len(req.Listings) > h.maxListings {
		req.Listings = req.Listings[:h.maxListings]
	}

	resp, err := h.searchService.CreateSession(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoListings) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Facets handles GET /api/v1/sessions/:id/facets
func (h *SessionHandler) Facets(c *gin.Context) {
	resp, err := h.searchService.Facets(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Results handles GET /api/v1/sessions/:id/results
func (h *SessionHandler) Results(c *gin.Context) {
	resp, err := h.searchService.Results(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Toggle handles POST /api/v1/sessions/:id/toggle
func (h *SessionHandler) Toggle(c *gin.Context) {
	var req model.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.searchService.Toggle(c.Param("id"), req.Group, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownFacet) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Clear handles POST /api/v1/sessions/:id/clear
func (h *SessionHandler) Clear(c *gin.Context) {
	var req model.ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.searchService.ClearGroup(c.Param("id"), req.Group)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.searchService.DeleteSession(c.Param("id")); err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
