package handler

import (
	"net/http"

	"hotelsearch/internal/model"
	"hotelsearch/internal/service"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler persists fetched listing arrays for later sessions
type SnapshotHandler struct {
	searchService *service.SearchService
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(searchService *service.SearchService) *SnapshotHandler {
	return &SnapshotHandler{
		searchService: searchService,
	}
}

// Create handles POST /api/v1/snapshots
func (h *SnapshotHandler) Create(c *gin.Context) {
	var req model.CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Listings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No listings provided"})
		return
	}

	id, err := h.searchService.SaveSnapshot(c.Request.Context(), req.Query, req.Listings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save snapshot: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.CreateSnapshotResponse{
		SnapshotID: id,
		Count:      len(req.Listings),
	})
}
