package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-insights/internal/services"
)

// SyncHandler handles draw history refresh requests
type SyncHandler struct {
	syncService services.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService services.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// SyncAll handles POST /sync
func (h *SyncHandler) SyncAll(c *gin.Context) {
	results, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		status, message := errorStatus(err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": message, "results": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draw history updated", "results": results})
}

// SyncGame handles POST /games/:game/sync
func (h *SyncHandler) SyncGame(c *gin.Context) {
	game, ok := parseGameParam(c)
	if !ok {
		return
	}
	result, err := h.syncService.Sync(c.Request.Context(), game)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draw history updated", "result": result})
}
