package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/services"
)

// DrawHandler handles draw history HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
	}
}

// ListGames handles GET /games
func (h *DrawHandler) ListGames(c *gin.Context) {
	rules := make([]models.GameRules, 0, len(models.AllGames))
	for _, game := range models.AllGames {
		rules = append(rules, game.Rules())
	}
	c.JSON(http.StatusOK, gin.H{"games": rules})
}

// GetDraws handles GET /games/:game/draws. Without a page parameter every draw
// is returned oldest first; with one, a page of the history newest first.
func (h *DrawHandler) GetDraws(c *gin.Context) {
	game, ok := parseGameParam(c)
	if !ok {
		return
	}

	if pageParam, paged := c.GetQuery("page"); paged {
		page, err := strconv.Atoi(pageParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
			return
		}
		perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(services.DefaultPerPage)))
		if err != nil || perPage < 1 || perPage > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "per_page must be between 1 and 500"})
			return
		}
		history, err := h.drawService.GetHistoryPage(c.Request.Context(), game, page, perPage)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, history)
		return
	}

	draws, err := h.drawService.GetAllDraws(c.Request.Context(), game)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "count": len(draws), "draws": draws})
}

// GetLatestDraw handles GET /games/:game/draws/latest
func (h *DrawHandler) GetLatestDraw(c *gin.Context) {
	game, ok := parseGameParam(c)
	if !ok {
		return
	}
	draw, err := h.drawService.GetLatestDraw(c.Request.Context(), game)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// GetOverview handles GET /overview
func (h *DrawHandler) GetOverview(c *gin.Context) {
	overview, err := h.drawService.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
