package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/services"
)

// PredictionHandler handles prediction HTTP requests
type PredictionHandler struct {
	predictionService services.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// GetPredictions handles GET /games/:game/predictions, optionally ?method=
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	game, ok := parseGameParam(c)
	if !ok {
		return
	}

	if method := c.Query("method"); method != "" {
		if !validMethod(models.Method(method)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown prediction method"})
			return
		}
		prediction, err := h.predictionService.Predict(c.Request.Context(), game, models.Method(method))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, prediction)
		return
	}

	set, err := h.predictionService.GetPredictions(c.Request.Context(), game)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

func validMethod(method models.Method) bool {
	for _, m := range models.AllMethods {
		if m == method {
			return true
		}
	}
	return false
}
