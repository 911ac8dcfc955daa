package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/services"
)

// errorStatus maps a service error to an HTTP status and a user facing message
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrUnknownGame):
		return http.StatusBadRequest, "Unknown game"
	case errors.Is(err, models.ErrDataUnavailable):
		return http.StatusNotFound, "No draw history is available yet, run an update first"
	case errors.Is(err, services.ErrSyncInProgress):
		return http.StatusConflict, "An update is already running"
	case errors.Is(err, models.ErrFetchFailure):
		return http.StatusBadGateway, "Unable to download the draw history: " + err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, models.ErrInvalidSelection):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes err as a JSON error body
func respondError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": message})
}

// parseGameParam reads the :game path parameter, writing a 400 when it is invalid
func parseGameParam(c *gin.Context) (models.Game, bool) {
	game, err := models.ParseGame(c.Param("game"))
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return game, true
}
