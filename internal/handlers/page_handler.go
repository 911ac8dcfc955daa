package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/services"
)

const flashCookie = "flash"

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Kind    string
	Message string
}

type gameView struct {
	*models.GameOverview
	Rules              models.GameRules
	Predictions        []*models.Prediction
	PredictionFailures map[models.Method]string
	PredictionError    string
}

type indexView struct {
	Title      string
	Flash      *Flash
	Error      string
	Games      []*gameView
	LastUpdate time.Time
}

type historyView struct {
	Title string
	Flash *Flash
	Label string
	Rules models.GameRules
	Page  *models.HistoryPage
}

// PageHandler renders the HTML pages
type PageHandler struct {
	drawService       services.DrawService
	predictionService services.PredictionService
	syncService       services.SyncService
	syncTimeout       time.Duration
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(drawService services.DrawService, predictionService services.PredictionService, syncService services.SyncService, syncTimeout time.Duration) *PageHandler {
	if syncTimeout <= 0 {
		syncTimeout = 2 * time.Minute
	}
	return &PageHandler{
		drawService:       drawService,
		predictionService: predictionService,
		syncService:       syncService,
		syncTimeout:       syncTimeout,
	}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	view := &indexView{Title: "Overview", Flash: popFlash(c)}

	overview, err := h.drawService.GetOverview(ctx)
	if err != nil {
		slog.Error("Failed to load overview", "error", err)
		_, view.Error = errorStatus(err)
		c.HTML(http.StatusInternalServerError, "index.html", view)
		return
	}
	view.LastUpdate = overview.LastUpdate

	for _, g := range overview.Games {
		view.Games = append(view.Games, h.gameView(ctx, g))
	}
	c.HTML(http.StatusOK, "index.html", view)
}

func (h *PageHandler) gameView(ctx context.Context, overview *models.GameOverview) *gameView {
	gv := &gameView{GameOverview: overview, Rules: overview.Game.Rules()}

	set, err := h.predictionService.GetPredictions(ctx, overview.Game)
	if err != nil {
		if !errors.Is(err, models.ErrDataUnavailable) {
			slog.Error("Failed to compute predictions", "game", overview.Game, "error", err)
		}
		_, gv.PredictionError = errorStatus(err)
		return gv
	}
	gv.Predictions = set.Ordered()
	gv.PredictionFailures = set.Failures
	return gv
}

// History handles GET /history/:game
func (h *PageHandler) History(c *gin.Context) {
	game, err := models.ParseGame(c.Param("game"))
	if err != nil {
		setFlash(c, "warning", "Unknown game requested.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	history, err := h.drawService.GetHistoryPage(c.Request.Context(), game, page, services.DefaultPerPage)
	if err != nil {
		slog.Error("Failed to load history", "game", game, "error", err)
		setFlash(c, "danger", "Unable to load the history right now.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "history.html", &historyView{
		Title: game.Label() + " history",
		Flash: popFlash(c),
		Label: game.Label(),
		Rules: game.Rules(),
		Page:  history,
	})
}

// Update handles POST /update: syncs every game then redirects to the overview
func (h *PageHandler) Update(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.syncTimeout)
	defer cancel()

	results, err := h.syncService.SyncAll(ctx)
	switch {
	case errors.Is(err, services.ErrSyncInProgress):
		setFlash(c, "warning", "An update is already running, please try again shortly.")
	case err != nil && len(results) == 0:
		setFlash(c, "danger", "Unable to fetch the draw history: "+err.Error())
	case err != nil:
		setFlash(c, "warning", summarise(results)+" Some games failed: "+err.Error())
	default:
		setFlash(c, "success", summarise(results))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func summarise(results []*models.SyncResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%d new %s draws", r.Added, r.Game.Label()))
	}
	return "Update finished: " + strings.Join(parts, ", ") + "."
}

func setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+"|"+message, 60, "/", "", false, true)
}

// popFlash reads and clears the flash cookie
func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	kind, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	switch kind {
	case "success", "warning", "danger":
	default:
		kind = "warning"
	}
	return &Flash{Kind: kind, Message: message}
}
