package routes

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-insights/internal/config"
	"github.com/ArowuTest/lottery-insights/internal/handlers"
	"github.com/ArowuTest/lottery-insights/internal/metrics"
	"github.com/ArowuTest/lottery-insights/internal/middleware"
	"github.com/ArowuTest/lottery-insights/internal/services"
	"github.com/ArowuTest/lottery-insights/pkg/jwt"
)

// HandlerDependencies holds the services the router wires into handlers
type HandlerDependencies struct {
	DrawService       services.DrawService
	PredictionService services.PredictionService
	SyncService       services.SyncService
	AuthService       services.AuthService
	Tokens            *jwt.TokenService
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(template.Must(handlers.LoadTemplates()))

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedHosts))

	drawHandler := handlers.NewDrawHandler(deps.DrawService)
	predictionHandler := handlers.NewPredictionHandler(deps.PredictionService)
	syncHandler := handlers.NewSyncHandler(deps.SyncService)
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	pageHandler := handlers.NewPageHandler(deps.DrawService, deps.PredictionService, deps.SyncService, 2*cfg.Sources.Timeout)

	syncLimiter := middleware.NewRateLimiter(cfg.RateLimit.SyncPerMinute, cfg.RateLimit.Burst)

	// HTML pages
	router.GET("/", pageHandler.Index)
	router.GET("/history/:game", pageHandler.History)
	router.POST("/update", syncLimiter.Middleware(), pageHandler.Update)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
				"time":   time.Now().UTC(),
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		public.GET("/overview", drawHandler.GetOverview)

		games := public.Group("/games")
		{
			games.GET("", drawHandler.ListGames)
			games.GET("/:game/draws", drawHandler.GetDraws)
			games.GET("/:game/draws/latest", drawHandler.GetLatestDraw)
			games.GET("/:game/predictions", predictionHandler.GetPredictions)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(deps.Tokens), syncLimiter.Middleware())
	{
		protected.POST("/sync", syncHandler.SyncAll)
		protected.POST("/games/:game/sync", syncHandler.SyncGame)
	}

	return router
}
