package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ArowuTest/lottery-insights/api/routes"
	"github.com/ArowuTest/lottery-insights/internal/config"
	"github.com/ArowuTest/lottery-insights/internal/logger"
	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/services"
	"github.com/ArowuTest/lottery-insights/internal/storage"
	"github.com/ArowuTest/lottery-insights/pkg/fdj"
	"github.com/ArowuTest/lottery-insights/pkg/jwt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(config.ConfigDir())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(&logger.Options{Level: logger.ParseLevel(cfg.LogLevel)})
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open draw store", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			slog.Error("Error closing draw store", "error", err)
		}
	}()

	secret := cfg.JWT.Secret
	if secret == "" {
		slog.Warn("jwt.secret is not set, using a random secret; tokens will not survive a restart")
		secret = uuid.NewString()
	}
	tokens, err := jwt.NewTokenService(secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	if err != nil {
		slog.Error("Failed to create token service", "error", err)
		os.Exit(1)
	}

	source := fdj.NewClient(cfg.Sources.LotoURL, cfg.Sources.EuroMillionsURL, cfg.Sources.Timeout)
	drawService := services.NewDrawService(store.Draws)
	predictionService := services.NewPredictionService(store.Draws, services.PredictionOptions{
		RecentWindow: cfg.Prediction.RecentWindow,
		Seed:         cfg.Prediction.Seed,
	})
	syncService := services.NewSyncService(source, store.Draws)
	authService := services.NewAuthService(models.AdminUser{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
	}, tokens)

	if cfg.Sync.OnStartup {
		go func() {
			if _, err := syncService.SyncAll(ctx); err != nil {
				slog.Error("Startup sync finished with errors", "error", err)
			}
		}()
	}

	var scheduler *services.SyncScheduler
	if cfg.Sync.Schedule != "" {
		scheduler, err = services.NewSyncScheduler(syncService, cfg.Sync.Schedule, 4*cfg.Sources.Timeout)
		if err != nil {
			slog.Error("Failed to create sync scheduler", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
	}

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		DrawService:       drawService,
		PredictionService: predictionService,
		SyncService:       syncService,
		AuthService:       authService,
		Tokens:            tokens,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port, "storage", store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}
