package services

import (
	"context"
	"io"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

// DrawService defines the interface for draw history queries
type DrawService interface {
	// GetAllDraws retrieves every stored draw of a game, oldest first
	GetAllDraws(ctx context.Context, game models.Game) ([]*models.Draw, error)

	// GetLatestDraw retrieves the most recent draw of a game
	GetLatestDraw(ctx context.Context, game models.Game) (*models.Draw, error)

	// GetHistoryPage retrieves one page of a game's history, newest first
	GetHistoryPage(ctx context.Context, game models.Game, page, perPage int) (*models.HistoryPage, error)

	// GetOverview summarises the stored history of every game
	GetOverview(ctx context.Context) (*models.Overview, error)
}

// PredictionService defines the interface for number suggestions
type PredictionService interface {
	// GetPredictions runs every method for a game
	GetPredictions(ctx context.Context, game models.Game) (*models.PredictionSet, error)

	// Predict runs a single method for a game
	Predict(ctx context.Context, game models.Game, method models.Method) (*models.Prediction, error)
}

// SyncService defines the interface for refreshing the stored draw history
type SyncService interface {
	// Sync downloads and stores the full history of a game
	Sync(ctx context.Context, game models.Game) (*models.SyncResult, error)

	// SyncAll syncs every game, continuing past failures
	SyncAll(ctx context.Context) ([]*models.SyncResult, error)

	// Import stores the history read from a local CSV export
	Import(ctx context.Context, game models.Game, r io.Reader) (*models.SyncResult, error)
}

// AuthService defines the interface for administrator authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}
