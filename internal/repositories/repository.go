package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

// ErrNotFound is returned when a lookup matches no stored draw
var ErrNotFound = errors.New("draw not found")

// DrawRepository defines the interface for draw history storage.
// Implementations keep draws per game; ReplaceAll is the only writer.
type DrawRepository interface {
	// FindAll returns every draw of the game, oldest first (date, then draw number)
	FindAll(ctx context.Context, game models.Game) ([]*models.Draw, error)
	// FindLatest returns the most recent draw or ErrNotFound
	FindLatest(ctx context.Context, game models.Game) (*models.Draw, error)
	// FindPage returns draws newest first, skipping offset and returning at most limit
	FindPage(ctx context.Context, game models.Game, offset, limit int) ([]*models.Draw, error)
	Count(ctx context.Context, game models.Game) (int64, error)
	// LastUpdated returns the latest write time of the game's draws (zero when empty)
	LastUpdated(ctx context.Context, game models.Game) (time.Time, error)
	// ReplaceAll atomically swaps the stored draws of the game for draws
	ReplaceAll(ctx context.Context, game models.Game, draws []*models.Draw) error
}
