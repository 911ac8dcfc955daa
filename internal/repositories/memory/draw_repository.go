package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/repositories"
)

// DrawRepository keeps draws in process memory
type DrawRepository struct {
	mu      sync.RWMutex
	draws   map[models.Game][]*models.Draw
	updated map[models.Game]time.Time
}

var _ repositories.DrawRepository = (*DrawRepository)(nil)

// NewDrawRepository creates an empty in-memory DrawRepository
func NewDrawRepository() *DrawRepository {
	return &DrawRepository{
		draws:   make(map[models.Game][]*models.Draw),
		updated: make(map[models.Game]time.Time),
	}
}

// FindAll returns copies of every draw of the game, oldest first
func (r *DrawRepository) FindAll(ctx context.Context, game models.Game) ([]*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.draws[game]
	out := make([]*models.Draw, len(stored))
	for i, d := range stored {
		out[i] = clone(d)
	}
	return out, nil
}

// FindLatest returns the most recent draw of the game
func (r *DrawRepository) FindLatest(ctx context.Context, game models.Game) (*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.draws[game]
	if len(stored) == 0 {
		return nil, repositories.ErrNotFound
	}
	return clone(stored[len(stored)-1]), nil
}

// FindPage returns draws newest first
func (r *DrawRepository) FindPage(ctx context.Context, game models.Game, offset, limit int) ([]*models.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.draws[game]
	out := []*models.Draw{}
	if offset < 0 {
		offset = 0
	}
	for i := len(stored) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, clone(stored[i]))
	}
	return out, nil
}

// Count returns the number of stored draws of the game
func (r *DrawRepository) Count(ctx context.Context, game models.Game) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.draws[game])), nil
}

// LastUpdated returns the time of the last ReplaceAll for the game
func (r *DrawRepository) LastUpdated(ctx context.Context, game models.Game) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updated[game], nil
}

// ReplaceAll swaps the game's draws under the write lock
func (r *DrawRepository) ReplaceAll(ctx context.Context, game models.Game, draws []*models.Draw) error {
	now := time.Now().UTC()
	replacement := make([]*models.Draw, 0, len(draws))
	for _, d := range draws {
		c := clone(d)
		c.Game = game
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		replacement = append(replacement, c)
	}
	models.SortDraws(replacement)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws[game] = replacement
	r.updated[game] = now
	return nil
}

func clone(d *models.Draw) *models.Draw {
	c := *d
	c.MainNumbers = append([]int(nil), d.MainNumbers...)
	c.BonusNumbers = append([]int(nil), d.BonusNumbers...)
	return &c
}
