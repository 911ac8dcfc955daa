package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/metrics"
	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/repositories"
	"github.com/ArowuTest/lottery-insights/pkg/fdj"
)

// ErrSyncInProgress is returned when a sync is requested while another one runs
var ErrSyncInProgress = errors.New("a draw history sync is already running")

// DrawSource provides the raw CSV export of a game's draw history
type DrawSource interface {
	Fetch(ctx context.Context, game models.Game) (io.ReadCloser, error)
}

// Compile-time checks
var (
	_ SyncService = (*SyncServiceImpl)(nil)
	_ DrawSource  = (*fdj.Client)(nil)
)

// SyncServiceImpl refreshes the stored draw history from a DrawSource
type SyncServiceImpl struct {
	source   DrawSource
	drawRepo repositories.DrawRepository
	mu       sync.Mutex
}

// NewSyncService creates a new SyncServiceImpl
func NewSyncService(source DrawSource, drawRepo repositories.DrawRepository) *SyncServiceImpl {
	return &SyncServiceImpl{
		source:   source,
		drawRepo: drawRepo,
	}
}

// Sync downloads the full history of game and replaces the stored draws
func (s *SyncServiceImpl) Sync(ctx context.Context, game models.Game) (*models.SyncResult, error) {
	if err := checkGame(game); err != nil {
		return nil, err
	}
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	return s.syncGame(ctx, game)
}

// SyncAll syncs every game. Games that fail are logged and reported through
// the joined error; the results of the others are still returned.
func (s *SyncServiceImpl) SyncAll(ctx context.Context) ([]*models.SyncResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	results := make([]*models.SyncResult, 0, len(models.AllGames))
	var errs []error
	for _, game := range models.AllGames {
		result, err := s.syncGame(ctx, game)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}

// Import replaces the stored draws of game with the ones read from r
func (s *SyncServiceImpl) Import(ctx context.Context, game models.Game, r io.Reader) (*models.SyncResult, error) {
	if err := checkGame(game); err != nil {
		return nil, err
	}
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	result := &models.SyncResult{Game: game, StartedAt: time.Now().UTC()}
	err := s.store(ctx, game, r, result)
	s.finish(result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SyncServiceImpl) syncGame(ctx context.Context, game models.Game) (*models.SyncResult, error) {
	result := &models.SyncResult{Game: game, StartedAt: time.Now().UTC()}
	slog.Info("Syncing draw history", "game", game)

	body, err := s.source.Fetch(ctx, game)
	if err != nil {
		err = wrapFetchFailure(game, err)
		s.finish(result, err)
		return nil, err
	}
	defer body.Close()

	err = s.store(ctx, game, body, result)
	s.finish(result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// store parses r and swaps the game's draws. Nothing is written unless at
// least one valid draw was read.
func (s *SyncServiceImpl) store(ctx context.Context, game models.Game, r io.Reader, result *models.SyncResult) error {
	parsed, err := fdj.ParseDraws(game, r)
	if err != nil {
		return wrapFetchFailure(game, err)
	}

	draws := make([]*models.Draw, 0, len(parsed.Draws))
	skipped := parsed.Skipped
	for _, d := range parsed.Draws {
		if err := d.Validate(); err != nil {
			slog.Debug("Skipping invalid draw", "game", game, "date", d.Key().Date, "error", err)
			skipped++
			continue
		}
		draws = append(draws, d)
	}
	result.Fetched = len(draws)
	result.Skipped = skipped
	if len(draws) == 0 {
		return fmt.Errorf("%w: %s export contains no valid draw (%d rows skipped)", models.ErrFetchFailure, game.Label(), skipped)
	}

	existing, err := s.drawRepo.FindAll(ctx, game)
	if err != nil {
		return fmt.Errorf("failed to read stored draws: %w", err)
	}
	known := make(map[models.DrawKey]struct{}, len(existing))
	for _, d := range existing {
		known[d.Key()] = struct{}{}
	}
	for _, d := range draws {
		if _, ok := known[d.Key()]; !ok {
			result.Added++
		}
	}

	if err := s.drawRepo.ReplaceAll(ctx, game, draws); err != nil {
		return fmt.Errorf("failed to store %s draws: %w", game.Label(), err)
	}
	return nil
}

func (s *SyncServiceImpl) finish(result *models.SyncResult, err error) {
	result.FinishedAt = time.Now().UTC()
	duration := result.FinishedAt.Sub(result.StartedAt)
	metrics.RecordSync(string(result.Game), err == nil, duration, result.Fetched, result.Skipped)

	if err != nil {
		slog.Error("Draw history sync failed", "game", result.Game, "error", err)
		return
	}
	slog.Info("Draw history synced",
		"game", result.Game,
		"fetched", result.Fetched,
		"added", result.Added,
		"skipped", result.Skipped,
		"duration", duration)
}

func wrapFetchFailure(game models.Game, err error) error {
	if errors.Is(err, models.ErrFetchFailure) {
		return fmt.Errorf("%s: %w", game.Label(), err)
	}
	return fmt.Errorf("%s: %w: %w", game.Label(), models.ErrFetchFailure, err)
}
