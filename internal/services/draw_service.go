package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/repositories"
	"github.com/ArowuTest/lottery-insights/internal/utils"
)

const (
	// DefaultPerPage is the history page size
	DefaultPerPage = 30
	// OverviewLatest is the number of recent draws shown per game on the overview
	OverviewLatest = 10
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl handles draw history queries
type DrawServiceImpl struct {
	drawRepo repositories.DrawRepository
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(drawRepo repositories.DrawRepository) *DrawServiceImpl {
	return &DrawServiceImpl{drawRepo: drawRepo}
}

// GetAllDraws retrieves every stored draw of game, oldest first
func (s *DrawServiceImpl) GetAllDraws(ctx context.Context, game models.Game) ([]*models.Draw, error) {
	if err := checkGame(game); err != nil {
		return nil, err
	}
	draws, err := s.drawRepo.FindAll(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to get draws: %w", err)
	}
	return draws, nil
}

// GetLatestDraw retrieves the most recent draw of game
func (s *DrawServiceImpl) GetLatestDraw(ctx context.Context, game models.Game) (*models.Draw, error) {
	if err := checkGame(game); err != nil {
		return nil, err
	}
	draw, err := s.drawRepo.FindLatest(ctx, game)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", game.Label(), models.ErrDataUnavailable)
		}
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}
	return draw, nil
}

// GetHistoryPage retrieves one page of game's history, newest first. Out of
// range pages are clamped.
func (s *DrawServiceImpl) GetHistoryPage(ctx context.Context, game models.Game, page, perPage int) (*models.HistoryPage, error) {
	if err := checkGame(game); err != nil {
		return nil, err
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total, err := s.drawRepo.Count(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to count draws: %w", err)
	}
	pages, current, offset := utils.Paginate(total, page, perPage)

	items, err := s.drawRepo.FindPage(ctx, game, offset, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to get history page: %w", err)
	}
	lastUpdate, err := s.drawRepo.LastUpdated(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to get last update: %w", err)
	}

	return &models.HistoryPage{
		Game:       game,
		Items:      items,
		Total:      total,
		Page:       current,
		Pages:      pages,
		PerPage:    perPage,
		LastUpdate: lastUpdate,
	}, nil
}

// GetOverview summarises every game: latest draws, count and last update
func (s *DrawServiceImpl) GetOverview(ctx context.Context) (*models.Overview, error) {
	overview := &models.Overview{Games: make([]*models.GameOverview, 0, len(models.AllGames))}

	for _, game := range models.AllGames {
		count, err := s.drawRepo.Count(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s draws: %w", game, err)
		}
		latest, err := s.drawRepo.FindPage(ctx, game, 0, OverviewLatest)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest %s draws: %w", game, err)
		}
		lastUpdate, err := s.drawRepo.LastUpdated(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s last update: %w", game, err)
		}

		overview.Games = append(overview.Games, &models.GameOverview{
			Game:       game,
			Label:      game.Label(),
			Latest:     latest,
			Count:      count,
			LastUpdate: lastUpdate,
		})
		if lastUpdate.After(overview.LastUpdate) {
			overview.LastUpdate = lastUpdate
		}
	}
	return overview, nil
}

func checkGame(game models.Game) error {
	if !game.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownGame, game)
	}
	return nil
}
