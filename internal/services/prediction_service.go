package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/repositories"
)

// Compile-time check to ensure PredictionServiceImpl implements PredictionService
var _ PredictionService = (*PredictionServiceImpl)(nil)

// PredictionOptions tunes the prediction methods
type PredictionOptions struct {
	// RecentWindow is the number of draws used by the recent trend method
	RecentWindow int
	// Seed fixes the random source of the avoidance method; 0 seeds from the clock
	Seed int64
}

// PredictionServiceImpl computes suggestions from the stored draw history
type PredictionServiceImpl struct {
	drawRepo repositories.DrawRepository
	opts     PredictionOptions
	now      func() time.Time
}

// NewPredictionService creates a new PredictionServiceImpl
func NewPredictionService(drawRepo repositories.DrawRepository, opts PredictionOptions) *PredictionServiceImpl {
	if opts.RecentWindow <= 0 {
		opts.RecentWindow = DefaultRecentWindow
	}
	return &PredictionServiceImpl{
		drawRepo: drawRepo,
		opts:     opts,
		now:      time.Now,
	}
}

// GetPredictions runs every method over the stored draws of game. A method that
// fails is listed in Failures; the set is returned as long as any draw exists.
func (s *PredictionServiceImpl) GetPredictions(ctx context.Context, game models.Game) (*models.PredictionSet, error) {
	draws, err := s.loadDraws(ctx, game)
	if err != nil {
		return nil, err
	}

	set := &models.PredictionSet{
		Game:        game,
		DrawCount:   len(draws),
		Predictions: make(map[models.Method]*models.Prediction, len(models.AllMethods)),
	}
	for _, method := range models.AllMethods {
		p, err := s.run(game, method, draws)
		if err != nil {
			slog.Warn("Prediction method failed", "game", game, "method", method, "error", err)
			if set.Failures == nil {
				set.Failures = make(map[models.Method]string)
			}
			set.Failures[method] = err.Error()
			continue
		}
		set.Predictions[method] = p
	}
	return set, nil
}

// Predict runs one method over the stored draws of game
func (s *PredictionServiceImpl) Predict(ctx context.Context, game models.Game, method models.Method) (*models.Prediction, error) {
	draws, err := s.loadDraws(ctx, game)
	if err != nil {
		return nil, err
	}
	return s.run(game, method, draws)
}

func (s *PredictionServiceImpl) loadDraws(ctx context.Context, game models.Game) ([]*models.Draw, error) {
	if err := checkGame(game); err != nil {
		return nil, err
	}
	draws, err := s.drawRepo.FindAll(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to load draws: %w", err)
	}
	if len(draws) == 0 {
		return nil, fmt.Errorf("%s: %w", game.Label(), models.ErrDataUnavailable)
	}
	return draws, nil
}

func (s *PredictionServiceImpl) run(game models.Game, method models.Method, draws []*models.Draw) (*models.Prediction, error) {
	var (
		p   *models.Prediction
		err error
	)
	switch method {
	case models.MethodHistoricalFrequency:
		p, err = HistoricalFrequency(game, draws)
	case models.MethodRecentTrend:
		p, err = RecentTrend(game, draws, s.opts.RecentWindow)
	case models.MethodLastDrawAvoidance:
		var last *models.Draw
		if len(draws) > 0 {
			last = draws[len(draws)-1]
		}
		p, err = LastDrawAvoidance(game, last, s.newRand())
	default:
		return nil, fmt.Errorf("unknown prediction method %q", method)
	}
	if err != nil {
		return nil, err
	}
	p.GeneratedAt = s.now().UTC()
	return p, nil
}

// newRand returns a generator private to one call
func (s *PredictionServiceImpl) newRand() *rand.Rand {
	seed := s.opts.Seed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

