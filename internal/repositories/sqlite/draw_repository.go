package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
	"github.com/ArowuTest/lottery-insights/internal/repositories"
	"github.com/ArowuTest/lottery-insights/internal/utils"
)

const schema = `
	CREATE TABLE IF NOT EXISTS draws (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game TEXT NOT NULL,
		draw_date TEXT NOT NULL,
		draw_number INTEGER NOT NULL DEFAULT 0,
		main_numbers TEXT NOT NULL,
		bonus_numbers TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE (game, draw_date, draw_number)
	);

	CREATE INDEX IF NOT EXISTS idx_draws_game_date ON draws (game, draw_date, draw_number);
`

const drawColumns = `game, draw_date, draw_number, main_numbers, bonus_numbers, created_at, updated_at`

// DrawRepository implements repositories.DrawRepository on sqlite
type DrawRepository struct {
	db *sql.DB
}

var _ repositories.DrawRepository = (*DrawRepository)(nil)

// NewDrawRepository creates the schema if needed and returns the repository
func NewDrawRepository(ctx context.Context, db *sql.DB) (*DrawRepository, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &DrawRepository{db: db}, nil
}

// FindAll returns every draw of the game, oldest first
func (r *DrawRepository) FindAll(ctx context.Context, game models.Game) ([]*models.Draw, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+drawColumns+` FROM draws WHERE game = ? ORDER BY draw_date ASC, draw_number ASC`,
		string(game))
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	return scanDraws(rows)
}

// FindLatest returns the most recent draw of the game
func (r *DrawRepository) FindLatest(ctx context.Context, game models.Game) (*models.Draw, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+drawColumns+` FROM draws WHERE game = ? ORDER BY draw_date DESC, draw_number DESC LIMIT 1`,
		string(game))
	draw, err := scanDraw(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest draw: %w", err)
	}
	return draw, nil
}

// FindPage returns draws newest first
func (r *DrawRepository) FindPage(ctx context.Context, game models.Game, offset, limit int) ([]*models.Draw, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+drawColumns+` FROM draws WHERE game = ? ORDER BY draw_date DESC, draw_number DESC LIMIT ? OFFSET ?`,
		string(game), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw page: %w", err)
	}
	return scanDraws(rows)
}

// Count returns the number of stored draws of the game
func (r *DrawRepository) Count(ctx context.Context, game models.Game) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM draws WHERE game = ?`, string(game)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// LastUpdated returns the newest updated_at of the game's draws
func (r *DrawRepository) LastUpdated(ctx context.Context, game models.Game) (time.Time, error) {
	var updated sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(updated_at) FROM draws WHERE game = ?`, string(game)).Scan(&updated)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last update: %w", err)
	}
	if !updated.Valid {
		return time.Time{}, nil
	}
	return time.Unix(0, updated.Int64).UTC(), nil
}

// ReplaceAll swaps the game's draws inside one transaction. Creation times of
// draws that were already stored are kept.
func (r *DrawRepository) ReplaceAll(ctx context.Context, game models.Game, draws []*models.Draw) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	created, err := existingCreationTimes(ctx, tx, game)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM draws WHERE game = ?`, string(game)); err != nil {
		return fmt.Errorf("failed to clear draws: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO draws (`+drawColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().UnixNano()
	for _, d := range draws {
		key := d.Key()
		createdAt, ok := created[key]
		if !ok {
			createdAt = now
		}
		_, err = stmt.ExecContext(ctx,
			string(game),
			key.Date,
			d.DrawNumber,
			utils.FormatNumbers(d.MainNumbers),
			utils.FormatNumbers(d.BonusNumbers),
			createdAt,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert draw %s #%d: %w", key.Date, key.DrawNumber, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit draws: %w", err)
	}
	return nil
}

func existingCreationTimes(ctx context.Context, tx *sql.Tx, game models.Game) (map[models.DrawKey]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT draw_date, draw_number, created_at FROM draws WHERE game = ?`, string(game))
	if err != nil {
		return nil, fmt.Errorf("failed to read existing draws: %w", err)
	}
	defer rows.Close()

	created := make(map[models.DrawKey]int64)
	for rows.Next() {
		var key models.DrawKey
		var createdAt int64
		if err := rows.Scan(&key.Date, &key.DrawNumber, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan existing draw: %w", err)
		}
		created[key] = createdAt
	}
	return created, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraw(s scanner) (*models.Draw, error) {
	var (
		game, date, main, bonus string
		number                  int
		createdAt, updatedAt    int64
	)
	if err := s.Scan(&game, &date, &number, &main, &bonus, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	drawDate, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	mainNumbers, err := utils.ParseNumbers(main)
	if err != nil {
		return nil, err
	}
	bonusNumbers, err := utils.ParseNumbers(bonus)
	if err != nil {
		return nil, err
	}

	return &models.Draw{
		Game:         models.Game(game),
		Date:         drawDate,
		DrawNumber:   number,
		MainNumbers:  mainNumbers,
		BonusNumbers: bonusNumbers,
		CreatedAt:    time.Unix(0, createdAt).UTC(),
		UpdatedAt:    time.Unix(0, updatedAt).UTC(),
	}, nil
}

func scanDraws(rows *sql.Rows) ([]*models.Draw, error) {
	defer rows.Close()

	draws := []*models.Draw{}
	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}
	return draws, nil
}
