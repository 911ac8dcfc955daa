package models

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the layout used to store and display draw dates
const DateLayout = "2006-01-02"

// Draw represents one historical result of a game
type Draw struct {
	Game         Game      `bson:"game" json:"game"`
	Date         time.Time `bson:"drawDate" json:"drawDate"`
	DrawNumber   int       `bson:"drawNumber" json:"drawNumber,omitempty"` // 0 when the source has none
	MainNumbers  []int     `bson:"mainNumbers" json:"mainNumbers"`
	BonusNumbers []int     `bson:"bonusNumbers" json:"bonusNumbers"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DrawKey identifies a draw inside a game's history
type DrawKey struct {
	Date       string
	DrawNumber int
}

// Key returns the identity of the draw
func (d *Draw) Key() DrawKey {
	return DrawKey{Date: d.Date.Format(DateLayout), DrawNumber: d.DrawNumber}
}

// Validate checks the number count and range invariants of the draw's game
func (d *Draw) Validate() error {
	rules := d.Game.Rules()
	if !d.Game.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidDraw, ErrUnknownGame, d.Game)
	}
	if d.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidDraw)
	}
	if err := validateSet(d.MainNumbers, rules.MainCount, rules.MainMax); err != nil {
		return fmt.Errorf("%w: main numbers: %v", ErrInvalidDraw, err)
	}
	if err := validateSet(d.BonusNumbers, rules.BonusCount, rules.BonusMax); err != nil {
		return fmt.Errorf("%w: bonus numbers: %v", ErrInvalidDraw, err)
	}
	return nil
}

// Normalize sorts the number sets in place
func (d *Draw) Normalize() {
	sort.Ints(d.MainNumbers)
	sort.Ints(d.BonusNumbers)
}

func validateSet(numbers []int, count, max int) error {
	if len(numbers) != count {
		return fmt.Errorf("expected %d numbers, got %d", count, len(numbers))
	}
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > max {
			return fmt.Errorf("number %d outside 1..%d", n, max)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("duplicate number %d", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// SortDraws orders draws by date then draw number, oldest first
func SortDraws(draws []*Draw) {
	sort.SliceStable(draws, func(i, j int) bool {
		if !draws[i].Date.Equal(draws[j].Date) {
			return draws[i].Date.Before(draws[j].Date)
		}
		return draws[i].DrawNumber < draws[j].DrawNumber
	})
}
