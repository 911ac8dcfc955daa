package services

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

// DefaultRecentWindow is the number of latest draws used by the recent trend method
const DefaultRecentWindow = 30

// HistoricalFrequency suggests the most drawn numbers over the whole history.
// draws must be ordered oldest first.
func HistoricalFrequency(game models.Game, draws []*models.Draw) (*models.Prediction, error) {
	if len(draws) == 0 {
		return nil, models.ErrDataUnavailable
	}
	rules := game.Rules()
	return &models.Prediction{
		Game:         game,
		Method:       models.MethodHistoricalFrequency,
		MainNumbers:  TopByFrequency(mainSets(draws), rules.MainMax, rules.MainCount),
		BonusNumbers: TopByFrequency(bonusSets(draws), rules.BonusMax, rules.BonusCount),
	}, nil
}

// RecentTrend applies the frequency ranking to the last window draws only.
// Shorter histories are used as they are.
func RecentTrend(game models.Game, draws []*models.Draw, window int) (*models.Prediction, error) {
	if len(draws) == 0 {
		return nil, models.ErrDataUnavailable
	}
	if window <= 0 {
		window = DefaultRecentWindow
	}
	if len(draws) > window {
		draws = draws[len(draws)-window:]
	}
	rules := game.Rules()
	return &models.Prediction{
		Game:         game,
		Method:       models.MethodRecentTrend,
		MainNumbers:  TopByFrequency(mainSets(draws), rules.MainMax, rules.MainCount),
		BonusNumbers: TopByFrequency(bonusSets(draws), rules.BonusMax, rules.BonusCount),
	}, nil
}

// LastDrawAvoidance draws a random grid that shares no number with last
func LastDrawAvoidance(game models.Game, last *models.Draw, rng *rand.Rand) (*models.Prediction, error) {
	if last == nil {
		return nil, models.ErrDataUnavailable
	}
	rules := game.Rules()

	main, err := SampleExcluding(rules.MainMax, rules.MainCount, last.MainNumbers, rng)
	if err != nil {
		return nil, fmt.Errorf("main numbers: %w", err)
	}
	bonus, err := SampleExcluding(rules.BonusMax, rules.BonusCount, last.BonusNumbers, rng)
	if err != nil {
		return nil, fmt.Errorf("bonus numbers: %w", err)
	}
	return &models.Prediction{
		Game:         game,
		Method:       models.MethodLastDrawAvoidance,
		MainNumbers:  main,
		BonusNumbers: bonus,
	}, nil
}

// TopByFrequency counts the numbers 1..max over sets and returns the n most
// frequent, sorted ascending. Ties go to the lowest number, so numbers that
// never appear fill remaining slots from 1 upward.
func TopByFrequency(sets [][]int, max, n int) []int {
	if n <= 0 || max <= 0 {
		return []int{}
	}
	counts := make([]int, max+1)
	for _, set := range sets {
		for _, num := range set {
			if num >= 1 && num <= max {
				counts[num]++
			}
		}
	}

	ranked := make([]int, 0, max)
	for num := 1; num <= max; num++ {
		ranked = append(ranked, num)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	top := append([]int(nil), ranked[:n]...)
	sort.Ints(top)
	return top
}

// SampleExcluding picks n distinct numbers uniformly from 1..max minus exclude.
// It fails with ErrInvalidSelection when fewer than n candidates remain.
func SampleExcluding(max, n int, exclude []int, rng *rand.Rand) ([]int, error) {
	excluded := make(map[int]struct{}, len(exclude))
	for _, num := range exclude {
		excluded[num] = struct{}{}
	}
	pool := make([]int, 0, max)
	for num := 1; num <= max; num++ {
		if _, skip := excluded[num]; !skip {
			pool = append(pool, num)
		}
	}
	if len(pool) < n {
		return nil, fmt.Errorf("%w: need %d numbers, only %d available", models.ErrInvalidSelection, n, len(pool))
	}

	// partial Fisher-Yates: the first n slots end up uniformly sampled
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	picked := append([]int(nil), pool[:n]...)
	sort.Ints(picked)
	return picked, nil
}

func mainSets(draws []*models.Draw) [][]int {
	sets := make([][]int, len(draws))
	for i, d := range draws {
		sets[i] = d.MainNumbers
	}
	return sets
}

func bonusSets(draws []*models.Draw) [][]int {
	sets := make([][]int, len(draws))
	for i, d := range draws {
		sets[i] = d.BonusNumbers
	}
	return sets
}
