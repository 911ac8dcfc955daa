package services

import (
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

var baseDate = time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)

func lotoDraw(i int, main ...int) *models.Draw {
	return &models.Draw{
		Game:         models.GameLoto,
		Date:         baseDate.AddDate(0, 0, 3*i),
		DrawNumber:   i + 1,
		MainNumbers:  main,
		BonusNumbers: []int{i%10 + 1},
	}
}

func euroDraw(i int, main []int, stars []int) *models.Draw {
	return &models.Draw{
		Game:         models.GameEuroMillions,
		Date:         baseDate.AddDate(0, 0, 3*i),
		DrawNumber:   i + 1,
		MainNumbers:  main,
		BonusNumbers: stars,
	}
}

// consecutiveDraws builds n valid Loto draws numbered 1..n
func consecutiveDraws(n int) []*models.Draw {
	draws := make([]*models.Draw, n)
	for i := 0; i < n; i++ {
		a := i%45 + 1
		draws[i] = lotoDraw(i, a, a+1, a+2, a+3, a+4)
	}
	return draws
}

func intersects(a, b []int) bool {
	seen := make(map[int]bool, len(a))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if seen[n] {
			return true
		}
	}
	return false
}
