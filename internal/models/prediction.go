package models

import "time"

// Method is one of the number suggestion heuristics
type Method string

const (
	MethodHistoricalFrequency Method = "historical_frequency"
	MethodRecentTrend         Method = "recent_trend"
	MethodLastDrawAvoidance   Method = "last_draw_avoidance"
)

// AllMethods lists the methods in display order
var AllMethods = []Method{MethodHistoricalFrequency, MethodRecentTrend, MethodLastDrawAvoidance}

// Label returns a human readable name for the method
func (m Method) Label() string {
	switch m {
	case MethodHistoricalFrequency:
		return "Historical frequency"
	case MethodRecentTrend:
		return "Recent trend"
	case MethodLastDrawAvoidance:
		return "Last draw avoidance"
	default:
		return string(m)
	}
}

// Prediction is a suggested grid computed for one game and method
type Prediction struct {
	Game         Game      `json:"game"`
	Method       Method    `json:"method"`
	MainNumbers  []int     `json:"mainNumbers"`
	BonusNumbers []int     `json:"bonusNumbers"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// PredictionSet groups every method's outcome for a game
type PredictionSet struct {
	Game        Game                   `json:"game"`
	DrawCount   int                    `json:"drawCount"`
	Predictions map[Method]*Prediction `json:"predictions"`
	Failures    map[Method]string      `json:"failures,omitempty"`
}

// Ordered returns the predictions in AllMethods order, skipping failed methods
func (s *PredictionSet) Ordered() []*Prediction {
	out := make([]*Prediction, 0, len(s.Predictions))
	for _, m := range AllMethods {
		if p, ok := s.Predictions[m]; ok {
			out = append(out, p)
		}
	}
	return out
}
