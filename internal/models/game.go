package models

import (
	"fmt"
	"strings"
)

// Game identifies a lottery game
type Game string

const (
	GameLoto         Game = "loto"
	GameEuroMillions Game = "euromillions"
)

// AllGames lists the supported games in display order
var AllGames = []Game{GameLoto, GameEuroMillions}

// GameRules describes the shape of a valid draw for a game
type GameRules struct {
	Game       Game   `json:"game"`
	Label      string `json:"label"`
	MainCount  int    `json:"mainCount"`
	MainMax    int    `json:"mainMax"`
	BonusCount int    `json:"bonusCount"`
	BonusMax   int    `json:"bonusMax"`
	BonusLabel string `json:"bonusLabel"`
}

var gameRules = map[Game]GameRules{
	GameLoto: {
		Game:       GameLoto,
		Label:      "Loto",
		MainCount:  5,
		MainMax:    49,
		BonusCount: 1,
		BonusMax:   10,
		BonusLabel: "Chance",
	},
	GameEuroMillions: {
		Game:       GameEuroMillions,
		Label:      "EuroMillions",
		MainCount:  5,
		MainMax:    50,
		BonusCount: 2,
		BonusMax:   12,
		BonusLabel: "Stars",
	},
}

// ParseGame converts a user supplied name into a Game (case-insensitive)
func ParseGame(name string) (Game, error) {
	game := Game(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := gameRules[game]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return game, nil
}

// Rules returns the number rules of the game. Unknown games get zero rules.
func (g Game) Rules() GameRules {
	return gameRules[g]
}

// Label returns the display name of the game
func (g Game) Label() string {
	if r, ok := gameRules[g]; ok {
		return r.Label
	}
	return string(g)
}

// Valid reports whether g is a supported game
func (g Game) Valid() bool {
	_, ok := gameRules[g]
	return ok
}
