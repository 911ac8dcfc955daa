package models

import "time"

// SyncResult summarises one refresh of a game's draw history
type SyncResult struct {
	Game       Game      `json:"game"`
	Fetched    int       `json:"fetched"`
	Added      int       `json:"added"`
	Skipped    int       `json:"skipped"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// HistoryPage is one page of a game's draw history, newest first
type HistoryPage struct {
	Game       Game      `json:"game"`
	Items      []*Draw   `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Pages      int       `json:"pages"`
	PerPage    int       `json:"perPage"`
	LastUpdate time.Time `json:"lastUpdate,omitempty"`
}

// GameOverview is the per-game block of the overview page
type GameOverview struct {
	Game       Game      `json:"game"`
	Label      string    `json:"label"`
	Latest     []*Draw   `json:"latest"`
	Count      int64     `json:"count"`
	LastUpdate time.Time `json:"lastUpdate,omitempty"`
}

// Overview summarises the stored history of every game
type Overview struct {
	Games      []*GameOverview `json:"games"`
	LastUpdate time.Time       `json:"lastUpdate,omitempty"`
}
