package models

import "errors"

var (
	// ErrDataUnavailable is returned when no draws are stored for a game yet
	ErrDataUnavailable = errors.New("no draw data available")
	// ErrFetchFailure is returned when the draw history could not be downloaded or parsed
	ErrFetchFailure = errors.New("failed to fetch draw history")
	// ErrInvalidSelection is returned when a method cannot produce a full grid
	ErrInvalidSelection = errors.New("unable to produce a valid number selection")
	ErrUnknownGame      = errors.New("unknown game")
	ErrInvalidDraw      = errors.New("invalid draw")
)
