package game

import "errors"

var (
	ErrServerInactive      = errors.New("server is not active")
	ErrMissingPlayerFields = errors.New("name and position are required")
	ErrPlayerExists        = errors.New("player name already registered")
	ErrMissingPosition     = errors.New("position not specified")
	ErrGameInProgress      = errors.New("game is already in progress")
	ErrGameNotInProgress   = errors.New("game is not in progress")
	ErrNoMoreQuestions     = errors.New("no more questions, the game is over")
	ErrIncompleteResults   = errors.New("incomplete data to record results")
	ErrPlayerNotFound      = errors.New("player not registered")
)
