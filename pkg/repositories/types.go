package repositories

import "errors"

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "not found"
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

// ErrCustomDifficulty is returned for games on a custom grid, which have no highscore table
type ErrCustomDifficulty struct {
}

func (e *ErrCustomDifficulty) Error() string {
	return "custom games have no highscores"
}

func IsCustomDifficulty(err error) bool {
	var target *ErrCustomDifficulty
	return errors.As(err, &target)
}

// ErrMissingPlayerName is returned when a game is stored without a player name
type ErrMissingPlayerName struct {
}

func (e *ErrMissingPlayerName) Error() string {
	return "player name is required"
}

func IsMissingPlayerName(err error) bool {
	var target *ErrMissingPlayerName
	return errors.As(err, &target)
}
