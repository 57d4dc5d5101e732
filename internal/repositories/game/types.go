package game

import "github.com/ignyos/trepenta/internal/models"

type SaveGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

// UpdateGameInput changes a stored game in place. Update may run more
// than once when the game is modified concurrently.
type UpdateGameInput struct {
	GameID string
	Update func(game *models.Game) error
}

type DeleteGameInput struct {
	GameID string
}

// ListGamesInput selects the games of one scope, or every game when
// Scope is empty.
type ListGamesInput struct {
	Scope string
}

type ListGamesOutput struct {
	Games []*models.Game
}

// SetCurrentGameInput points a scope at a game.
// Scope is "local" for the CLI and the channel ID for Discord.
type SetCurrentGameInput struct {
	Scope  string
	GameID string
}

type GetCurrentGameIDInput struct {
	Scope string
}

type ClearCurrentGameInput struct {
	Scope string
}
