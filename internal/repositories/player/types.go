package player

import "github.com/ignyos/trepenta/internal/models"

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}

// GetPlayerByNameInput contains parameters for retrieving a player by name
type GetPlayerByNameInput struct {
	Name string
}

type ListPlayersInput struct {
}

// ListPlayersOutput contains the result of listing players
type ListPlayersOutput struct {
	Players []*models.Player
}
