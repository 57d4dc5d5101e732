package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ignyos/trepenta/internal/repositories/player Repository

import (
	"context"

	"github.com/ignyos/trepenta/internal/models"
)

// Repository defines the interface for player data persistence
type Repository interface {
	// SavePlayer persists a player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// GetPlayerByName retrieves a player by name, ignoring case
	GetPlayerByName(ctx context.Context, input *GetPlayerByNameInput) (*models.Player, error)

	// ListPlayers retrieves all players in the order they were created
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)
}
