package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/ignyos/trepenta/internal/repositories/game Repository

import (
	"context"

	"github.com/ignyos/trepenta/internal/models"
)

// Repository defines the interface for game data persistence
type Repository interface {
	// SaveGame persists a game
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// UpdateGame atomically loads, changes and saves a game
	UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error)

	// DeleteGame removes a game
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// ListGames retrieves the games of a scope, or all games, newest first
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)

	// SetCurrentGame records the game in progress for a scope
	SetCurrentGame(ctx context.Context, input *SetCurrentGameInput) error

	// GetCurrentGameID retrieves the ID of the game in progress for a scope
	GetCurrentGameID(ctx context.Context, input *GetCurrentGameIDInput) (string, error)

	// ClearCurrentGame forgets the game in progress for a scope
	ClearCurrentGame(ctx context.Context, input *ClearCurrentGameInput) error
}
