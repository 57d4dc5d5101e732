package scorekeeper

import (
	"github.com/ignyos/trepenta/internal/common/clock"
	"github.com/ignyos/trepenta/internal/common/uuid"
	"github.com/ignyos/trepenta/internal/dice"
	"github.com/ignyos/trepenta/internal/models"
	gameRepo "github.com/ignyos/trepenta/internal/repositories/game"
	playerRepo "github.com/ignyos/trepenta/internal/repositories/player"
	"github.com/ignyos/trepenta/internal/rules"
	"github.com/rs/zerolog"
)

// MinPlayers is the smallest table a game can be started with
const MinPlayers = 2

// Config holds configuration for the scorekeeper service
type Config struct {
	// Repository dependencies
	GameRepo   gameRepo.Repository
	PlayerRepo playerRepo.Repository

	// HouseRules is the catalog games are validated against
	HouseRules *rules.Catalog

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger receives storage failures, nil discards
	Logger *zerolog.Logger
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	// Scope owns the current game pointer ("local" or a channel ID)
	Scope string

	// PlayerNames are the players in turn order
	PlayerNames []string

	// DealerIndex is the seat dealing round one
	DealerIndex int

	// RandomDealer draws the first dealer instead of using DealerIndex
	RandomDealer bool

	// HouseRules are catalog rule names in play
	HouseRules []string

	// Deck is the optional deck configuration
	Deck *models.DeckConfig

	// Force replaces an unfinished current game
	Force bool
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	Game *models.Game
}

// RecordScoreInput contains parameters for recording a score
type RecordScoreInput struct {
	GameID   string
	PlayerID string
	Round    int
	Score    int
}

// RecordScoreOutput contains the result of recording a score
type RecordScoreOutput struct {
	Game *models.Game

	// RoundCompleted is true when this score filled the last gap in its round
	RoundCompleted bool

	// JustCompleted is true when this score finished the game
	JustCompleted bool

	// Winner is set once the game is complete
	Winner *models.Standing
}

// ClearScoreInput contains parameters for clearing a score
type ClearScoreInput struct {
	GameID   string
	PlayerID string
	Round    int
}

// ClearScoreOutput contains the result of clearing a score
type ClearScoreOutput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

type GetGameOutput struct {
	Game *models.Game
}

type GetCurrentGameInput struct {
	Scope string
}

type GetCurrentGameOutput struct {
	Game *models.Game
}

// ListGamesInput limits the history to one scope. An empty Scope lists
// every game.
type ListGamesInput struct {
	Scope string
}

// GameSummary is a history entry
type GameSummary struct {
	Game      *models.Game
	Standings []*models.Standing

	// Winner is only set for completed games
	Winner *models.Standing
}

type ListGamesOutput struct {
	Games []*GameSummary
}

type DeleteGameInput struct {
	// Scope must own the game. Its current pointer is cleared if it
	// referenced the game.
	Scope  string
	GameID string
}

type DeleteGameOutput struct {
	// WasCurrent is true when the deleted game was the scope's current game
	WasCurrent bool
}

type AbandonGameInput struct {
	Scope string
}

type AbandonGameOutput struct {
	// GameID is the game that was being tracked, empty if there was none
	GameID string
}

type ListPlayersInput struct {
}

type ListPlayersOutput struct {
	Players []*models.Player
}

type ListHouseRulesInput struct {
}

type ListHouseRulesOutput struct {
	HouseRules []*rules.HouseRule
}
