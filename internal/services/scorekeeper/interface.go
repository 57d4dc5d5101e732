package scorekeeper

import "context"

// Service defines the interface for scorekeeping operations
type Service interface {
	// StartGame seats players and makes the new game current for its scope
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// RecordScore sets a player's score for a round
	RecordScore(ctx context.Context, input *RecordScoreInput) (*RecordScoreOutput, error)

	// ClearScore removes a player's score for a round
	ClearScore(ctx context.Context, input *ClearScoreInput) (*ClearScoreOutput, error)

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// GetCurrentGame retrieves the unfinished game for a scope
	GetCurrentGame(ctx context.Context, input *GetCurrentGameInput) (*GetCurrentGameOutput, error)

	// ListGames returns the game history, newest first
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)

	// DeleteGame removes a game from history
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// AbandonGame stops tracking the current game for a scope without deleting it
	AbandonGame(ctx context.Context, input *AbandonGameInput) (*AbandonGameOutput, error)

	// ListPlayers returns every known player ordered by name
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// ListHouseRules returns the house rules a game can use
	ListHouseRules(ctx context.Context, input *ListHouseRulesInput) (*ListHouseRulesOutput, error)
}
