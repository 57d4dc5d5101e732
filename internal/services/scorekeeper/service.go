package scorekeeper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ignyos/trepenta/internal/common/clock"
	"github.com/ignyos/trepenta/internal/common/uuid"
	"github.com/ignyos/trepenta/internal/dice"
	"github.com/ignyos/trepenta/internal/models"
	gameRepo "github.com/ignyos/trepenta/internal/repositories/game"
	playerRepo "github.com/ignyos/trepenta/internal/repositories/player"
	"github.com/ignyos/trepenta/internal/rules"
	"github.com/rs/zerolog"
)

// service implements the Service interface
type service struct {
	gameRepo      gameRepo.Repository
	playerRepo    playerRepo.Repository
	houseRules    *rules.Catalog
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
	log           zerolog.Logger
}

// New creates a new scorekeeper service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.HouseRules == nil {
		return nil, ErrNilHouseRules
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &service{
		gameRepo:      cfg.GameRepo,
		playerRepo:    cfg.PlayerRepo,
		houseRules:    cfg.HouseRules,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		log:           log.With().Str("service", "scorekeeper").Logger(),
	}, nil
}

// storageError logs a failed store operation and wraps it for the caller
func (s *service) storageError(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("storage error")
	return fmt.Errorf("failed to %s: %w", op, err)
}

// StartGame seats players and makes the new game current for its scope
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.Scope == "" {
		return nil, ErrInvalidScope
	}

	names, err := normalizePlayerNames(input.PlayerNames)
	if err != nil {
		return nil, err
	}

	dealerIndex := input.DealerIndex
	if input.RandomDealer {
		dealerIndex = s.diceRoller.Roll(len(names)) - 1
	}
	if dealerIndex < 0 || dealerIndex >= len(names) {
		return nil, ErrInvalidDealer
	}

	houseRules, err := s.resolveHouseRules(input.HouseRules)
	if err != nil {
		return nil, err
	}

	var deck *models.DeckConfig
	if input.Deck != nil {
		if input.Deck.Decks < 1 || input.Deck.JokersPerDeck < 0 {
			return nil, ErrInvalidDeck
		}
		deckCopy := *input.Deck
		deck = &deckCopy
	}

	// An unfinished game needs explicit confirmation before it is replaced
	if !input.Force {
		current, err := s.currentGame(ctx, input.Scope)
		if err != nil && !errors.Is(err, ErrNoCurrentGame) {
			return nil, err
		}
		if current != nil {
			return nil, ErrGameInProgress
		}
	}

	now := s.clock.Now()

	game := &models.Game{
		Scope:        input.Scope,
		PlayerIDs:    make([]string, 0, len(names)),
		PlayerNames:  make(map[string]string, len(names)),
		DealerIndex:  dealerIndex,
		Scores:       make(map[string][]*int, len(names)),
		CurrentRound: 1,
		HouseRules:   houseRules,
		Deck:         deck,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, name := range names {
		player, err := s.findOrCreatePlayer(ctx, name)
		if err != nil {
			return nil, err
		}

		game.PlayerIDs = append(game.PlayerIDs, player.ID)
		game.PlayerNames[player.ID] = player.Name
		game.Scores[player.ID] = []*int{}
	}

	game.ID = s.uuidGenerator.NewUUID()

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{
		Game: game,
	}); err != nil {
		return nil, s.storageError("save game", err)
	}

	if err := s.gameRepo.SetCurrentGame(ctx, &gameRepo.SetCurrentGameInput{
		Scope:  input.Scope,
		GameID: game.ID,
	}); err != nil {
		return nil, s.storageError("set current game", err)
	}

	s.log.Info().
		Str("game_id", game.ID).
		Str("scope", input.Scope).
		Int("players", len(game.PlayerIDs)).
		Msg("game started")

	return &StartGameOutput{
		Game: game,
	}, nil
}

// normalizePlayerNames trims names, drops blanks and rejects duplicates
func normalizePlayerNames(raw []string) ([]string, error) {
	names := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
		}
		seen[key] = true
		names = append(names, name)
	}

	if len(names) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	return names, nil
}

// resolveHouseRules maps rule names to their catalog spelling
func (s *service) resolveHouseRules(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	resolved := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		rule, ok := s.houseRules.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHouseRule, name)
		}
		if seen[rule.Name] {
			continue
		}
		seen[rule.Name] = true
		resolved = append(resolved, rule.Name)
	}

	return resolved, nil
}

// findOrCreatePlayer returns the player with the given name, creating one if needed
func (s *service) findOrCreatePlayer(ctx context.Context, name string) (*models.Player, error) {
	player, err := s.playerRepo.GetPlayerByName(ctx, &playerRepo.GetPlayerByNameInput{
		Name: name,
	})
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
		return nil, s.storageError("get player", err)
	}

	player = &models.Player{
		ID:        s.uuidGenerator.NewUUID(),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: player,
	}); err != nil {
		return nil, s.storageError("save player", err)
	}

	s.log.Debug().Str("player_id", player.ID).Str("name", name).Msg("player created")

	return player, nil
}

// loadGame retrieves a game, mapping a missing record to ErrGameNotFound
func (s *service) loadGame(ctx context.Context, gameID string) (*models.Game, error) {
	if gameID == "" {
		return nil, ErrGameNotFound
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: gameID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, s.storageError("get game", err)
	}

	return game, nil
}

// checkEditable reports whether a game can still take scores for the player
func checkEditable(game *models.Game, playerID string) error {
	if game.Completed {
		return ErrGameCompleted
	}

	if !game.HasPlayer(playerID) {
		return ErrPlayerNotInGame
	}

	return nil
}

// updateGame applies a change to a stored game atomically
func (s *service) updateGame(ctx context.Context, gameID string, update func(game *models.Game) error) (*models.Game, error) {
	if gameID == "" {
		return nil, ErrGameNotFound
	}

	game, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: gameID,
		Update: update,
	})
	if err != nil {
		var scorekeeperErr ScorekeeperError
		if errors.As(err, &scorekeeperErr) {
			return nil, scorekeeperErr
		}
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, s.storageError("update game", err)
	}

	return game, nil
}

// RecordScore sets a player's score for a round
func (s *service) RecordScore(ctx context.Context, input *RecordScoreInput) (*RecordScoreOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}

	if input.Score < 0 {
		return nil, ErrInvalidScore
	}

	if input.Round < 1 || input.Round > models.RoundsPerGame {
		return nil, ErrInvalidRound
	}

	roundCompleted, justCompleted := false, false
	game, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if err := checkEditable(game, input.PlayerID); err != nil {
			return err
		}

		wasComplete := game.RoundComplete(input.Round)
		if err := game.AddScore(input.PlayerID, input.Round, input.Score); err != nil {
			return ErrInvalidRound
		}
		roundCompleted = !wasComplete && game.RoundComplete(input.Round)

		game.CurrentRound = game.NextRound()
		game.UpdatedAt = s.clock.Now()

		justCompleted = game.IsComplete()
		game.Completed = justCompleted

		return nil
	})
	if err != nil {
		return nil, err
	}

	output := &RecordScoreOutput{
		Game:           game,
		RoundCompleted: roundCompleted,
		JustCompleted:  justCompleted,
	}

	if winner := game.Winner(); game.Completed && winner != nil {
		output.Winner = winner
		s.log.Info().
			Str("game_id", game.ID).
			Str("winner", output.Winner.PlayerName).
			Int("total", output.Winner.Total).
			Msg("game complete")
	}

	return output, nil
}

// ClearScore removes a player's score for a round
func (s *service) ClearScore(ctx context.Context, input *ClearScoreInput) (*ClearScoreOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}

	if input.Round < 1 || input.Round > models.RoundsPerGame {
		return nil, ErrInvalidRound
	}

	game, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if err := checkEditable(game, input.PlayerID); err != nil {
			return err
		}

		if err := game.ClearScore(input.PlayerID, input.Round); err != nil {
			return ErrInvalidRound
		}

		game.CurrentRound = game.NextRound()
		game.UpdatedAt = s.clock.Now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ClearScoreOutput{
		Game: game,
	}, nil
}

// GetGame retrieves a game by ID
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil {
		return nil, ErrGameNotFound
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{
		Game: game,
	}, nil
}

// currentGame returns the scope's unfinished game. A pointer to a missing
// or completed game is cleared.
func (s *service) currentGame(ctx context.Context, scope string) (*models.Game, error) {
	gameID, err := s.gameRepo.GetCurrentGameID(ctx, &gameRepo.GetCurrentGameIDInput{
		Scope: scope,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoCurrentGame) {
			return nil, ErrNoCurrentGame
		}
		return nil, s.storageError("get current game", err)
	}

	game, err := s.loadGame(ctx, gameID)
	if err != nil && !errors.Is(err, ErrGameNotFound) {
		return nil, err
	}

	if game == nil || game.Completed {
		if err := s.gameRepo.ClearCurrentGame(ctx, &gameRepo.ClearCurrentGameInput{
			Scope: scope,
		}); err != nil {
			return nil, s.storageError("clear current game", err)
		}
		return nil, ErrNoCurrentGame
	}

	return game, nil
}

// GetCurrentGame retrieves the unfinished game for a scope
func (s *service) GetCurrentGame(ctx context.Context, input *GetCurrentGameInput) (*GetCurrentGameOutput, error) {
	if input == nil || input.Scope == "" {
		return nil, ErrInvalidScope
	}

	game, err := s.currentGame(ctx, input.Scope)
	if err != nil {
		return nil, err
	}

	return &GetCurrentGameOutput{
		Game: game,
	}, nil
}

// ListGames returns the game history, newest first
func (s *service) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	scope := ""
	if input != nil {
		scope = input.Scope
	}

	result, err := s.gameRepo.ListGames(ctx, &gameRepo.ListGamesInput{
		Scope: scope,
	})
	if err != nil {
		return nil, s.storageError("list games", err)
	}

	summaries := make([]*GameSummary, 0, len(result.Games))
	for _, game := range result.Games {
		summary := &GameSummary{
			Game:      game,
			Standings: game.Standings(),
		}
		if game.Completed && len(summary.Standings) > 0 {
			summary.Winner = summary.Standings[0]
		}
		summaries = append(summaries, summary)
	}

	return &ListGamesOutput{
		Games: summaries,
	}, nil
}

// DeleteGame removes a game from history. Games of other scopes are
// reported as not found.
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrGameNotFound
	}

	if input.Scope == "" {
		return nil, ErrInvalidScope
	}

	game, err := s.loadGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if game.Scope != input.Scope {
		return nil, ErrGameNotFound
	}

	if err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
		GameID: input.GameID,
	}); err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, s.storageError("delete game", err)
	}

	output := &DeleteGameOutput{}

	currentID, err := s.gameRepo.GetCurrentGameID(ctx, &gameRepo.GetCurrentGameIDInput{
		Scope: input.Scope,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoCurrentGame) {
			return output, nil
		}
		return nil, s.storageError("get current game", err)
	}

	if currentID == input.GameID {
		if err := s.gameRepo.ClearCurrentGame(ctx, &gameRepo.ClearCurrentGameInput{
			Scope: input.Scope,
		}); err != nil {
			return nil, s.storageError("clear current game", err)
		}
		output.WasCurrent = true
	}

	return output, nil
}

// AbandonGame stops tracking the current game for a scope without deleting it
func (s *service) AbandonGame(ctx context.Context, input *AbandonGameInput) (*AbandonGameOutput, error) {
	if input == nil || input.Scope == "" {
		return nil, ErrInvalidScope
	}

	gameID, err := s.gameRepo.GetCurrentGameID(ctx, &gameRepo.GetCurrentGameIDInput{
		Scope: input.Scope,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoCurrentGame) {
			return nil, ErrNoCurrentGame
		}
		return nil, s.storageError("get current game", err)
	}

	if err := s.gameRepo.ClearCurrentGame(ctx, &gameRepo.ClearCurrentGameInput{
		Scope: input.Scope,
	}); err != nil {
		return nil, s.storageError("clear current game", err)
	}

	return &AbandonGameOutput{
		GameID: gameID,
	}, nil
}

// ListPlayers returns every known player ordered by name
func (s *service) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	result, err := s.playerRepo.ListPlayers(ctx, &playerRepo.ListPlayersInput{})
	if err != nil {
		return nil, s.storageError("list players", err)
	}

	players := result.Players
	sort.SliceStable(players, func(i, j int) bool {
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})

	return &ListPlayersOutput{
		Players: players,
	}, nil
}

// ListHouseRules returns the house rules a game can use
func (s *service) ListHouseRules(ctx context.Context, input *ListHouseRulesInput) (*ListHouseRulesOutput, error) {
	return &ListHouseRulesOutput{
		HouseRules: s.houseRules.All(),
	}, nil
}
