package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ignyos/trepenta/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key suffixes, appended to the configured prefix
	gameKeyPrefix        = "game:"
	gamesByCreatedKey    = "games_by_created"
	currentGameKeyPrefix = "current_game:"

	// DefaultKeyPrefix namespaces every key the repository writes
	DefaultKeyPrefix = "trepenta:"

	// maxUpdateAttempts bounds the optimistic transaction retries in UpdateGame
	maxUpdateAttempts = 100
)

var (
	// ErrGameNotFound is returned when a game is not found
	ErrGameNotFound = errors.New("game not found")

	// ErrNoCurrentGame is returned when a scope has no game in progress
	ErrNoCurrentGame = errors.New("no current game")

	// ErrUpdateConflict is returned when a game keeps changing under UpdateGame
	ErrUpdateConflict = errors.New("game was modified concurrently")
)

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// KeyPrefix is prepended to every key, defaults to DefaultKeyPrefix
	KeyPrefix string
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &redisRepository{
		client: cfg.RedisClient,
		prefix: prefix,
	}, nil
}

func (r *redisRepository) gameKey(gameID string) string {
	return r.prefix + gameKeyPrefix + gameID
}

func (r *redisRepository) createdKey() string {
	return r.prefix + gamesByCreatedKey
}

// scopeCreatedKey indexes the games of a single scope
func (r *redisRepository) scopeCreatedKey(scope string) string {
	return r.prefix + gamesByCreatedKey + ":" + scope
}

func (r *redisRepository) currentKey(scope string) string {
	return r.prefix + currentGameKeyPrefix + scope
}

// SaveGame persists a game to Redis
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	// Marshal the game to JSON
	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.TxPipeline()

	pipe.Set(ctx, r.gameKey(input.Game.ID), gameJSON, 0)

	// Index by creation time for the history listing. Microseconds fit
	// exactly in a float64 score.
	created := redis.Z{
		Score:  float64(input.Game.CreatedAt.UnixMicro()),
		Member: input.Game.ID,
	}
	pipe.ZAdd(ctx, r.createdKey(), created)
	if input.Game.Scope != "" {
		pipe.ZAdd(ctx, r.scopeCreatedKey(input.Game.Scope), created)
	}

	// Execute the transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameJSON, err := r.client.Get(ctx, r.gameKey(input.GameID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// UpdateGame loads a game, applies the update and saves it in one optimistic
// transaction. The update is retried from a fresh copy of the game whenever
// another client changes it first, so it must not keep state across calls.
// An error returned by the update aborts the transaction and is returned as is.
func (r *redisRepository) UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" || input.Update == nil {
		return nil, errors.New("game ID and update cannot be empty")
	}

	key := r.gameKey(input.GameID)

	var updated *models.Game
	txf := func(tx *redis.Tx) error {
		gameJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrGameNotFound
			}
			return fmt.Errorf("failed to get game: %w", err)
		}

		var game models.Game
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return fmt.Errorf("failed to unmarshal game: %w", err)
		}

		if err := input.Update(&game); err != nil {
			return err
		}

		updatedJSON, err := json.Marshal(&game)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}

		// Only runs if the watched key is unchanged
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updatedJSON, 0)
			return nil
		}); err != nil {
			return err
		}

		updated = &game
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrUpdateConflict
}

// DeleteGame removes a game and its history entries from Redis
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	// The scope index is only known from the stored game
	game, err := r.GetGame(ctx, &GetGameInput{GameID: input.GameID})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, r.gameKey(input.GameID))
	pipe.ZRem(ctx, r.createdKey(), input.GameID)
	if game.Scope != "" {
		pipe.ZRem(ctx, r.scopeCreatedKey(game.Scope), input.GameID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if deleted.Val() == 0 {
		return ErrGameNotFound
	}

	return nil
}

// ListGames retrieves games from Redis, newest first. An empty scope lists
// every game.
func (r *redisRepository) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	indexKey := r.createdKey()
	if input != nil && input.Scope != "" {
		indexKey = r.scopeCreatedKey(input.Scope)
	}

	gameIDs, err := r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game IDs: %w", err)
	}

	// If there are no games, return an empty slice
	if len(gameIDs) == 0 {
		return &ListGamesOutput{
			Games: []*models.Game{},
		}, nil
	}

	// Get all games using a pipeline
	pipe := r.client.Pipeline()
	gameCommands := make([]*redis.StringCmd, len(gameIDs))
	for i, gameID := range gameIDs {
		gameCommands[i] = pipe.Get(ctx, r.gameKey(gameID))
	}

	// redis.Nil on a single command is handled below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	for i, cmd := range gameCommands {
		gameJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Game was deleted between reading the index and fetching the game
				continue
			}
			return nil, fmt.Errorf("failed to get game %s: %w", gameIDs[i], err)
		}

		var game models.Game
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameIDs[i], err)
		}

		games = append(games, &game)
	}

	return &ListGamesOutput{
		Games: games,
	}, nil
}

// SetCurrentGame records the game in progress for a scope
func (r *redisRepository) SetCurrentGame(ctx context.Context, input *SetCurrentGameInput) error {
	if input == nil || input.Scope == "" || input.GameID == "" {
		return errors.New("scope and game ID cannot be empty")
	}

	if err := r.client.Set(ctx, r.currentKey(input.Scope), input.GameID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set current game: %w", err)
	}

	return nil
}

// GetCurrentGameID retrieves the ID of the game in progress for a scope
func (r *redisRepository) GetCurrentGameID(ctx context.Context, input *GetCurrentGameIDInput) (string, error) {
	if input == nil || input.Scope == "" {
		return "", errors.New("input and scope cannot be empty")
	}

	gameID, err := r.client.Get(ctx, r.currentKey(input.Scope)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNoCurrentGame
		}
		return "", fmt.Errorf("failed to get current game: %w", err)
	}

	return gameID, nil
}

// ClearCurrentGame forgets the game in progress for a scope
func (r *redisRepository) ClearCurrentGame(ctx context.Context, input *ClearCurrentGameInput) error {
	if input == nil || input.Scope == "" {
		return errors.New("input and scope cannot be empty")
	}

	if err := r.client.Del(ctx, r.currentKey(input.Scope)).Err(); err != nil {
		return fmt.Errorf("failed to clear current game: %w", err)
	}

	return nil
}
