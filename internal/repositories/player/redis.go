package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ignyos/trepenta/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key suffixes, appended to the configured prefix
	playerKeyPrefix     = "player:"
	playerNameKeyPrefix = "player_name:"
	playersByCreatedKey = "players_by_created"

	// DefaultKeyPrefix namespaces every key the repository writes
	DefaultKeyPrefix = "trepenta:"
)

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the Redis player repository
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

// NewRedis creates a new Redis-backed player repository
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

func (r *redisRepository) playerKey(playerID string) string {
	return r.prefix + playerKeyPrefix + playerID
}

func (r *redisRepository) nameKey(name string) string {
	return r.prefix + playerNameKeyPrefix + normalizeName(name)
}

func (r *redisRepository) createdKey() string {
	return r.prefix + playersByCreatedKey
}

// normalizeName folds a display name into its index form
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SavePlayer persists a player to Redis
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	player := input.Player

	// Ensure the player has an ID
	if player.ID == "" {
		return errors.New("player ID cannot be empty")
	}

	// Marshal the player to JSON
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	// A rename leaves the old name pointing nowhere
	previous, err := r.GetPlayer(ctx, &GetPlayerInput{PlayerID: player.ID})
	if err != nil && !errors.Is(err, ErrPlayerNotFound) {
		return err
	}

	pipe := r.client.TxPipeline()

	if previous != nil && normalizeName(previous.Name) != normalizeName(player.Name) {
		pipe.Del(ctx, r.nameKey(previous.Name))
	}

	pipe.Set(ctx, r.playerKey(player.ID), playerJSON, 0)

	if normalizeName(player.Name) != "" {
		pipe.Set(ctx, r.nameKey(player.Name), player.ID, 0)
	}

	pipe.ZAdd(ctx, r.createdKey(), redis.Z{
		Score:  float64(player.CreatedAt.UnixMicro()),
		Member: player.ID,
	})

	// Execute the transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by ID from Redis
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	playerJSON, err := r.client.Get(ctx, r.playerKey(input.PlayerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var player models.Player
	if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &player, nil
}

// GetPlayerByName retrieves a player through the name index
func (r *redisRepository) GetPlayerByName(ctx context.Context, input *GetPlayerByNameInput) (*models.Player, error) {
	if input == nil || normalizeName(input.Name) == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	playerID, err := r.client.Get(ctx, r.nameKey(input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player ID for name: %w", err)
	}

	return r.GetPlayer(ctx, &GetPlayerInput{
		PlayerID: playerID,
	})
}

// ListPlayers retrieves all players from Redis, oldest first
func (r *redisRepository) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	playerIDs, err := r.client.ZRange(ctx, r.createdKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player IDs: %w", err)
	}

	// If there are no players, return an empty slice
	if len(playerIDs) == 0 {
		return &ListPlayersOutput{
			Players: []*models.Player{},
		}, nil
	}

	// Get all player records using a pipeline
	pipe := r.client.Pipeline()
	playerCommands := make([]*redis.StringCmd, len(playerIDs))
	for i, playerID := range playerIDs {
		playerCommands[i] = pipe.Get(ctx, r.playerKey(playerID))
	}

	// redis.Nil on a single command is handled below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]*models.Player, 0, len(playerIDs))
	for i, cmd := range playerCommands {
		playerJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", playerIDs[i], err)
		}

		var player models.Player
		if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", playerIDs[i], err)
		}

		players = append(players, &player)
	}

	return &ListPlayersOutput{
		Players: players,
	}, nil
}
