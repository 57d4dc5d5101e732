package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ignyos/trepenta/internal/common/clock"
	"github.com/ignyos/trepenta/internal/common/uuid"
	"github.com/ignyos/trepenta/internal/dice"
	"github.com/ignyos/trepenta/internal/logging"
	"github.com/ignyos/trepenta/internal/models"
	"github.com/ignyos/trepenta/internal/repositories/game"
	"github.com/ignyos/trepenta/internal/repositories/player"
	"github.com/ignyos/trepenta/internal/rules"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
	"github.com/redis/go-redis/v9"
)

// localScope owns the CLI's current game pointer
const localScope = "local"

// App is bound to every command's Run method. The service is built on first
// use so that help and version never touch Redis.
type App struct {
	globals *Globals
	out     io.Writer

	client      *redis.Client
	scorekeeper scorekeeper.Service
}

func newApp(globals *Globals, out io.Writer) *App {
	return &App{
		globals: globals,
		out:     out,
	}
}

// Service returns the scorekeeper, connecting to Redis if needed
func (a *App) Service() (scorekeeper.Service, error) {
	if a.scorekeeper != nil {
		return a.scorekeeper, nil
	}

	logger := logging.New(logging.Options{
		Level:  a.globals.LogLevel,
		Format: a.globals.LogFormat,
		Name:   "trepenta",
	})

	a.client = redis.NewClient(&redis.Options{
		Addr:     a.globals.RedisAddr,
		Password: a.globals.RedisPassword,
		DB:       a.globals.RedisDB,
	})

	gameRepo, err := game.NewRedis(&game.Config{
		RedisClient: a.client,
		KeyPrefix:   a.globals.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game repository: %w", err)
	}

	playerRepo, err := player.NewRedis(&player.Config{
		RedisClient: a.client,
		KeyPrefix:   a.globals.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player repository: %w", err)
	}

	catalog, err := rules.Load()
	if err != nil {
		return nil, err
	}

	svc, err := scorekeeper.New(&scorekeeper.Config{
		GameRepo:      gameRepo,
		PlayerRepo:    playerRepo,
		HouseRules:    catalog,
		DiceRoller:    dice.New(&dice.Config{}),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		Logger:        &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scorekeeper service: %w", err)
	}

	a.scorekeeper = svc
	return svc, nil
}

// Close releases the Redis connection if one was opened
func (a *App) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
}

// resolveGame loads the game with the given ID, or the current game when the
// ID is empty
func resolveGame(ctx context.Context, svc scorekeeper.Service, gameID string) (*models.Game, error) {
	if gameID == "" {
		output, err := svc.GetCurrentGame(ctx, &scorekeeper.GetCurrentGameInput{Scope: localScope})
		if err != nil {
			return nil, err
		}
		return output.Game, nil
	}

	output, err := svc.GetGame(ctx, &scorekeeper.GetGameInput{GameID: gameID})
	if err != nil {
		return nil, err
	}
	return output.Game, nil
}

// seatedPlayer resolves a player name within a game
func seatedPlayer(game *models.Game, name string) (string, error) {
	playerID, ok := game.PlayerIDByName(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", scorekeeper.ErrPlayerNotInGame, name)
	}
	return playerID, nil
}
