package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignyos/trepenta/internal/common/clock"
	"github.com/ignyos/trepenta/internal/common/uuid"
	"github.com/ignyos/trepenta/internal/config"
	"github.com/ignyos/trepenta/internal/dice"
	"github.com/ignyos/trepenta/internal/handlers/discord"
	"github.com/ignyos/trepenta/internal/logging"
	"github.com/ignyos/trepenta/internal/repositories/game"
	"github.com/ignyos/trepenta/internal/repositories/player"
	"github.com/ignyos/trepenta/internal/rules"
	"github.com/ignyos/trepenta/internal/services/messaging"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Environment variables win over .env
	if err := config.LoadDotEnv(); err != nil {
		bootLogger := logging.New(logging.Options{Name: "bot"})
		bootLogger.Fatal().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(logging.Options{Name: "bot"})
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Name:   "bot",
	})

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to Redis")
	}

	// Initialize repositories
	gameRepo, err := game.NewRedis(&game.Config{
		RedisClient: redisClient,
		KeyPrefix:   cfg.KeyPrefix,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create game repository")
	}

	playerRepo, err := player.NewRedis(&player.Config{
		RedisClient: redisClient,
		KeyPrefix:   cfg.KeyPrefix,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create player repository")
	}

	catalog, err := rules.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load house rules")
	}

	// Initialize dice roller
	diceRoller := dice.New(&dice.Config{})

	// Initialize scorekeeper service
	svc, err := scorekeeper.New(&scorekeeper.Config{
		GameRepo:      gameRepo,
		PlayerRepo:    playerRepo,
		HouseRules:    catalog,
		DiceRoller:    diceRoller,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		Logger:        &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create scorekeeper service")
	}

	msgSvc, err := messaging.New(&messaging.Config{
		DiceRoller: diceRoller,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create messaging service")
	}

	if cfg.DiscordToken == "" {
		logger.Fatal().Msgf("%s environment variable is required", config.EnvDiscordToken)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Scorekeeper:   svc,
		Messaging:     msgSvc,
		Logger:        &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Discord bot")
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		logger.Error().Err(err).Msg("error stopping bot")
	}

	logger.Info().Msg("bot has been shut down")
}
