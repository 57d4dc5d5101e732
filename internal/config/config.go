// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"
	EnvKeyPrefix     = "TREPENTA_KEY_PREFIX"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvDiscordToken  = "DISCORD_TOKEN"
	EnvApplicationID = "APPLICATION_ID"
	EnvGuildID       = "GUILD_ID"
)

// Config holds settings shared by the CLI and the bot
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// KeyPrefix namespaces every Redis key
	KeyPrefix string

	LogLevel  string
	LogFormat string

	// Discord settings, only needed by the bot
	DiscordToken  string
	ApplicationID string
	GuildID       string
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, filename := range filenames {
		if err := godotenv.Load(filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", filename, err)
		}
	}

	return nil
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		RedisAddr:     getEnv(EnvRedisAddr, "localhost:6379"),
		RedisPassword: getEnv(EnvRedisPassword, ""),
		KeyPrefix:     getEnv(EnvKeyPrefix, "trepenta:"),
		LogLevel:      getEnv(EnvLogLevel, "info"),
		LogFormat:     getEnv(EnvLogFormat, "console"),
		DiscordToken:  getEnv(EnvDiscordToken, ""),
		ApplicationID: getEnv(EnvApplicationID, ""),
		GuildID:       getEnv(EnvGuildID, ""),
	}

	if dbStr := os.Getenv(EnvRedisDB); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil || db < 0 {
			return nil, fmt.Errorf("invalid %s value %q", EnvRedisDB, dbStr)
		}
		cfg.RedisDB = db
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
