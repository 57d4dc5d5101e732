package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ignyos/trepenta/internal/config"
	"github.com/ignyos/trepenta/internal/logging"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command. Defaults come from the
// environment (and .env) through the config package.
type Globals struct {
	RedisAddr     string `name:"redis-addr" help:"Redis address" default:"${redis_addr}"`
	RedisPassword string `name:"redis-password" help:"Redis password" default:"${redis_password}"`
	RedisDB       int    `name:"redis-db" help:"Redis database number" default:"${redis_db}"`
	KeyPrefix     string `name:"key-prefix" help:"Prefix for every Redis key" default:"${key_prefix}"`
	LogLevel      string `name:"log-level" help:"Log level" default:"${log_level}"`
	LogFormat     string `name:"log-format" help:"Log format" enum:"console,json" default:"${log_format}"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Start   StartCmd         `cmd:"" help:"Start a new game"`
	Score   ScoreCmd         `cmd:"" help:"Record a player's score for a round"`
	Clear   ClearCmd         `cmd:"" help:"Remove a player's score for a round"`
	Show    ShowCmd          `cmd:"" help:"Show the scoreboard"`
	History HistoryCmd       `cmd:"" help:"List games, newest first"`
	Delete  DeleteCmd        `cmd:"" help:"Delete a game from history"`
	Abandon AbandonCmd       `cmd:"" help:"Stop tracking the current game"`
	Players PlayersCmd       `cmd:"" help:"List known players"`
	Rules   RulesCmd         `cmd:"" help:"List the available house rules"`
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The CLI stays quiet unless asked otherwise
	logLevel := cfg.LogLevel
	if os.Getenv(config.EnvLogLevel) == "" {
		logLevel = "warn"
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("trepenta"),
		kong.Description("Score keeper for a five round card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":        version,
			"redis_addr":     cfg.RedisAddr,
			"redis_password": cfg.RedisPassword,
			"redis_db":       strconv.Itoa(cfg.RedisDB),
			"key_prefix":     cfg.KeyPrefix,
			"log_level":      logLevel,
			"log_format":     logFormat(cfg.LogFormat),
		},
	)

	app := newApp(&cli.Globals, os.Stdout)
	err = ctx.Run(app)
	app.Close()
	ctx.FatalIfErrorf(err)
}

// logFormat maps a configured format onto the values --log-format accepts.
// Anything but json falls back to console.
func logFormat(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), logging.FormatJSON) {
		return logging.FormatJSON
	}
	return logging.FormatConsole
}
