package discord

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/ignyos/trepenta/internal/services/messaging"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
	"github.com/rs/zerolog"
)

// Bot represents the Discord bot instance
type Bot struct {
	session *discordgo.Session

	// mu guards commands and commandIDs, which interaction goroutines read
	mu          sync.RWMutex
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	scorekeeper scorekeeper.Service
	messaging   messaging.Service
	config      *Config
	log         zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Scorekeeper service
	Scorekeeper scorekeeper.Service

	// Messaging service for game announcements
	Messaging messaging.Service

	// Logger, nil discards
	Logger *zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Scorekeeper == nil {
		return nil, errors.New("scorekeeper service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		scorekeeper: cfg.Scorekeeper,
		messaging:   cfg.Messaging,
		config:      cfg,
		log:         log.With().Str("handler", "discord").Logger(),
	}

	// Handlers are in place before the connection opens
	bot.addCommand(NewScorekeeperCommand(bot.scorekeeper, bot.messaging, bot.log))

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range b.handlers() {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	b.log.Info().Msg("bot is now running")
	return nil
}

// Stop removes registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	b.mu.RLock()
	commandIDs := make(map[string]string, len(b.commandIDs))
	for cmdName, cmdID := range b.commandIDs {
		commandIDs[cmdName] = cmdID
	}
	b.mu.RUnlock()

	for cmdName, cmdID := range commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
		} else {
			b.log.Debug().Str("command", cmdName).Str("command_id", cmdID).Msg("deleted command")
		}
	}

	return b.session.Close()
}

// appID falls back to the session user when no application ID is configured
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord. Commands are global
// unless a guild ID is configured.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	guildID := b.config.GuildID

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.addCommand(cmd)
	b.mu.Lock()
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.mu.Unlock()
	b.log.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", guildID).
		Msg("registered command")

	return nil
}

// addCommand makes a handler available to incoming interactions
func (b *Bot) addCommand(cmd CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.commands[cmd.GetName()] = cmd
}

// handler looks up the handler for a command name
func (b *Bot) handler(name string) (CommandHandler, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	h, ok := b.commands[name]
	return h, ok
}

// handlers returns every registered handler
func (b *Bot) handlers() []CommandHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handlers := make([]CommandHandler, 0, len(b.commands))
	for _, h := range b.commands {
		handlers = append(handlers, h)
	}
	return handlers
}

// handleInteraction routes slash commands and button clicks to their handlers
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var name string
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name = i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		name = commandForComponent(i.MessageComponentData().CustomID)
	default:
		return
	}

	h, ok := b.handler(name)
	if !ok {
		return
	}

	if err := h.Handle(s, i); err != nil {
		b.log.Error().Err(err).Str("command", name).Str("channel_id", i.ChannelID).Msg("error handling interaction")
	}
}
