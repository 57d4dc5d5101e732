package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/ignyos/trepenta/internal/display"
	"github.com/ignyos/trepenta/internal/models"
	"github.com/ignyos/trepenta/internal/services/messaging"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
	"github.com/rs/zerolog"
)

const (
	commandName = "trepenta"

	// ButtonRefresh redraws the scoreboard of the channel's current game
	ButtonRefresh = "trepenta:refresh"

	// historyLimit caps the games listed by /trepenta history
	historyLimit = 10
)

var (
	minZero = 0.0
	minOne  = 1.0
)

// ScorekeeperCommand handles the /trepenta command
type ScorekeeperCommand struct {
	BaseCommand
	scorekeeper scorekeeper.Service
	messaging   messaging.Service
	log         zerolog.Logger
}

// NewScorekeeperCommand creates a new trepenta command handler
func NewScorekeeperCommand(svc scorekeeper.Service, msgSvc messaging.Service, log zerolog.Logger) *ScorekeeperCommand {
	playerOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: "Player name",
		Required:    true,
	}
	roundOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "round",
		Description: "Round number",
		Required:    true,
		MinValue:    &minOne,
		MaxValue:    models.RoundsPerGame,
	}

	return &ScorekeeperCommand{
		BaseCommand: BaseCommand{
			Name:        commandName,
			Description: "Keep score for a five round card game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a new game in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "players",
							Description: "Comma separated player names in turn order",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "dealer",
							Description: "Seat of the first dealer, starting at 1",
							MinValue:    &minOne,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "random-dealer",
							Description: "Draw the first dealer at random",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "rules",
							Description: "Comma separated house rules",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "decks",
							Description: "Number of decks",
							MinValue:    &minOne,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "jokers",
							Description: "Jokers per deck",
							MinValue:    &minZero,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "force",
							Description: "Replace an unfinished game",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "score",
					Description: "Record a player's score for a round",
					Options: []*discordgo.ApplicationCommandOption{
						playerOption,
						roundOption,
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "points",
							Description: "Points scored",
							Required:    true,
							MinValue:    &minZero,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Remove a player's score for a round",
					Options:     []*discordgo.ApplicationCommandOption{playerOption, roundOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the scoreboard",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "List recent games, newest first",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "abandon",
					Description: "Stop tracking the current game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a game from history",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "game",
							Description: "Game ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rules",
					Description: "List the available house rules",
				},
			},
		},
		scorekeeper: svc,
		messaging:   msgSvc,
		log:         log,
	}
}

// Handle processes a Discord interaction for the trepenta command
func (c *ScorekeeperCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if i.Type == discordgo.InteractionMessageComponent {
		if i.MessageComponentData().CustomID == ButtonRefresh {
			return c.handleShow(ctx, s, i)
		}
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "start":
		return c.handleStart(ctx, s, i, opts)
	case "score":
		return c.handleScore(ctx, s, i, opts)
	case "clear":
		return c.handleClear(ctx, s, i, opts)
	case "show":
		return c.handleShow(ctx, s, i)
	case "history":
		return c.handleHistory(ctx, s, i)
	case "abandon":
		return c.handleAbandon(ctx, s, i)
	case "delete":
		return c.handleDelete(ctx, s, i, opts)
	case "rules":
		return c.handleRules(ctx, s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func (o options) stringValue(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o options) intValue(name string) (int, bool) {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue()), true
	}
	return 0, false
}

func (o options) boolValue(name string) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return false
}

// fail reports a service error to the user. Errors the user can act on are
// shown as is, anything else is logged and hidden.
func (c *ScorekeeperCommand) fail(s *discordgo.Session, i *discordgo.InteractionCreate, action string, err error) error {
	var skErr scorekeeper.ScorekeeperError
	if errors.As(err, &skErr) {
		return RespondWithError(s, i, capitalize(err.Error()))
	}

	c.log.Error().Err(err).Str("channel_id", i.ChannelID).Msgf("failed to %s", action)
	return RespondWithError(s, i, fmt.Sprintf("Failed to %s, please try again.", action))
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func (c *ScorekeeperCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	input := &scorekeeper.StartGameInput{
		Scope:        i.ChannelID,
		PlayerNames:  display.SplitList(opts.stringValue("players")),
		RandomDealer: opts.boolValue("random-dealer"),
		HouseRules:   display.SplitList(opts.stringValue("rules")),
		Force:        opts.boolValue("force"),
	}

	if seat, ok := opts.intValue("dealer"); ok {
		input.DealerIndex = seat - 1
	}

	decks, hasDecks := opts.intValue("decks")
	jokers, hasJokers := opts.intValue("jokers")
	if hasDecks || hasJokers {
		if !hasDecks {
			decks = 1
		}
		input.Deck = &models.DeckConfig{Decks: decks, JokersPerDeck: jokers}
	}

	output, err := c.scorekeeper.StartGame(ctx, input)
	if err != nil {
		if errors.Is(err, scorekeeper.ErrGameInProgress) {
			return RespondWithError(s, i, "There's already a game in progress in this channel. Finish it, use `/trepenta abandon`, or start with `force`.")
		}
		return c.fail(s, i, "start game", err)
	}

	c.log.Info().
		Str("channel_id", i.ChannelID).
		Str("game_id", output.Game.ID).
		Int("players", len(output.Game.PlayerIDs)).
		Msg("game started")

	embed := renderScoreboard(output.Game)

	msg, err := c.messaging.GetGameStartedMessage(ctx, &messaging.GetGameStartedMessageInput{
		DealerName:  output.Game.PlayerNames[output.Game.DealerForRound(1)],
		PlayerCount: len(output.Game.PlayerIDs),
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to get game started message")
	} else {
		announce(embed, "", msg.Message)
	}

	return RespondWithEmbed(s, i, embed, refreshButton())
}

func (c *ScorekeeperCommand) playerInCurrentGame(ctx context.Context, scope, name string) (*models.Game, string, error) {
	current, err := c.scorekeeper.GetCurrentGame(ctx, &scorekeeper.GetCurrentGameInput{Scope: scope})
	if err != nil {
		return nil, "", err
	}

	playerID, ok := current.Game.PlayerIDByName(name)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", scorekeeper.ErrPlayerNotInGame, name)
	}

	return current.Game, playerID, nil
}

func (c *ScorekeeperCommand) handleScore(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	game, playerID, err := c.playerInCurrentGame(ctx, i.ChannelID, opts.stringValue("player"))
	if err != nil {
		return c.fail(s, i, "record score", err)
	}

	round, _ := opts.intValue("round")
	points, _ := opts.intValue("points")

	output, err := c.scorekeeper.RecordScore(ctx, &scorekeeper.RecordScoreInput{
		GameID:   game.ID,
		PlayerID: playerID,
		Round:    round,
		Score:    points,
	})
	if err != nil {
		return c.fail(s, i, "record score", err)
	}

	embed := renderScoreboard(output.Game)
	c.announceScore(ctx, embed, announcementFor(round, output))

	if output.Game.Completed {
		return RespondWithEmbed(s, i, embed)
	}

	return RespondWithEmbed(s, i, embed, refreshButton())
}

// announceScore adds the round complete or game over message to the scoreboard
func (c *ScorekeeperCommand) announceScore(ctx context.Context, embed *discordgo.MessageEmbed, a scoreAnnouncement) {
	switch {
	case a.gameOver != nil:
		msg, err := c.messaging.GetGameOverMessage(ctx, a.gameOver)
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to get game over message")
			return
		}
		announce(embed, msg.Title, msg.Message)

	case a.roundComplete != nil:
		msg, err := c.messaging.GetRoundCompleteMessage(ctx, a.roundComplete)
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to get round complete message")
			return
		}
		announce(embed, "", msg.Message)
	}
}

func (c *ScorekeeperCommand) handleClear(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	game, playerID, err := c.playerInCurrentGame(ctx, i.ChannelID, opts.stringValue("player"))
	if err != nil {
		return c.fail(s, i, "clear score", err)
	}

	round, _ := opts.intValue("round")

	output, err := c.scorekeeper.ClearScore(ctx, &scorekeeper.ClearScoreInput{
		GameID:   game.ID,
		PlayerID: playerID,
		Round:    round,
	})
	if err != nil {
		return c.fail(s, i, "clear score", err)
	}

	return RespondWithEmbed(s, i, renderScoreboard(output.Game), refreshButton())
}

func (c *ScorekeeperCommand) handleShow(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.scorekeeper.GetCurrentGame(ctx, &scorekeeper.GetCurrentGameInput{Scope: i.ChannelID})
	if err != nil {
		if errors.Is(err, scorekeeper.ErrNoCurrentGame) {
			return RespondWithError(s, i, "No game in progress in this channel. Use `/trepenta start` to begin one.")
		}
		return c.fail(s, i, "load game", err)
	}

	return RespondWithEmbed(s, i, renderScoreboard(output.Game), refreshButton())
}

func (c *ScorekeeperCommand) handleHistory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.scorekeeper.ListGames(ctx, &scorekeeper.ListGamesInput{Scope: i.ChannelID})
	if err != nil {
		return c.fail(s, i, "list games", err)
	}

	return RespondWithEmbed(s, i, renderHistory(output.Games, historyLimit))
}

func (c *ScorekeeperCommand) handleAbandon(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.scorekeeper.AbandonGame(ctx, &scorekeeper.AbandonGameInput{Scope: i.ChannelID})
	if err != nil {
		return c.fail(s, i, "abandon game", err)
	}

	c.log.Info().Str("channel_id", i.ChannelID).Str("game_id", output.GameID).Msg("game abandoned")

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Game Abandoned",
		Description: fmt.Sprintf("Stopped tracking game `%s`. It stays in history.", output.GameID),
		Color:       colorInfo,
	})
}

func (c *ScorekeeperCommand) handleDelete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts options) error {
	gameID := opts.stringValue("game")

	output, err := c.scorekeeper.DeleteGame(ctx, &scorekeeper.DeleteGameInput{
		Scope:  i.ChannelID,
		GameID: gameID,
	})
	if err != nil {
		return c.fail(s, i, "delete game", err)
	}

	description := fmt.Sprintf("Game `%s` was deleted.", gameID)
	if output.WasCurrent {
		description += " It was this channel's current game."
	}

	return RespondWithEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Game Deleted",
		Description: description,
		Color:       colorInfo,
	})
}

func (c *ScorekeeperCommand) handleRules(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.scorekeeper.ListHouseRules(ctx, &scorekeeper.ListHouseRulesInput{})
	if err != nil {
		return c.fail(s, i, "list house rules", err)
	}

	return RespondWithEmbed(s, i, renderHouseRules(output.HouseRules))
}

func refreshButton() discordgo.MessageComponent {
	return discordgo.Button{
		Label:    "Refresh",
		Style:    discordgo.SecondaryButton,
		CustomID: ButtonRefresh,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🔄",
		},
	}
}
