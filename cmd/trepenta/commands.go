package main

import (
	"context"
	"fmt"

	"github.com/ignyos/trepenta/internal/models"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
)

// StartCmd seats players and makes the new game current.
type StartCmd struct {
	Players      []string `arg:"" name:"player" help:"Player names in turn order"`
	Dealer       int      `help:"Seat of the first dealer, starting at 1" default:"1"`
	RandomDealer bool     `help:"Draw the first dealer at random"`
	Rule         []string `help:"House rule in play, may be repeated"`
	Decks        int      `help:"Number of decks (0 = not tracked)"`
	Jokers       int      `help:"Jokers per deck"`
	Force        bool     `help:"Replace an unfinished game"`
}

func (cmd *StartCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	input := &scorekeeper.StartGameInput{
		Scope:        localScope,
		PlayerNames:  cmd.Players,
		DealerIndex:  cmd.Dealer - 1,
		RandomDealer: cmd.RandomDealer,
		HouseRules:   cmd.Rule,
		Force:        cmd.Force,
	}

	if cmd.Decks > 0 || cmd.Jokers > 0 {
		decks := cmd.Decks
		if decks == 0 {
			decks = 1
		}
		input.Deck = &models.DeckConfig{Decks: decks, JokersPerDeck: cmd.Jokers}
	}

	output, err := svc.StartGame(context.Background(), input)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderScoreboard(output.Game))
	return nil
}

// ScoreCmd records a score for a seated player.
type ScoreCmd struct {
	Player string `arg:"" help:"Seated player name"`
	Round  int    `arg:"" help:"Round number (1-5)"`
	Points int    `arg:"" help:"Points scored"`
	Game   string `help:"Game ID, defaults to the current game"`
}

func (cmd *ScoreCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	ctx := context.Background()

	game, err := resolveGame(ctx, svc, cmd.Game)
	if err != nil {
		return err
	}

	playerID, err := seatedPlayer(game, cmd.Player)
	if err != nil {
		return err
	}

	output, err := svc.RecordScore(ctx, &scorekeeper.RecordScoreInput{
		GameID:   game.ID,
		PlayerID: playerID,
		Round:    cmd.Round,
		Score:    cmd.Points,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderScoreboard(output.Game))
	return nil
}

// ClearCmd removes a score for a seated player.
type ClearCmd struct {
	Player string `arg:"" help:"Seated player name"`
	Round  int    `arg:"" help:"Round number (1-5)"`
	Game   string `help:"Game ID, defaults to the current game"`
}

func (cmd *ClearCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	ctx := context.Background()

	game, err := resolveGame(ctx, svc, cmd.Game)
	if err != nil {
		return err
	}

	playerID, err := seatedPlayer(game, cmd.Player)
	if err != nil {
		return err
	}

	output, err := svc.ClearScore(ctx, &scorekeeper.ClearScoreInput{
		GameID:   game.ID,
		PlayerID: playerID,
		Round:    cmd.Round,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderScoreboard(output.Game))
	return nil
}

// ShowCmd prints a scoreboard.
type ShowCmd struct {
	Game string `help:"Game ID, defaults to the current game"`
}

func (cmd *ShowCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	game, err := resolveGame(context.Background(), svc, cmd.Game)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderScoreboard(game))
	return nil
}

// HistoryCmd lists the games started from the CLI, newest first.
type HistoryCmd struct {
	Limit int `help:"Maximum number of games to list (0 = all)"`
}

func (cmd *HistoryCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	output, err := svc.ListGames(context.Background(), &scorekeeper.ListGamesInput{
		Scope: localScope,
	})
	if err != nil {
		return err
	}

	games := output.Games
	if cmd.Limit > 0 && cmd.Limit < len(games) {
		games = games[:cmd.Limit]
	}

	fmt.Fprintln(app.out, renderHistory(games))
	return nil
}

// DeleteCmd removes a game from history.
type DeleteCmd struct {
	ID string `arg:"" name:"id" help:"Game ID"`
}

func (cmd *DeleteCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	output, err := svc.DeleteGame(context.Background(), &scorekeeper.DeleteGameInput{
		Scope:  localScope,
		GameID: cmd.ID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderDeleted(cmd.ID, output.WasCurrent))
	return nil
}

// AbandonCmd clears the current game pointer.
type AbandonCmd struct{}

func (cmd *AbandonCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	output, err := svc.AbandonGame(context.Background(), &scorekeeper.AbandonGameInput{
		Scope: localScope,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderAbandoned(output.GameID))
	return nil
}

// PlayersCmd lists known players.
type PlayersCmd struct{}

func (cmd *PlayersCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	output, err := svc.ListPlayers(context.Background(), &scorekeeper.ListPlayersInput{})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderPlayers(output.Players))
	return nil
}

// RulesCmd lists the house rule catalog.
type RulesCmd struct{}

func (cmd *RulesCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	output, err := svc.ListHouseRules(context.Background(), &scorekeeper.ListHouseRulesInput{})
	if err != nil {
		return err
	}

	fmt.Fprintln(app.out, renderHouseRules(output.HouseRules))
	return nil
}
