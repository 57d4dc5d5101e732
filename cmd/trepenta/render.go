package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ignyos/trepenta/internal/display"
	"github.com/ignyos/trepenta/internal/models"
	"github.com/ignyos/trepenta/internal/rules"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
)

const dateFormat = "2006-01-02 15:04"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(infoStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// renderScoreboard draws the score grid. Each round header carries the
// initials of that round's dealer.
func renderScoreboard(game *models.Game) string {
	headers := []string{"Player"}
	for round := 1; round <= models.RoundsPerGame; round++ {
		headers = append(headers, fmt.Sprintf("R%d %s", round, display.Initials(game.PlayerNames[game.DealerForRound(round)])))
	}
	headers = append(headers, "Total")

	t := newTable(headers...)
	for _, id := range game.PlayerIDs {
		row := []string{game.PlayerNames[id]}
		for round := 1; round <= models.RoundsPerGame; round++ {
			row = append(row, display.RoundScore(game, id, round))
		}
		row = append(row, strconv.Itoa(game.Total(id)))
		t.Row(row...)
	}

	lines := []string{
		titleStyle.Render("Game "+game.ID) + "  " + infoStyle.Render(display.Status(game)),
	}

	if len(game.HouseRules) > 0 {
		lines = append(lines, infoStyle.Render("House rules: "+strings.Join(game.HouseRules, ", ")))
	}
	if game.Deck != nil {
		lines = append(lines, infoStyle.Render(fmt.Sprintf("Deck: %d deck(s), %d joker(s) each", game.Deck.Decks, game.Deck.JokersPerDeck)))
	}

	lines = append(lines, t.String())

	switch winner := game.Winner(); {
	case game.Completed && winner != nil:
		lines = append(lines, winnerStyle.Render(fmt.Sprintf("Winner: %s with %d points", winner.PlayerName, winner.Total)))
	case game.CurrentRound > 0:
		lines = append(lines, fmt.Sprintf("Round %d, %s deals", game.CurrentRound, game.PlayerNames[game.DealerForRound(game.CurrentRound)]))
	}

	return strings.Join(lines, "\n")
}

// renderHistory lists games in the order given
func renderHistory(games []*scorekeeper.GameSummary) string {
	if len(games) == 0 {
		return infoStyle.Render("No games have been played yet.")
	}

	t := newTable("ID", "Started", "Status", "Standings", "Winner")
	for _, summary := range games {
		var standings []string
		for _, standing := range summary.Standings {
			standings = append(standings, fmt.Sprintf("%s %d", standing.PlayerName, standing.Total))
		}

		winner := display.EmptyScore
		if summary.Winner != nil {
			winner = summary.Winner.PlayerName
		}

		t.Row(
			summary.Game.ID,
			summary.Game.CreatedAt.Local().Format(dateFormat),
			display.Status(summary.Game),
			strings.Join(standings, ", "),
			winner,
		)
	}

	return t.String()
}

func renderPlayers(players []*models.Player) string {
	if len(players) == 0 {
		return infoStyle.Render("No players yet.")
	}

	t := newTable("Name", "Since")
	for _, player := range players {
		t.Row(player.Name, player.CreatedAt.Local().Format(dateFormat))
	}
	return t.String()
}

func renderHouseRules(houseRules []*rules.HouseRule) string {
	t := newTable("Rule", "Description")
	for _, rule := range houseRules {
		t.Row(rule.Name, rule.Brief)
	}
	return t.String()
}

func renderDeleted(gameID string, wasCurrent bool) string {
	msg := fmt.Sprintf("Deleted game %s.", gameID)
	if wasCurrent {
		msg += " It was the current game."
	}
	return msg
}

func renderAbandoned(gameID string) string {
	return fmt.Sprintf("Stopped tracking game %s. It stays in history.", gameID)
}
