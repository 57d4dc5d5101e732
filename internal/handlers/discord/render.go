package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/ignyos/trepenta/internal/display"
	"github.com/ignyos/trepenta/internal/models"
	"github.com/ignyos/trepenta/internal/rules"
	"github.com/ignyos/trepenta/internal/services/messaging"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
)

const dateFormat = "2006-01-02 15:04"

// renderScoreboard renders a game as a table of round scores with the
// dealer's initials over each round
func renderScoreboard(game *models.Game) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "Scoreboard",
		Color:  colorInfo,
		Footer: &discordgo.MessageEmbedFooter{Text: "Game " + game.ID},
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Status",
		Value:  display.Status(game),
		Inline: true,
	})

	if !game.Completed && game.CurrentRound > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Round",
			Value:  fmt.Sprintf("%d of %d, %s deals", game.CurrentRound, models.RoundsPerGame, game.PlayerNames[game.DealerForRound(game.CurrentRound)]),
			Inline: true,
		})
	}

	if len(game.HouseRules) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "House Rules",
			Value:  strings.Join(game.HouseRules, ", "),
			Inline: true,
		})
	}

	if game.Deck != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Deck",
			Value:  fmt.Sprintf("%d deck(s), %d joker(s) each", game.Deck.Decks, game.Deck.JokersPerDeck),
			Inline: true,
		})
	}

	embed.Description = "```\n" + scoreTable(game) + "```"

	if winner := game.Winner(); game.Completed && winner != nil {
		embed.Color = colorSuccess
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🏆 Winner",
			Value: fmt.Sprintf("**%s** with %d points", winner.PlayerName, winner.Total),
		})
	}

	return embed
}

// scoreTable lays the scores out in fixed width columns for a code block
func scoreTable(game *models.Game) string {
	nameWidth := len("Player")
	for _, id := range game.PlayerIDs {
		if n := len([]rune(game.PlayerNames[id])); n > nameWidth {
			nameWidth = n
		}
	}

	const cell = 4

	var b strings.Builder
	row := func(first string, cells []string) {
		b.WriteString(first)
		b.WriteString(strings.Repeat(" ", nameWidth-len([]rune(first))))
		for _, c := range cells {
			b.WriteString(strings.Repeat(" ", max(cell-len([]rune(c)), 1)))
			b.WriteString(c)
		}
		b.WriteString("\n")
	}

	header := make([]string, 0, models.RoundsPerGame+1)
	dealers := make([]string, 0, models.RoundsPerGame+1)
	for round := 1; round <= models.RoundsPerGame; round++ {
		header = append(header, "R"+strconv.Itoa(round))
		dealers = append(dealers, display.Initials(game.PlayerNames[game.DealerForRound(round)]))
	}
	header = append(header, "Tot")
	dealers = append(dealers, "")

	row("Player", header)
	row("Dealer", dealers)

	for _, id := range game.PlayerIDs {
		cells := make([]string, 0, models.RoundsPerGame+1)
		for round := 1; round <= models.RoundsPerGame; round++ {
			cells = append(cells, display.RoundScore(game, id, round))
		}
		cells = append(cells, strconv.Itoa(game.Total(id)))
		row(game.PlayerNames[id], cells)
	}

	return b.String()
}

// announce puts a message above the score table, optionally replacing the title
func announce(embed *discordgo.MessageEmbed, title, message string) {
	if title != "" {
		embed.Title = title
	}
	embed.Description = message + "\n" + embed.Description
}

// scoreAnnouncement is what a recorded score calls for above the scoreboard.
// At most one of the inputs is set.
type scoreAnnouncement struct {
	roundComplete *messaging.GetRoundCompleteMessageInput
	gameOver      *messaging.GetGameOverMessageInput
}

// announcementFor decides the announcement for a score recorded in round
func announcementFor(round int, output *scorekeeper.RecordScoreOutput) scoreAnnouncement {
	game := output.Game
	standings := game.Standings()
	if len(standings) == 0 {
		return scoreAnnouncement{}
	}

	if output.JustCompleted {
		gameOver := &messaging.GetGameOverMessageInput{
			WinnerName:    standings[0].PlayerName,
			WinnerTotal:   standings[0].Total,
			RunnerUpTotal: standings[0].Total,
		}
		if len(standings) > 1 {
			gameOver.RunnerUpTotal = standings[1].Total
		}
		return scoreAnnouncement{gameOver: gameOver}
	}

	if output.RoundCompleted && game.CurrentRound > 0 {
		return scoreAnnouncement{
			roundComplete: &messaging.GetRoundCompleteMessageInput{
				Round:          round,
				LeaderName:     standings[0].PlayerName,
				NextDealerName: game.PlayerNames[game.DealerForRound(game.CurrentRound)],
			},
		}
	}

	return scoreAnnouncement{}
}

// renderHistory renders up to limit games, newest first
func renderHistory(games []*scorekeeper.GameSummary, limit int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Game History",
		Color: colorInfo,
	}

	if len(games) == 0 {
		embed.Description = "No games have been played yet."
		return embed
	}

	shown := games
	if len(shown) > limit {
		shown = shown[:limit]
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing %d of %d games", limit, len(games)),
		}
	}

	for _, summary := range shown {
		var standings []string
		for _, standing := range summary.Standings {
			standings = append(standings, fmt.Sprintf("%s %d", standing.PlayerName, standing.Total))
		}

		value := strings.Join(standings, " · ")
		if summary.Winner != nil {
			value += fmt.Sprintf("\n🏆 %s", summary.Winner.PlayerName)
		}
		value += fmt.Sprintf("\n`%s`", summary.Game.ID)

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s", summary.Game.CreatedAt.Format(dateFormat), display.Status(summary.Game)),
			Value: value,
		})
	}

	return embed
}

// renderHouseRules lists the catalog of house rules
func renderHouseRules(houseRules []*rules.HouseRule) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "House Rules",
		Color: colorInfo,
	}

	for _, rule := range houseRules {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  rule.Name,
			Value: rule.Brief,
		})
	}

	return embed
}

// renderError renders an error message
func renderError(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       colorError,
	}
}
