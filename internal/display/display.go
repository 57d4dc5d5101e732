// Package display has the small formatting helpers shared by the CLI and
// the Discord bot.
package display

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ignyos/trepenta/internal/models"
)

// EmptyScore is shown for a round that has not been scored
const EmptyScore = "-"

// Initials returns the upper-cased first letter of each word, at most two
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		if count == 2 {
			break
		}
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
		count++
	}
	return b.String()
}

// RoundScore formats a player's score for a round
func RoundScore(game *models.Game, playerID string, round int) string {
	score, ok := game.Score(playerID, round)
	if !ok {
		return EmptyScore
	}
	return strconv.Itoa(score)
}

// SplitList splits a comma separated list, dropping blank entries
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Status is a short label for a game's state
func Status(game *models.Game) string {
	if game.Completed {
		return "Completed"
	}
	return "In Progress"
}
