package models

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// RoundsPerGame is the number of scoring rounds in a game
const RoundsPerGame = 5

// ErrInvalidRound is returned when a round falls outside 1..RoundsPerGame
var ErrInvalidRound = errors.New("round must be between 1 and 5")

// DeckConfig describes the cards the game is played with
type DeckConfig struct {
	// Decks is the number of standard 52 card decks shuffled together
	Decks int

	// JokersPerDeck is the number of jokers added to each deck
	JokersPerDeck int
}

// Game represents a single game of five rounds
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// Scope is where the game is played, "local" for the CLI and the
	// channel ID for Discord
	Scope string

	// PlayerIDs contains the IDs of players in turn order
	PlayerIDs []string

	// PlayerNames maps player ID to the name used in this game
	PlayerNames map[string]string

	// DealerIndex is the seat that deals the first round
	DealerIndex int

	// Scores maps player ID to round scores. A nil entry is a round
	// that has not been scored yet.
	Scores map[string][]*int

	// CurrentRound is the first round still missing a score, 0 once complete
	CurrentRound int

	// Completed is set once every player has a score for every round
	Completed bool

	// HouseRules contains the names of the optional rules in play
	HouseRules []string

	// Deck is the optional deck configuration
	Deck *DeckConfig

	// CreatedAt is when the game was created
	CreatedAt time.Time

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time
}

// Standing is a player's position in a game
type Standing struct {
	PlayerID   string
	PlayerName string
	Total      int
}

// HasPlayer reports whether the player is seated in the game
func (g *Game) HasPlayer(playerID string) bool {
	for _, id := range g.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// PlayerIDByName finds a seated player by name, ignoring case
func (g *Game) PlayerIDByName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, id := range g.PlayerIDs {
		if strings.EqualFold(g.PlayerNames[id], name) {
			return id, true
		}
	}
	return "", false
}

// AddScore sets the player's score for a round, overwriting any previous value
func (g *Game) AddScore(playerID string, round, score int) error {
	if round < 1 || round > RoundsPerGame {
		return ErrInvalidRound
	}

	if g.Scores == nil {
		g.Scores = make(map[string][]*int)
	}

	scores := g.Scores[playerID]
	for len(scores) < round {
		scores = append(scores, nil)
	}

	value := score
	scores[round-1] = &value
	g.Scores[playerID] = scores

	return nil
}

// ClearScore removes the player's score for a round
func (g *Game) ClearScore(playerID string, round int) error {
	if round < 1 || round > RoundsPerGame {
		return ErrInvalidRound
	}

	scores := g.Scores[playerID]
	if round > len(scores) {
		return nil
	}
	scores[round-1] = nil

	// Trailing gaps carry no information
	for len(scores) > 0 && scores[len(scores)-1] == nil {
		scores = scores[:len(scores)-1]
	}
	g.Scores[playerID] = scores

	return nil
}

// Score returns the player's score for a round and whether it has been recorded
func (g *Game) Score(playerID string, round int) (int, bool) {
	if round < 1 || round > RoundsPerGame {
		return 0, false
	}

	scores := g.Scores[playerID]
	if round > len(scores) || scores[round-1] == nil {
		return 0, false
	}

	return *scores[round-1], true
}

// Total returns the sum of the player's recorded scores
func (g *Game) Total(playerID string) int {
	total := 0
	for _, score := range g.Scores[playerID] {
		if score != nil {
			total += *score
		}
	}
	return total
}

// DealerForRound returns the ID of the player dealing the given round
func (g *Game) DealerForRound(round int) string {
	n := len(g.PlayerIDs)
	if n == 0 {
		return ""
	}

	seat := (g.DealerIndex + round - 1) % n
	if seat < 0 {
		seat += n
	}

	return g.PlayerIDs[seat]
}

// IsComplete reports whether every player has a score for every round
func (g *Game) IsComplete() bool {
	for _, playerID := range g.PlayerIDs {
		scores := g.Scores[playerID]
		if len(scores) != RoundsPerGame {
			return false
		}
		for _, score := range scores {
			if score == nil {
				return false
			}
		}
	}
	return true
}

// RoundComplete reports whether every player has a score for the round
func (g *Game) RoundComplete(round int) bool {
	if round < 1 || round > RoundsPerGame || len(g.PlayerIDs) == 0 {
		return false
	}
	for _, playerID := range g.PlayerIDs {
		if _, ok := g.Score(playerID, round); !ok {
			return false
		}
	}
	return true
}

// NextRound returns the first round some player has not been scored for,
// or 0 if the game is complete
func (g *Game) NextRound() int {
	for round := 1; round <= RoundsPerGame; round++ {
		for _, playerID := range g.PlayerIDs {
			if _, ok := g.Score(playerID, round); !ok {
				return round
			}
		}
	}
	return 0
}

// Standings returns the players ordered by total, lowest first.
// Ties keep turn order.
func (g *Game) Standings() []*Standing {
	standings := make([]*Standing, 0, len(g.PlayerIDs))
	for _, playerID := range g.PlayerIDs {
		standings = append(standings, &Standing{
			PlayerID:   playerID,
			PlayerName: g.PlayerNames[playerID],
			Total:      g.Total(playerID),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total < standings[j].Total
	})

	return standings
}

// Winner returns the leading standing, or nil for a game without players
func (g *Game) Winner() *Standing {
	standings := g.Standings()
	if len(standings) == 0 {
		return nil
	}
	return standings[0]
}
