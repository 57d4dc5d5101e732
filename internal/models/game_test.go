package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type GameTestSuite struct {
	suite.Suite
	game *Game
}

func (s *GameTestSuite) SetupTest() {
	s.game = &Game{
		ID:        "test-game-id",
		PlayerIDs: []string{"alice", "bob", "carol"},
		PlayerNames: map[string]string{
			"alice": "Alice Smith",
			"bob":   "Bob Jones",
			"carol": "Carol",
		},
		DealerIndex: 1,
		Scores:      map[string][]*int{},
	}
}

func TestGameTestSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}

// fillScores records the same score for every player for the given rounds
func (s *GameTestSuite) fillScores(rounds int, score int) {
	for _, playerID := range s.game.PlayerIDs {
		for round := 1; round <= rounds; round++ {
			s.Require().NoError(s.game.AddScore(playerID, round, score))
		}
	}
}

func (s *GameTestSuite) TestAddScoreOutOfOrder() {
	s.Require().NoError(s.game.AddScore("alice", 3, 12))

	s.Len(s.game.Scores["alice"], 3)
	s.Nil(s.game.Scores["alice"][0])
	s.Nil(s.game.Scores["alice"][1])

	score, ok := s.game.Score("alice", 3)
	s.True(ok)
	s.Equal(12, score)

	_, ok = s.game.Score("alice", 1)
	s.False(ok)
}

func (s *GameTestSuite) TestAddScoreOverwrites() {
	s.Require().NoError(s.game.AddScore("bob", 1, 4))
	s.Require().NoError(s.game.AddScore("bob", 1, 9))

	score, ok := s.game.Score("bob", 1)
	s.True(ok)
	s.Equal(9, score)
	s.Equal(9, s.game.Total("bob"))
}

func (s *GameTestSuite) TestAddScoreInvalidRound() {
	s.ErrorIs(s.game.AddScore("alice", 0, 1), ErrInvalidRound)
	s.ErrorIs(s.game.AddScore("alice", 6, 1), ErrInvalidRound)
	s.Empty(s.game.Scores["alice"])
}

func (s *GameTestSuite) TestAddScoreInitialisesScores() {
	game := &Game{PlayerIDs: []string{"alice"}}

	s.Require().NoError(game.AddScore("alice", 1, 5))
	s.Equal(5, game.Total("alice"))
}

func (s *GameTestSuite) TestClearScore() {
	s.Require().NoError(s.game.AddScore("carol", 1, 3))
	s.Require().NoError(s.game.AddScore("carol", 2, 7))

	s.Require().NoError(s.game.ClearScore("carol", 2))
	s.Len(s.game.Scores["carol"], 1)
	s.Equal(3, s.game.Total("carol"))

	// Clearing a round that was never scored is a no-op
	s.Require().NoError(s.game.ClearScore("carol", 5))
	s.Len(s.game.Scores["carol"], 1)

	s.ErrorIs(s.game.ClearScore("carol", 9), ErrInvalidRound)
}

func (s *GameTestSuite) TestTotal() {
	s.Equal(0, s.game.Total("alice"))
	s.Equal(0, s.game.Total("unknown"))

	s.Require().NoError(s.game.AddScore("alice", 1, 10))
	s.Require().NoError(s.game.AddScore("alice", 4, 5))
	s.Equal(15, s.game.Total("alice"))
}

func (s *GameTestSuite) TestDealerForRound() {
	// Dealer starts at seat 1 and moves one seat per round
	s.Equal("bob", s.game.DealerForRound(1))
	s.Equal("carol", s.game.DealerForRound(2))
	s.Equal("alice", s.game.DealerForRound(3))
	s.Equal("bob", s.game.DealerForRound(4))
	s.Equal("carol", s.game.DealerForRound(5))
}

func (s *GameTestSuite) TestDealerForRoundNoPlayers() {
	game := &Game{}
	s.Equal("", game.DealerForRound(1))
}

func (s *GameTestSuite) TestDealerForRoundNegativeSeat() {
	s.game.DealerIndex = 0
	s.Equal("carol", s.game.DealerForRound(0))
}

func (s *GameTestSuite) TestIsComplete() {
	s.False(s.game.IsComplete())

	s.fillScores(4, 1)
	s.False(s.game.IsComplete())

	s.Require().NoError(s.game.AddScore("alice", 5, 1))
	s.Require().NoError(s.game.AddScore("bob", 5, 1))
	s.False(s.game.IsComplete())

	s.Require().NoError(s.game.AddScore("carol", 5, 1))
	s.True(s.game.IsComplete())
}

func (s *GameTestSuite) TestIsCompleteWithGap() {
	s.fillScores(5, 2)
	s.Require().True(s.game.IsComplete())

	s.game.Scores["bob"][2] = nil
	s.False(s.game.IsComplete())
}

func (s *GameTestSuite) TestRoundComplete() {
	s.False(s.game.RoundComplete(3))

	s.Require().NoError(s.game.AddScore("alice", 3, 1))
	s.Require().NoError(s.game.AddScore("bob", 3, 1))
	s.False(s.game.RoundComplete(3))

	s.Require().NoError(s.game.AddScore("carol", 3, 1))
	s.True(s.game.RoundComplete(3))
	s.False(s.game.RoundComplete(1))

	s.False(s.game.RoundComplete(0))
	s.False(s.game.RoundComplete(RoundsPerGame + 1))
	s.False((&Game{}).RoundComplete(1))
}

func (s *GameTestSuite) TestNextRound() {
	s.Equal(1, s.game.NextRound())

	s.fillScores(2, 0)
	s.Equal(3, s.game.NextRound())

	s.fillScores(5, 0)
	s.Equal(0, s.game.NextRound())
}

func (s *GameTestSuite) TestStandings() {
	s.Require().NoError(s.game.AddScore("alice", 1, 20))
	s.Require().NoError(s.game.AddScore("bob", 1, 5))
	s.Require().NoError(s.game.AddScore("carol", 1, 20))

	standings := s.game.Standings()
	s.Require().Len(standings, 3)
	s.Equal("bob", standings[0].PlayerID)
	s.Equal("Bob Jones", standings[0].PlayerName)
	s.Equal(5, standings[0].Total)

	// Ties keep turn order
	s.Equal("alice", standings[1].PlayerID)
	s.Equal("carol", standings[2].PlayerID)

	winner := s.game.Winner()
	s.Require().NotNil(winner)
	s.Equal("bob", winner.PlayerID)
}

func (s *GameTestSuite) TestWinnerNoPlayers() {
	game := &Game{}
	s.Nil(game.Winner())
}

func (s *GameTestSuite) TestHasPlayer() {
	s.True(s.game.HasPlayer("carol"))
	s.False(s.game.HasPlayer("dave"))
}

func (s *GameTestSuite) TestPlayerIDByName() {
	id, ok := s.game.PlayerIDByName(" bob jones ")
	s.True(ok)
	s.Equal("bob", id)

	_, ok = s.game.PlayerIDByName("Dave")
	s.False(ok)
}
