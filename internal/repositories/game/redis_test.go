package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ignyos/trepenta/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newGame(id string, createdAt time.Time) *models.Game {
	return &models.Game{
		ID:        id,
		PlayerIDs: []string{"player-1", "player-2"},
		PlayerNames: map[string]string{
			"player-1": "Alice",
			"player-2": "Bob",
		},
		Scores:       map[string][]*int{},
		CurrentRound: 1,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func (s *RedisRepositoryTestSuite) saveGame(game *models.Game) {
	err := s.repo.SaveGame(context.Background(), &SaveGameInput{
		Game: game,
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetGame() {
	game := s.newGame("test-game-id", s.testNow)
	game.DealerIndex = 1
	game.HouseRules = []string{"Open Field"}
	game.Deck = &models.DeckConfig{Decks: 2, JokersPerDeck: 2}
	s.Require().NoError(game.AddScore("player-1", 1, 12))
	s.Require().NoError(game.AddScore("player-2", 3, 4))

	s.saveGame(game)

	retrievedGame, err := s.repo.GetGame(context.Background(), &GetGameInput{
		GameID: "test-game-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrievedGame)

	s.Equal("test-game-id", retrievedGame.ID)
	s.Equal([]string{"player-1", "player-2"}, retrievedGame.PlayerIDs)
	s.Equal("Bob", retrievedGame.PlayerNames["player-2"])
	s.Equal(1, retrievedGame.DealerIndex)
	s.Equal([]string{"Open Field"}, retrievedGame.HouseRules)
	s.Require().NotNil(retrievedGame.Deck)
	s.Equal(2, retrievedGame.Deck.Decks)
	s.Equal(s.testNow.Unix(), retrievedGame.CreatedAt.Unix())

	// Absent rounds survive the round trip
	s.Equal(12, retrievedGame.Total("player-1"))
	s.Len(retrievedGame.Scores["player-2"], 3)
	_, ok := retrievedGame.Score("player-2", 2)
	s.False(ok)
	score, ok := retrievedGame.Score("player-2", 3)
	s.True(ok)
	s.Equal(4, score)
}

func (s *RedisRepositoryTestSuite) TestSaveGameValidation() {
	s.Error(s.repo.SaveGame(context.Background(), nil))
	s.Error(s.repo.SaveGame(context.Background(), &SaveGameInput{Game: &models.Game{}}))
}

func (s *RedisRepositoryTestSuite) TestSaveGameOverwrites() {
	game := s.newGame("test-game-id", s.testNow)
	s.saveGame(game)

	game.Completed = true
	s.saveGame(game)

	retrievedGame, err := s.repo.GetGame(context.Background(), &GetGameInput{
		GameID: "test-game-id",
	})
	s.Require().NoError(err)
	s.True(retrievedGame.Completed)

	output, err := s.repo.ListGames(context.Background(), &ListGamesInput{})
	s.Require().NoError(err)
	s.Len(output.Games, 1)
}

func (s *RedisRepositoryTestSuite) TestGetNonExistentGame() {
	_, err := s.repo.GetGame(context.Background(), &GetGameInput{
		GameID: "non-existent-game",
	})
	s.Require().Error(err)
	s.Equal(ErrGameNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestDeleteGame() {
	s.saveGame(s.newGame("test-game-id", s.testNow))

	err := s.repo.DeleteGame(context.Background(), &DeleteGameInput{
		GameID: "test-game-id",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetGame(context.Background(), &GetGameInput{
		GameID: "test-game-id",
	})
	s.ErrorIs(err, ErrGameNotFound)

	output, err := s.repo.ListGames(context.Background(), &ListGamesInput{})
	s.Require().NoError(err)
	s.Empty(output.Games)
}

func (s *RedisRepositoryTestSuite) TestDeleteNonExistentGame() {
	err := s.repo.DeleteGame(context.Background(), &DeleteGameInput{
		GameID: "non-existent-game",
	})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *RedisRepositoryTestSuite) TestListGamesNewestFirst() {
	s.saveGame(s.newGame("game-middle", s.testNow.Add(time.Hour)))
	s.saveGame(s.newGame("game-oldest", s.testNow))
	s.saveGame(s.newGame("game-newest", s.testNow.Add(2*time.Hour)))

	output, err := s.repo.ListGames(context.Background(), &ListGamesInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 3)

	s.Equal("game-newest", output.Games[0].ID)
	s.Equal("game-middle", output.Games[1].ID)
	s.Equal("game-oldest", output.Games[2].ID)
}

func (s *RedisRepositoryTestSuite) TestListGamesSkipsMissingRecords() {
	s.saveGame(s.newGame("game-1", s.testNow))
	s.saveGame(s.newGame("game-2", s.testNow.Add(time.Minute)))

	s.mr.Del("trepenta:game:game-2")

	output, err := s.repo.ListGames(context.Background(), &ListGamesInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 1)
	s.Equal("game-1", output.Games[0].ID)
}

func (s *RedisRepositoryTestSuite) TestListGamesKeepsOrderMicrosecondsApart() {
	// Member names sort the opposite way to creation time, so a tied score
	// would list them backwards
	s.saveGame(s.newGame("game-c", s.testNow))
	s.saveGame(s.newGame("game-b", s.testNow.Add(time.Microsecond)))
	s.saveGame(s.newGame("game-a", s.testNow.Add(2*time.Microsecond)))

	output, err := s.repo.ListGames(context.Background(), &ListGamesInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 3)
	s.Equal("game-a", output.Games[0].ID)
	s.Equal("game-b", output.Games[1].ID)
	s.Equal("game-c", output.Games[2].ID)

	// The index score is exact
	score, err := s.client.ZScore(context.Background(), "trepenta:games_by_created", "game-b").Result()
	s.Require().NoError(err)
	s.Equal(s.testNow.Add(time.Microsecond).UnixMicro(), int64(score))
}

func (s *RedisRepositoryTestSuite) TestListGamesByScope() {
	first := s.newGame("game-1", s.testNow)
	first.Scope = "channel-1"
	second := s.newGame("game-2", s.testNow.Add(time.Minute))
	second.Scope = "channel-2"
	third := s.newGame("game-3", s.testNow.Add(2*time.Minute))
	third.Scope = "channel-1"

	s.saveGame(first)
	s.saveGame(second)
	s.saveGame(third)

	output, err := s.repo.ListGames(context.Background(), &ListGamesInput{Scope: "channel-1"})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 2)
	s.Equal("game-3", output.Games[0].ID)
	s.Equal("game-1", output.Games[1].ID)

	output, err = s.repo.ListGames(context.Background(), &ListGamesInput{Scope: "channel-3"})
	s.Require().NoError(err)
	s.Empty(output.Games)

	output, err = s.repo.ListGames(context.Background(), &ListGamesInput{})
	s.Require().NoError(err)
	s.Len(output.Games, 3)

	s.Require().NoError(s.repo.DeleteGame(context.Background(), &DeleteGameInput{GameID: "game-3"}))

	output, err = s.repo.ListGames(context.Background(), &ListGamesInput{Scope: "channel-1"})
	s.Require().NoError(err)
	s.Require().Len(output.Games, 1)
	s.Equal("game-1", output.Games[0].ID)

	members, err := s.client.ZRange(context.Background(), "trepenta:games_by_created:channel-1", 0, -1).Result()
	s.Require().NoError(err)
	s.Equal([]string{"game-1"}, members)
}

func (s *RedisRepositoryTestSuite) TestUpdateGame() {
	s.saveGame(s.newGame("test-game-id", s.testNow))

	updated, err := s.repo.UpdateGame(context.Background(), &UpdateGameInput{
		GameID: "test-game-id",
		Update: func(game *models.Game) error {
			return game.AddScore("player-1", 1, 6)
		},
	})
	s.Require().NoError(err)
	s.Equal(6, updated.Total("player-1"))

	stored, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.Require().NoError(err)
	s.Equal(6, stored.Total("player-1"))
}

func (s *RedisRepositoryTestSuite) TestUpdateGameErrors() {
	_, err := s.repo.UpdateGame(context.Background(), &UpdateGameInput{
		GameID: "missing",
		Update: func(game *models.Game) error { return nil },
	})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.repo.UpdateGame(context.Background(), &UpdateGameInput{GameID: "missing"})
	s.Error(err)

	// A rejected update leaves the stored game untouched
	s.saveGame(s.newGame("test-game-id", s.testNow))
	rejected := errors.New("rejected")
	_, err = s.repo.UpdateGame(context.Background(), &UpdateGameInput{
		GameID: "test-game-id",
		Update: func(game *models.Game) error {
			game.Completed = true
			return rejected
		},
	})
	s.ErrorIs(err, rejected)

	stored, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.Require().NoError(err)
	s.False(stored.Completed)
}

func (s *RedisRepositoryTestSuite) TestUpdateGameConcurrentWriters() {
	game := s.newGame("test-game-id", s.testNow)
	for i := 3; i <= 8; i++ {
		id := "player-" + string(rune('0'+i))
		game.PlayerIDs = append(game.PlayerIDs, id)
		game.PlayerNames[id] = id
	}
	s.saveGame(game)

	var wg sync.WaitGroup
	for _, playerID := range game.PlayerIDs {
		wg.Add(1)
		go func(playerID string) {
			defer wg.Done()
			_, err := s.repo.UpdateGame(context.Background(), &UpdateGameInput{
				GameID: "test-game-id",
				Update: func(game *models.Game) error {
					return game.AddScore(playerID, 1, 1)
				},
			})
			s.NoError(err)
		}(playerID)
	}
	wg.Wait()

	stored, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "test-game-id"})
	s.Require().NoError(err)
	for _, playerID := range game.PlayerIDs {
		_, ok := stored.Score(playerID, 1)
		s.True(ok, "missing score for %s", playerID)
	}
}

func (s *RedisRepositoryTestSuite) TestCurrentGame() {
	_, err := s.repo.GetCurrentGameID(context.Background(), &GetCurrentGameIDInput{
		Scope: "local",
	})
	s.ErrorIs(err, ErrNoCurrentGame)

	err = s.repo.SetCurrentGame(context.Background(), &SetCurrentGameInput{
		Scope:  "local",
		GameID: "game-1",
	})
	s.Require().NoError(err)

	err = s.repo.SetCurrentGame(context.Background(), &SetCurrentGameInput{
		Scope:  "channel-1",
		GameID: "game-2",
	})
	s.Require().NoError(err)

	gameID, err := s.repo.GetCurrentGameID(context.Background(), &GetCurrentGameIDInput{
		Scope: "local",
	})
	s.Require().NoError(err)
	s.Equal("game-1", gameID)

	err = s.repo.ClearCurrentGame(context.Background(), &ClearCurrentGameInput{
		Scope: "local",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetCurrentGameID(context.Background(), &GetCurrentGameIDInput{
		Scope: "local",
	})
	s.ErrorIs(err, ErrNoCurrentGame)

	// Other scopes are untouched
	gameID, err = s.repo.GetCurrentGameID(context.Background(), &GetCurrentGameIDInput{
		Scope: "channel-1",
	})
	s.Require().NoError(err)
	s.Equal("game-2", gameID)
}

func (s *RedisRepositoryTestSuite) TestSetCurrentGameValidation() {
	err := s.repo.SetCurrentGame(context.Background(), &SetCurrentGameInput{
		Scope: "local",
	})
	s.Error(err)
}
