package display

import (
	"testing"

	"github.com/ignyos/trepenta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	testCases := map[string]string{
		"Alice":             "A",
		"alice smith":       "AS",
		"Mary Jane Watson":  "MJ",
		"  bob   the  cat ": "BT",
		"":                  "",
		"émile zola":        "ÉZ",
	}

	for name, expected := range testCases {
		assert.Equal(t, expected, Initials(name), name)
	}
}

func TestRoundScore(t *testing.T) {
	game := &models.Game{PlayerIDs: []string{"alice"}}
	require.NoError(t, game.AddScore("alice", 2, 0))

	assert.Equal(t, EmptyScore, RoundScore(game, "alice", 1))
	assert.Equal(t, "0", RoundScore(game, "alice", 2))
	assert.Equal(t, EmptyScore, RoundScore(game, "bob", 2))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Bob Jones", "Carol"}, SplitList(" Alice, Bob Jones,,Carol ,"))
	assert.Nil(t, SplitList(" , "))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "In Progress", Status(&models.Game{}))
	assert.Equal(t, "Completed", Status(&models.Game{Completed: true}))
}
