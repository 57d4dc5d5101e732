package discord

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/ignyos/trepenta/internal/services/messaging"
	"github.com/ignyos/trepenta/internal/services/scorekeeper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Services are never called by these tests
type stubScorekeeper struct{ scorekeeper.Service }

type stubMessaging struct{ messaging.Service }

type recordingCommand struct {
	BaseCommand
	handled chan string
}

func (c *recordingCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	c.handled <- i.ChannelID
	return nil
}

func newTestBot(t *testing.T) *Bot {
	t.Helper()

	bot, err := New(&Config{
		Token:       "test-token",
		Scorekeeper: stubScorekeeper{},
		Messaging:   stubMessaging{},
	})
	require.NoError(t, err)

	return bot
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{Scorekeeper: stubScorekeeper{}, Messaging: stubMessaging{}})
	assert.Error(t, err)

	_, err = New(&Config{Token: "test-token", Messaging: stubMessaging{}})
	assert.Error(t, err)
}

func TestNewAddsHandlersBeforeStart(t *testing.T) {
	bot := newTestBot(t)

	h, ok := bot.handler(commandName)
	require.True(t, ok)
	assert.Equal(t, commandName, h.GetName())
	assert.Len(t, bot.handlers(), 1)
}

func TestHandleInteractionWhileCommandsAreAdded(t *testing.T) {
	bot := newTestBot(t)

	cmd := &recordingCommand{
		BaseCommand: BaseCommand{Name: "tally"},
		handled:     make(chan string, 64),
	}
	bot.addCommand(cmd)

	interaction := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: "channel-1",
			Data:      discordgo.ApplicationCommandInteractionData{Name: "tally"},
		},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 32; i++ {
			bot.addCommand(&recordingCommand{BaseCommand: BaseCommand{Name: fmt.Sprintf("extra-%d", i)}})
		}
	}()

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.handleInteraction(bot.session, interaction)
		}()
	}
	wg.Wait()
	close(cmd.handled)

	count := 0
	for channelID := range cmd.handled {
		assert.Equal(t, "channel-1", channelID)
		count++
	}
	assert.Equal(t, 32, count)
	assert.Len(t, bot.handlers(), 34)
}

func TestHandleInteractionIgnoresUnknownCommands(t *testing.T) {
	bot := newTestBot(t)

	assert.NotPanics(t, func() {
		bot.handleInteraction(bot.session, &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: discordgo.ApplicationCommandInteractionData{Name: "unknown"},
			},
		})
	})
}
