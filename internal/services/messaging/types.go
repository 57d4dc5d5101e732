package messaging

import "github.com/ignyos/trepenta/internal/dice"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Config contains configuration for the messaging service
type Config struct {
	// DiceRoller picks which message is used
	DiceRoller dice.Roller
}

// GetGameStartedMessageInput contains the input for GetGameStartedMessage
type GetGameStartedMessageInput struct {
	// DealerName is the player dealing round one
	DealerName string

	PlayerCount int

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetGameStartedMessageOutput contains the output for GetGameStartedMessage
type GetGameStartedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetRoundCompleteMessageInput contains the input for GetRoundCompleteMessage
type GetRoundCompleteMessageInput struct {
	// Round is the round that was just completed
	Round int

	// LeaderName is the player with the lowest total
	LeaderName string

	// NextDealerName is the player dealing the next round
	NextDealerName string
}

// GetRoundCompleteMessageOutput contains the output for GetRoundCompleteMessage
type GetRoundCompleteMessageOutput struct {
	Message string
}

// GetGameOverMessageInput contains the input for GetGameOverMessage
type GetGameOverMessageInput struct {
	WinnerName  string
	WinnerTotal int

	// RunnerUpTotal is the second lowest total, used to pick a close or
	// comfortable win message
	RunnerUpTotal int
}

// GetGameOverMessageOutput contains the output for GetGameOverMessage
type GetGameOverMessageOutput struct {
	Title   string
	Message string
}
