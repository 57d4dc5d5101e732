package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetGameStartedMessage returns a message for when a game starts
	GetGameStartedMessage(ctx context.Context, input *GetGameStartedMessageInput) (*GetGameStartedMessageOutput, error)

	// GetRoundCompleteMessage returns a message for when every player has scored a round
	GetRoundCompleteMessage(ctx context.Context, input *GetRoundCompleteMessageInput) (*GetRoundCompleteMessageOutput, error)

	// GetGameOverMessage returns a message announcing the winner
	GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error)
}
