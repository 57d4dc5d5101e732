package messaging

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ignyos/trepenta/internal/dice"
)

// closeGameMargin is the largest winning margin still called a close game
const closeGameMargin = 5

var (
	// ErrNilConfig is returned when the config is nil
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrNilDiceRoller is returned when no dice roller is configured
	ErrNilDiceRoller = errors.New("dice roller cannot be nil")

	// ErrNilInput is returned when a method is called without input
	ErrNilInput = errors.New("input cannot be nil")
)

// Message templates. Placeholders are replaced with the input values.
var (
	gameStartedMessages = []string{
		"{players} players, five rounds, one winner. {dealer}, shuffle up and deal!",
		"Cards out, phones down. {dealer} deals first.",
		"{dealer} has the deck. May your totals stay small.",
		"A fresh game of {players} begins. {dealer}, don't deal yourself anything nice.",
		"Scorecard's blank and nobody's losing yet. {dealer} deals.",
	}

	roundCompleteMessages = []string{
		"Round {round} is in the books. {leader} leads, {dealer} deals next.",
		"That's round {round}. {leader} is out in front. Over to you, {dealer}.",
		"Round {round} done! {leader} holds the lead while {dealer} shuffles.",
		"Scores are in for round {round}. {dealer}, deal us something better. {leader} is ahead.",
	}

	closeGameMessages = []string{
		"{winner} squeaks it out with {total} points. Rematch?",
		"Down to the wire! {winner} wins on {total}.",
		"{winner} takes it by a whisker with {total} points.",
	}

	comfortableGameMessages = []string{
		"{winner} cruised to victory with {total} points.",
		"Never in doubt. {winner} wins with {total}.",
		"{winner} runs away with it on {total} points. Everyone else, better luck next time.",
	}
)

// service implements the Service interface
type service struct {
	diceRoller dice.Roller
}

// New creates a new messaging service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	return &service{
		diceRoller: cfg.DiceRoller,
	}, nil
}

// pick selects a random template
func (s *service) pick(messages []string) string {
	idx := s.diceRoller.Roll(len(messages)) - 1
	if idx < 0 || idx >= len(messages) {
		idx = 0
	}
	return messages[idx]
}

// GetGameStartedMessage returns a message for when a game starts
func (s *service) GetGameStartedMessage(ctx context.Context, input *GetGameStartedMessageInput) (*GetGameStartedMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	template := "Game on! {dealer} deals the first round."
	if tone != ToneNeutral {
		template = s.pick(gameStartedMessages)
	}

	r := strings.NewReplacer(
		"{dealer}", input.DealerName,
		"{players}", strconv.Itoa(input.PlayerCount),
	)

	return &GetGameStartedMessageOutput{
		Message: r.Replace(template),
		Tone:    tone,
	}, nil
}

// GetRoundCompleteMessage returns a message for when every player has scored a round
func (s *service) GetRoundCompleteMessage(ctx context.Context, input *GetRoundCompleteMessageInput) (*GetRoundCompleteMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	r := strings.NewReplacer(
		"{round}", strconv.Itoa(input.Round),
		"{leader}", input.LeaderName,
		"{dealer}", input.NextDealerName,
	)

	return &GetRoundCompleteMessageOutput{
		Message: r.Replace(s.pick(roundCompleteMessages)),
	}, nil
}

// GetGameOverMessage returns a message announcing the winner
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	r := strings.NewReplacer(
		"{winner}", input.WinnerName,
		"{total}", strconv.Itoa(input.WinnerTotal),
	)

	margin := input.RunnerUpTotal - input.WinnerTotal

	switch {
	case margin == 0:
		// Ties go to the earlier seat
		return &GetGameOverMessageOutput{
			Title:   "Photo finish!",
			Message: r.Replace("Dead level on {total}. {winner} takes it on seat order."),
		}, nil
	case margin <= closeGameMargin:
		return &GetGameOverMessageOutput{
			Title:   r.Replace("🏆 {winner} wins!"),
			Message: r.Replace(s.pick(closeGameMessages)),
		}, nil
	default:
		return &GetGameOverMessageOutput{
			Title:   r.Replace("🏆 {winner} wins!"),
			Message: r.Replace(s.pick(comfortableGameMessages)),
		}, nil
	}
}
