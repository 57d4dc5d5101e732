package scorekeeper

// ScorekeeperError is a custom error type for scorekeeping errors
type ScorekeeperError string

// Error implements the error interface
func (e ScorekeeperError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound     ScorekeeperError = "game not found"
	ErrNoCurrentGame    ScorekeeperError = "no game in progress"
	ErrGameInProgress   ScorekeeperError = "a game is already in progress"
	ErrGameCompleted    ScorekeeperError = "game is already complete"
	ErrNotEnoughPlayers ScorekeeperError = "at least two players are required"
	ErrDuplicatePlayer  ScorekeeperError = "player names must be unique"
	ErrPlayerNotInGame  ScorekeeperError = "player not in game"
	ErrInvalidDealer    ScorekeeperError = "dealer index is out of range"
	ErrInvalidRound     ScorekeeperError = "round must be between 1 and 5"
	ErrInvalidScore     ScorekeeperError = "score must be zero or more"
	ErrInvalidDeck      ScorekeeperError = "deck configuration is invalid"
	ErrUnknownHouseRule ScorekeeperError = "unknown house rule"
	ErrInvalidScope     ScorekeeperError = "scope cannot be empty"
	ErrNilConfig        ScorekeeperError = "config cannot be nil"
	ErrNilGameRepo      ScorekeeperError = "game repository cannot be nil"
	ErrNilPlayerRepo    ScorekeeperError = "player repository cannot be nil"
	ErrNilDiceRoller    ScorekeeperError = "dice roller cannot be nil"
	ErrNilClock         ScorekeeperError = "clock cannot be nil"
	ErrNilUUIDGenerator ScorekeeperError = "UUID generator cannot be nil"
	ErrNilHouseRules    ScorekeeperError = "house rules catalog cannot be nil"
)
