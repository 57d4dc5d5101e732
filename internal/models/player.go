package models

import (
	"time"
)

// Player represents someone who has taken a seat in at least one game
type Player struct {
	// ID is the unique identifier for the player
	ID string

	// Name is the display name of the player
	Name string

	// CreatedAt is when the player was first recorded
	CreatedAt time.Time
}
