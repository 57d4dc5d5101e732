package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/ignyos/trepenta/internal/dice Roller

// Roller rolls a die. Used to draw the first dealer.
type Roller interface {
	// Roll returns a value between 1 and sides inclusive
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// roller is safe for concurrent use
type roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random roll with the specified number of sides.
// A die with fewer than one side always lands on 1.
func (r *roller) Roll(sides int) int {
	if sides < 1 {
		return 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.random.Intn(sides) + 1
}
