package dice

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollStaysInRange(t *testing.T) {
	r := New(&Config{Seed: 42})

	for i := 0; i < 200; i++ {
		value := r.Roll(4)
		assert.GreaterOrEqual(t, value, 1)
		assert.LessOrEqual(t, value, 4)
	}
}

func TestRollSeededIsDeterministic(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Roll(6), b.Roll(6))
	}
}

func TestRollDegenerateDie(t *testing.T) {
	r := New(nil)
	assert.Equal(t, 1, r.Roll(0))
	assert.Equal(t, 1, r.Roll(1))
}

func TestRollConcurrently(t *testing.T) {
	r := New(&Config{})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				value := r.Roll(4)
				assert.GreaterOrEqual(t, value, 1)
				assert.LessOrEqual(t, value, 4)
			}
		}()
	}
	wg.Wait()
}
