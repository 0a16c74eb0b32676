package guard

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEntryGuard(t *testing.T) {
	g := NewEntryGuard()
	id := uuid.New()
	other := uuid.New()

	assert.True(t, g.TryAcquire(id))
	assert.False(t, g.TryAcquire(id), "re-entry must be rejected")
	assert.True(t, g.TryAcquire(other), "other markets are unaffected")

	g.Release(id)
	assert.True(t, g.TryAcquire(id))
}

func TestEntryGuardReleaseWithoutAcquire(t *testing.T) {
	g := NewEntryGuard()
	id := uuid.New()

	g.Release(id)
	assert.True(t, g.TryAcquire(id))
}

func TestEntryGuardConcurrentAcquire(t *testing.T) {
	g := NewEntryGuard()
	id := uuid.New()

	const workers = 32
	var wg sync.WaitGroup
	acquired := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acquired <- g.TryAcquire(id)
		}()
	}
	wg.Wait()
	close(acquired)

	wins := 0
	for ok := range acquired {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one goroutine may hold the guard")
}
