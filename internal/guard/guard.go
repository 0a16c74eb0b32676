package guard

import (
	"sync"

	"github.com/google/uuid"
)

// EntryGuard tracks in-progress operations per market so that no mutating
// operation can be invoked against a market before a prior invocation
// completes. Database row locks serialize concurrent writers across
// processes; the guard additionally rejects logical re-entry within a
// process instead of queueing it.
type EntryGuard struct {
	mu   sync.Mutex
	busy map[uuid.UUID]struct{}
}

// NewEntryGuard creates an empty guard.
func NewEntryGuard() *EntryGuard {
	return &EntryGuard{
		busy: make(map[uuid.UUID]struct{}),
	}
}

// TryAcquire marks the market as busy. It returns false if an operation is
// already in progress for the market.
func (g *EntryGuard) TryAcquire(marketID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[marketID]; ok {
		return false
	}
	g.busy[marketID] = struct{}{}
	return true
}

// Release clears the busy flag. Safe to call for a market that was never
// acquired.
func (g *EntryGuard) Release(marketID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, marketID)
}
