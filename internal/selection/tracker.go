package selection

import (
	"context"
	"sync"
)

// UsedTracker is the persisted anti-repeat ledger for daily selection.
//
// The ledger grows monotonically as daily puzzles consume candidates and
// is reset wholesale once the unused fraction of the pool falls below
// the reset threshold.
//
// MarkUsed must be atomic add-if-absent: two concurrent first-of-day
// callers may both read the same "currently unused" view, but only one
// insert wins and both computed the same puzzle anyway (selection is a
// pure function of date and pool snapshot). The race affects day-to-day
// variety only, never a single day's determinism.
type UsedTracker interface {
	// UsedIDs returns a snapshot of the candidate ids already chosen.
	UsedIDs(ctx context.Context) (map[string]bool, error)

	// MarkUsed records a candidate id as used. Returns false when the
	// id was already present (idempotent).
	MarkUsed(ctx context.Context, id string) (bool, error)

	// Reset clears the ledger.
	Reset(ctx context.Context) error
}

// MemoryTracker is an in-process UsedTracker for tests and single-node
// hosts. Safe for concurrent use.
type MemoryTracker struct {
	mu   sync.Mutex
	used map[string]bool
}

// NewMemoryTracker creates an empty in-memory tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{used: make(map[string]bool)}
}

// UsedIDs returns a copy of the used-id set.
func (t *MemoryTracker) UsedIDs(_ context.Context) (map[string]bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]bool, len(t.used))
	for id := range t.used {
		out[id] = true
	}
	return out, nil
}

// MarkUsed adds an id, reporting whether it was newly inserted.
func (t *MemoryTracker) MarkUsed(_ context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.used[id] {
		return false, nil
	}
	t.used[id] = true
	return true, nil
}

// Reset clears the tracker.
func (t *MemoryTracker) Reset(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.used = make(map[string]bool)
	return nil
}
