package services

import (
	"sync"
	"time"

	"auction-pipeline/internal/domain"
)

// WinnerTracker determines the current highest bid per item. The result is a
// pure function of the processed bids passed in; the tracker only caches the
// last computed LeaderState per item so the processor can tell whether the
// leader actually changed.
type WinnerTracker struct {
	mu      sync.RWMutex
	leaders map[string]*domain.LeaderState
	now     func() time.Time
}

func NewWinnerTracker() *WinnerTracker {
	return &WinnerTracker{
		leaders: make(map[string]*domain.LeaderState),
		now:     time.Now,
	}
}

// Recompute selects the winning bid among the processed bids for an item and
// refreshes the cached LeaderState. Ties on amount go to the earliest
// submission; the scan replaces the current best only on a strict win, so
// store insertion order is the final tie-break. Returns nil when the item has
// no processed bids, and whether the leader differs from the previous state.
func (t *WinnerTracker) Recompute(itemID string, bids []*domain.Bid) (*domain.LeaderState, bool) {
	var best *domain.Bid
	for _, b := range bids {
		if b.Status != domain.BidProcessed {
			continue
		}
		if best == nil || beats(b, best) {
			best = b
		}
	}

	if best == nil {
		return nil, false
	}

	next := &domain.LeaderState{
		ItemID:        itemID,
		WinnerName:    best.BidderName,
		WinningAmount: best.Amount,
		BidID:         best.ID,
		LastUpdated:   t.now().UTC(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.leaders[itemID]
	t.leaders[itemID] = next
	return next, !next.Same(prev)
}

// Leader returns a copy of the cached state for an item, or nil if no
// processed bid has been seen for it.
func (t *WinnerTracker) Leader(itemID string) *domain.LeaderState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	state, exists := t.leaders[itemID]
	if !exists {
		return nil
	}
	c := *state
	return &c
}

func beats(b, best *domain.Bid) bool {
	if b.Amount != best.Amount {
		return b.Amount > best.Amount
	}
	return b.SubmittedAt.Before(best.SubmittedAt)
}
