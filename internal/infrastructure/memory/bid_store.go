package memory

import (
	"context"
	"fmt"
	"sync"

	"auction-pipeline/internal/domain"
)

// BidStore is a concurrency-safe in-memory append-only bid store. Reads
// return copies in insertion order; entries are never mutated or deleted.
type BidStore struct {
	mu     sync.RWMutex
	bids   []*domain.Bid
	byItem map[string][]*domain.Bid
	byID   map[string]struct{}
}

func NewBidStore() *BidStore {
	return &BidStore{
		byItem: make(map[string][]*domain.Bid),
		byID:   make(map[string]struct{}),
	}
}

func (s *BidStore) Append(ctx context.Context, bid *domain.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[bid.ID]; exists {
		return fmt.Errorf("append bid %s: %w", bid.ID, domain.ErrDuplicateBid)
	}

	stored := *bid
	s.byID[bid.ID] = struct{}{}
	s.bids = append(s.bids, &stored)
	s.byItem[bid.ItemID] = append(s.byItem[bid.ItemID], &stored)
	return nil
}

func (s *BidStore) AllForItem(ctx context.Context, itemID string) ([]*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyBids(s.byItem[itemID]), nil
}

func (s *BidStore) All(ctx context.Context) ([]*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyBids(s.bids), nil
}

func copyBids(bids []*domain.Bid) []*domain.Bid {
	out := make([]*domain.Bid, 0, len(bids))
	for _, b := range bids {
		c := *b
		out = append(out, &c)
	}
	return out
}
