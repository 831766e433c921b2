package memory

import (
	"context"
	"sync"

	"auction-pipeline/internal/domain"
)

// BidQueue is a concurrency-safe in-memory FIFO queue. It is unbounded; a
// bounded variant with a rejection policy can replace it behind the same
// interface.
type BidQueue struct {
	mu   sync.Mutex
	bids []*domain.Bid
}

func NewBidQueue() *BidQueue {
	return &BidQueue{}
}

func (q *BidQueue) Enqueue(ctx context.Context, bid *domain.Bid) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.bids = append(q.bids, bid)
	return nil
}

// DrainAll swaps the backing slice out under the lock, so a batch never
// includes bids enqueued after the call started.
func (q *BidQueue) DrainAll(ctx context.Context) ([]*domain.Bid, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.bids
	q.bids = nil
	return drained, nil
}

// Len reports the number of queued bids.
func (q *BidQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.bids)
}
