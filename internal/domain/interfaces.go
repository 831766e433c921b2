package domain

import (
	"context"
)

// Queue interface
type BidQueue interface {
	// Enqueue appends a bid to the tail of the queue. Safe for concurrent use.
	Enqueue(ctx context.Context, bid *Bid) error
	// DrainAll atomically removes and returns everything queued at call time,
	// in FIFO order. Bids enqueued during the drain land in the next batch.
	// An empty queue yields an empty batch immediately.
	DrainAll(ctx context.Context) ([]*Bid, error)
}

// Store interface
type BidStore interface {
	// Append records a bid. Appending an id that is already stored fails with
	// ErrDuplicateBid. Stored bids are never mutated or deleted.
	Append(ctx context.Context, bid *Bid) error
	// AllForItem returns every stored bid for an item in insertion order.
	AllForItem(ctx context.Context, itemID string) ([]*Bid, error)
	// All returns every stored bid in insertion order.
	All(ctx context.Context) ([]*Bid, error)
}

// Notification interface
type NotificationPublisher interface {
	PublishLeaderChange(ctx context.Context, event *LeaderChangeEvent) error
}
