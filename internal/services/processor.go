package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-pipeline/internal/domain"
	"auction-pipeline/pkg/logger"
)

// AuctionProcessor drives one processing cycle: drain the queue, persist each
// bid in FIFO order, recompute the leader for every touched item and publish
// a notification when the leader changed.
type AuctionProcessor struct {
	queue     domain.BidQueue
	store     domain.BidStore
	tracker   *WinnerTracker
	publisher domain.NotificationPublisher
	log       logger.Logger
	cycleMu   sync.Mutex
	now       func() time.Time
}

func NewAuctionProcessor(
	queue domain.BidQueue,
	store domain.BidStore,
	tracker *WinnerTracker,
	publisher domain.NotificationPublisher,
	log logger.Logger,
) *AuctionProcessor {
	return &AuctionProcessor{
		queue:     queue,
		store:     store,
		tracker:   tracker,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// RunCycle processes everything queued at call time and returns the number of
// bids persisted. At most one cycle runs at a time. An empty queue ends the
// cycle immediately with no side effects. A duplicate bid is logged and
// skipped; a store outage aborts the cycle and re-enqueues the bids not yet
// persisted, so a later cycle retries them. Bids persisted before the outage
// still get their items' leaders recomputed and notified.
func (p *AuctionProcessor) RunCycle(ctx context.Context) (int, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	batch, err := p.queue.DrainAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("drain queue: %w", err)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	processed := 0
	touched := make(map[string]struct{})
	for i, bid := range batch {
		bid.MarkProcessed(p.now().UTC())

		if err := p.store.Append(ctx, bid); err != nil {
			if errors.Is(err, domain.ErrDuplicateBid) {
				p.log.Warn("Skipping duplicate bid", "bid_id", bid.ID, "item_id", bid.ItemID)
				continue
			}
			p.requeue(ctx, batch[i:])
			// Bids persisted before the outage are already Processed; fold
			// them into the leader state so their items are not left stale
			// until the item happens to be touched again.
			p.notifyLeaderChanges(ctx, touched)
			return processed, fmt.Errorf("persist bid %s: %w", bid.ID, err)
		}

		processed++
		touched[bid.ItemID] = struct{}{}
	}

	p.notifyLeaderChanges(ctx, touched)
	return processed, nil
}

// notifyLeaderChanges recomputes the leader for every item touched in the
// batch against the full stored history, not just the batch, and publishes at
// most one event per item.
func (p *AuctionProcessor) notifyLeaderChanges(ctx context.Context, touched map[string]struct{}) {
	for itemID := range touched {
		bids, err := p.store.AllForItem(ctx, itemID)
		if err != nil {
			p.log.Error("Failed to load bids for item", "item_id", itemID, "error", err)
			continue
		}

		leader, changed := p.tracker.Recompute(itemID, bids)
		if leader == nil || !changed {
			continue
		}

		event := &domain.LeaderChangeEvent{
			ItemID:        itemID,
			WinnerName:    leader.WinnerName,
			WinningAmount: leader.WinningAmount,
			Timestamp:     leader.LastUpdated,
		}

		// Best effort: the tracked state is already updated, a failed
		// notification is not retried.
		if err := p.publisher.PublishLeaderChange(ctx, event); err != nil {
			p.log.Error("Failed to publish leader change", "item_id", itemID, "error", err)
			continue
		}

		p.log.Info("Leader change published",
			"item_id", itemID, "winner_name", leader.WinnerName, "winning_amount", leader.WinningAmount)
	}
}

func (p *AuctionProcessor) requeue(ctx context.Context, bids []*domain.Bid) {
	for _, bid := range bids {
		bid.Status = domain.BidPending
		bid.ProcessedAt = time.Time{}
		if err := p.queue.Enqueue(ctx, bid); err != nil {
			p.log.Error("Failed to requeue bid", "bid_id", bid.ID, "error", err)
		}
	}
}
