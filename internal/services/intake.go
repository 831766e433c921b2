package services

import (
	"context"
	"fmt"

	"auction-pipeline/internal/domain"
	"auction-pipeline/pkg/logger"
)

// BidIntake is the submission front door: validate the raw request, then
// hand the bid to the queue. Rejected submissions never reach the queue.
type BidIntake struct {
	validator *BidValidator
	queue     domain.BidQueue
	log       logger.Logger
}

func NewBidIntake(validator *BidValidator, queue domain.BidQueue, log logger.Logger) *BidIntake {
	return &BidIntake{
		validator: validator,
		queue:     queue,
		log:       log,
	}
}

func (s *BidIntake) Submit(ctx context.Context, raw *domain.RawBid) (*domain.Bid, error) {
	bid, err := s.validator.Validate(raw)
	if err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(ctx, bid); err != nil {
		return nil, fmt.Errorf("enqueue bid %s: %w", bid.ID, err)
	}

	s.log.Info("Bid queued",
		"bid_id", bid.ID, "item_id", bid.ItemID, "bidder_name", bid.BidderName, "amount", bid.Amount)
	return bid, nil
}
