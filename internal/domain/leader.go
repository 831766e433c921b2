package domain

import (
	"time"
)

// LeaderState is the derived per-item view of the current highest bid among
// processed bids.
type LeaderState struct {
	ItemID        string    `json:"item_id"`
	WinnerName    string    `json:"winner_name"`
	WinningAmount float64   `json:"winning_amount"`
	BidID         string    `json:"bid_id"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Same reports whether two states describe the same leader. A different
// bidder or a different amount counts as a change.
func (s *LeaderState) Same(other *LeaderState) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.WinnerName == other.WinnerName && s.WinningAmount == other.WinningAmount
}

type LeaderChangeEvent struct {
	ItemID        string    `json:"item_id"`
	WinnerName    string    `json:"winner_name"`
	WinningAmount float64   `json:"winning_amount"`
	Timestamp     time.Time `json:"timestamp"`
}
