package services

import (
	"testing"
	"time"

	"auction-pipeline/internal/domain"

	"github.com/stretchr/testify/require"
)

func processedBid(id, itemID, bidder string, amount float64, submittedAt time.Time) *domain.Bid {
	return &domain.Bid{
		ID:          id,
		ItemID:      itemID,
		BidderName:  bidder,
		Amount:      amount,
		Status:      domain.BidProcessed,
		SubmittedAt: submittedAt,
		ProcessedAt: submittedAt.Add(time.Second),
	}
}

func TestWinnerTracker_Recompute(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		bids       []*domain.Bid
		wantNil    bool
		wantWinner string
		wantAmount float64
		wantBidID  string
	}{
		{
			name:    "no_bids",
			bids:    nil,
			wantNil: true,
		},
		{
			name: "pending_bids_ignored",
			bids: []*domain.Bid{
				{ID: "b1", ItemID: "item1", BidderName: "Alice", Amount: 100, Status: domain.BidPending, SubmittedAt: now},
			},
			wantNil: true,
		},
		{
			name: "highest_amount_wins",
			bids: []*domain.Bid{
				processedBid("b1", "item1", "Alice", 100, now),
				processedBid("b2", "item1", "Bob", 150, now.Add(time.Second)),
				processedBid("b3", "item1", "Carol", 120, now.Add(2*time.Second)),
			},
			wantWinner: "Bob",
			wantAmount: 150,
			wantBidID:  "b2",
		},
		{
			name: "tie_broken_by_earliest_submission",
			bids: []*domain.Bid{
				processedBid("b1", "item1", "Alice", 150, now.Add(time.Second)),
				processedBid("b2", "item1", "Bob", 150, now),
			},
			wantWinner: "Bob",
			wantAmount: 150,
			wantBidID:  "b2",
		},
		{
			name: "full_tie_broken_by_insertion_order",
			bids: []*domain.Bid{
				processedBid("b1", "item1", "Alice", 150, now),
				processedBid("b2", "item1", "Bob", 150, now),
			},
			wantWinner: "Alice",
			wantAmount: 150,
			wantBidID:  "b1",
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tracker := NewWinnerTracker()
			leader, changed := tracker.Recompute("item1", tc.bids)

			if tc.wantNil {
				require.Nil(t, leader)
				require.False(t, changed)
				require.Nil(t, tracker.Leader("item1"))
				return
			}

			require.NotNil(t, leader)
			require.True(t, changed, "first recompute with a winner should report a change")
			require.Equal(t, "item1", leader.ItemID)
			require.Equal(t, tc.wantWinner, leader.WinnerName)
			require.Equal(t, tc.wantAmount, leader.WinningAmount)
			require.Equal(t, tc.wantBidID, leader.BidID)
			require.False(t, leader.LastUpdated.IsZero())
		})
	}
}

func TestWinnerTracker_ChangeDetection(t *testing.T) {
	now := time.Now().UTC()
	tracker := NewWinnerTracker()

	bids := []*domain.Bid{processedBid("b1", "item1", "Alice", 100, now)}
	_, changed := tracker.Recompute("item1", bids)
	require.True(t, changed)

	// Same winner again: no change.
	_, changed = tracker.Recompute("item1", bids)
	require.False(t, changed)

	// Lower bid added: leader keeps the lead, no change.
	bids = append(bids, processedBid("b2", "item1", "Bob", 50, now.Add(time.Second)))
	_, changed = tracker.Recompute("item1", bids)
	require.False(t, changed)

	// Higher bid added: leader changes.
	bids = append(bids, processedBid("b3", "item1", "Bob", 200, now.Add(2*time.Second)))
	leader, changed := tracker.Recompute("item1", bids)
	require.True(t, changed)
	require.Equal(t, "Bob", leader.WinnerName)
	require.Equal(t, 200.0, leader.WinningAmount)

	// Same bidder raising their own amount still counts as a change.
	bids = append(bids, processedBid("b4", "item1", "Bob", 250, now.Add(3*time.Second)))
	leader, changed = tracker.Recompute("item1", bids)
	require.True(t, changed)
	require.Equal(t, 250.0, leader.WinningAmount)
}

func TestWinnerTracker_LeaderReturnsCopy(t *testing.T) {
	now := time.Now().UTC()
	tracker := NewWinnerTracker()

	tracker.Recompute("item1", []*domain.Bid{processedBid("b1", "item1", "Alice", 100, now)})

	leader := tracker.Leader("item1")
	require.NotNil(t, leader)
	leader.WinnerName = "Mallory"

	require.Equal(t, "Alice", tracker.Leader("item1").WinnerName)
}

func TestWinnerTracker_ItemsAreIndependent(t *testing.T) {
	now := time.Now().UTC()
	tracker := NewWinnerTracker()

	tracker.Recompute("item1", []*domain.Bid{processedBid("b1", "item1", "Alice", 100, now)})
	tracker.Recompute("item2", []*domain.Bid{processedBid("b2", "item2", "Carol", 200, now)})

	require.Equal(t, "Alice", tracker.Leader("item1").WinnerName)
	require.Equal(t, "Carol", tracker.Leader("item2").WinnerName)
	require.Nil(t, tracker.Leader("item3"))
}
