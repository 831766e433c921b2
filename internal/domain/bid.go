package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bid is a validated bid travelling through the pipeline. Except for the
// Processed transition performed by the processor, a Bid is never mutated
// after validation.
type Bid struct {
	ID          string    `json:"bid_id"`
	ItemID      string    `json:"item_id"`
	BidderName  string    `json:"bidder_name"`
	Amount      float64   `json:"amount"`
	Status      BidStatus `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	ProcessedAt time.Time `json:"processed_at,omitempty"`
}

type BidStatus int

const (
	BidPending BidStatus = iota
	BidProcessed
)

func (s BidStatus) String() string {
	switch s {
	case BidPending:
		return "pending"
	case BidProcessed:
		return "processed"
	default:
		return "unknown"
	}
}

// The status travels as its name everywhere a bid is serialized: API
// responses and the queue wire format alike.
func (s BidStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BidStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "pending":
		*s = BidPending
	case "processed":
		*s = BidProcessed
	default:
		return fmt.Errorf("unknown bid status %q", name)
	}
	return nil
}

// MarkProcessed performs the one allowed status transition.
func (b *Bid) MarkProcessed(at time.Time) {
	b.Status = BidProcessed
	b.ProcessedAt = at
}

// RawBid is the unvalidated inbound request. Amount accepts a JSON number or
// a numeric string; the validator coerces it.
type RawBid struct {
	ItemID     string      `json:"item_id"`
	BidderName string      `json:"bidder_name"`
	Amount     interface{} `json:"amount"`
}
