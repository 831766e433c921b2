package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"auction-pipeline/internal/domain"

	"github.com/google/uuid"
)

// BidValidator turns raw submissions into well-formed pending bids. It holds
// no state beyond the clock, which is injectable for tests.
type BidValidator struct {
	now func() time.Time
}

func NewBidValidator() *BidValidator {
	return &BidValidator{now: time.Now}
}

// Validate checks the raw submission and, on success, returns a new Bid with
// a fresh id, status pending and the submission timestamp set. It never
// returns a bid with a non-positive amount.
func (v *BidValidator) Validate(raw *domain.RawBid) (*domain.Bid, error) {
	if strings.TrimSpace(raw.ItemID) == "" {
		return nil, &domain.ValidationError{Code: domain.MissingField, Field: "item_id"}
	}
	if strings.TrimSpace(raw.BidderName) == "" {
		return nil, &domain.ValidationError{Code: domain.MissingField, Field: "bidder_name"}
	}
	if raw.Amount == nil {
		return nil, &domain.ValidationError{Code: domain.MissingField, Field: "amount"}
	}
	if s, ok := raw.Amount.(string); ok && strings.TrimSpace(s) == "" {
		return nil, &domain.ValidationError{Code: domain.MissingField, Field: "amount"}
	}

	amount, ok := coerceAmount(raw.Amount)
	if !ok || amount <= 0 {
		return nil, &domain.ValidationError{Code: domain.InvalidAmount, Field: "amount"}
	}

	return &domain.Bid{
		ID:          uuid.NewString(),
		ItemID:      raw.ItemID,
		BidderName:  raw.BidderName,
		Amount:      amount,
		Status:      domain.BidPending,
		SubmittedAt: v.now().UTC(),
	}, nil
}

// coerceAmount accepts the shapes a JSON body can carry the amount in.
func coerceAmount(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
