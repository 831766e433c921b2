package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auction-pipeline/internal/domain"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

// MySQLBidStore is the durable bid store. The bids table carries an
// auto-increment seq column so reads preserve insertion order, and a unique
// key on bid_id so re-processing the same bid fails instead of duplicating.
type MySQLBidStore struct {
	db *sql.DB
}

func NewMySQLBidStore(db *sql.DB) *MySQLBidStore {
	return &MySQLBidStore{db: db}
}

func (s *MySQLBidStore) Append(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (bid_id, item_id, bidder_name, amount, status, submitted_at, processed_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, query,
		bid.ID, bid.ItemID, bid.BidderName, bid.Amount,
		bid.Status.String(), bid.SubmittedAt, nullableTime(bid.ProcessedAt))
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return fmt.Errorf("append bid %s: %w", bid.ID, domain.ErrDuplicateBid)
		}
		return fmt.Errorf("append bid %s: %w", bid.ID, domain.ErrStoreUnavailable)
	}
	return nil
}

func (s *MySQLBidStore) AllForItem(ctx context.Context, itemID string) ([]*domain.Bid, error) {
	query := `
        SELECT bid_id, item_id, bidder_name, amount, status, submitted_at, processed_at
        FROM bids
        WHERE item_id = ?
        ORDER BY seq ASC
    `
	return s.queryBids(ctx, query, itemID)
}

func (s *MySQLBidStore) All(ctx context.Context) ([]*domain.Bid, error) {
	query := `
        SELECT bid_id, item_id, bidder_name, amount, status, submitted_at, processed_at
        FROM bids
        ORDER BY seq ASC
    `
	return s.queryBids(ctx, query)
}

func (s *MySQLBidStore) queryBids(ctx context.Context, query string, args ...interface{}) ([]*domain.Bid, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", domain.ErrStoreUnavailable)
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		var bid domain.Bid
		var status string
		var processedAt sql.NullTime

		err := rows.Scan(&bid.ID, &bid.ItemID, &bid.BidderName, &bid.Amount,
			&status, &bid.SubmittedAt, &processedAt)
		if err != nil {
			return nil, err
		}

		if status == domain.BidProcessed.String() {
			bid.Status = domain.BidProcessed
		}
		if processedAt.Valid {
			bid.ProcessedAt = processedAt.Time
		}
		bids = append(bids, &bid)
	}

	return bids, rows.Err()
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
