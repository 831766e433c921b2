package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-pipeline/internal/domain"

	"github.com/go-redis/redis/v8"
)

const queueKey = "bid_queue"

// RedisBidQueue backs the pipeline queue with a Redis list. Bids are stored
// as JSON, RPUSH on enqueue, so LRANGE reads in FIFO order.
type RedisBidQueue struct {
	client *redis.Client
}

func NewRedisBidQueue(client *redis.Client) *RedisBidQueue {
	return &RedisBidQueue{client: client}
}

func (q *RedisBidQueue) Enqueue(ctx context.Context, bid *domain.Bid) error {
	payload, err := json.Marshal(bid)
	if err != nil {
		return fmt.Errorf("marshal bid %s: %w", bid.ID, err)
	}

	if err := q.client.RPush(ctx, queueKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue bid %s: %w", bid.ID, domain.ErrQueueUnavailable)
	}
	return nil
}

// DrainAll reads and deletes the whole list inside one MULTI/EXEC, so bids
// pushed concurrently land in the next batch instead of being lost.
func (q *RedisBidQueue) DrainAll(ctx context.Context) ([]*domain.Bid, error) {
	pipe := q.client.TxPipeline()
	entries := pipe.LRange(ctx, queueKey, 0, -1)
	pipe.Del(ctx, queueKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain queue: %w", domain.ErrQueueUnavailable)
	}

	values := entries.Val()
	bids := make([]*domain.Bid, 0, len(values))
	for _, v := range values {
		var bid domain.Bid
		if err := json.Unmarshal([]byte(v), &bid); err != nil {
			return nil, fmt.Errorf("decode queued bid: %w", err)
		}
		bids = append(bids, &bid)
	}
	return bids, nil
}
