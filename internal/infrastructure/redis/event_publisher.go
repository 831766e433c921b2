package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-pipeline/internal/domain"

	"github.com/go-redis/redis/v8"
)

const leaderChannel = "leader_changes"

// RedisEventPublisher announces leader changes on a pub/sub channel for
// downstream consumers (dashboards, other services).
type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (r *RedisEventPublisher) PublishLeaderChange(ctx context.Context, event *domain.LeaderChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal leader change for item %s: %w", event.ItemID, err)
	}

	return r.client.Publish(ctx, leaderChannel, payload).Err()
}
