package websocket

import (
	"context"

	"auction-pipeline/internal/domain"
)

// WebSocketEventPublisher pushes leader changes to connections watching the
// affected item.
type WebSocketEventPublisher struct {
	connManager *ConnectionManager
}

func NewWebSocketEventPublisher(connManager *ConnectionManager) *WebSocketEventPublisher {
	return &WebSocketEventPublisher{connManager: connManager}
}

func (n *WebSocketEventPublisher) PublishLeaderChange(ctx context.Context, event *domain.LeaderChangeEvent) error {
	return n.connManager.BroadcastToItem(event.ItemID, event)
}
