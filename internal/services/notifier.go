package services

import (
	"context"

	"auction-pipeline/internal/domain"
	"auction-pipeline/pkg/logger"
)

// LogNotificationPublisher writes leader changes to the structured log. It is
// the default sink and always available.
type LogNotificationPublisher struct {
	log logger.Logger
}

func NewLogNotificationPublisher(log logger.Logger) *LogNotificationPublisher {
	return &LogNotificationPublisher{log: log}
}

func (p *LogNotificationPublisher) PublishLeaderChange(ctx context.Context, event *domain.LeaderChangeEvent) error {
	p.log.Info("Leader change",
		"item_id", event.ItemID,
		"winner_name", event.WinnerName,
		"winning_amount", event.WinningAmount,
		"timestamp", event.Timestamp)
	return nil
}

// MultiPublisher fans one event out to several sinks. A failing sink is
// logged and does not block the others.
type MultiPublisher struct {
	sinks []domain.NotificationPublisher
	log   logger.Logger
}

func NewMultiPublisher(log logger.Logger, sinks ...domain.NotificationPublisher) *MultiPublisher {
	return &MultiPublisher{sinks: sinks, log: log}
}

func (p *MultiPublisher) PublishLeaderChange(ctx context.Context, event *domain.LeaderChangeEvent) error {
	for _, sink := range p.sinks {
		if err := sink.PublishLeaderChange(ctx, event); err != nil {
			p.log.Error("Notification sink failed", "item_id", event.ItemID, "error", err)
		}
	}
	return nil
}
