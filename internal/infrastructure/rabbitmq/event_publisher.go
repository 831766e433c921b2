package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-pipeline/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQEventPublisher fans leader-change events out on a durable fanout
// exchange. Consumers bind their own queues.
type RabbitMQEventPublisher struct {
	channel  *amqp.Channel
	exchange string
}

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchange string) (*RabbitMQEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQEventPublisher{channel: ch, exchange: exchange}, nil
}

func (p *RabbitMQEventPublisher) PublishLeaderChange(ctx context.Context, event *domain.LeaderChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal leader change for item %s: %w", event.ItemID, err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		"", // fanout ignores the routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to exchange %s: %w", p.exchange, err)
	}
	return nil
}

func (p *RabbitMQEventPublisher) Close() error {
	return p.channel.Close()
}
