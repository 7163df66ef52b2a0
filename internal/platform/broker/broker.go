// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package broker publishes domain events (order and payment status changes) to
RabbitMQ.

Publishing is best-effort: callers log a failed publish and carry on, the
request that triggered the event still succeeds. Without AMQP_URL the
[Nop] publisher is used and events only reach the debug log.
*/
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends one event to the exchange under routingKey.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Envelope is the JSON body of every published message.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// # RabbitMQ

// AMQPPublisher publishes persistent JSON messages to a durable topic exchange.
//
// # Concurrency
//
// One channel is shared and guarded by a mutex; it is reopened once if the
// broker closed it.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	channel *amqp.Channel
}

// Dial connects to url and declares exchange.
func Dial(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("broker: dial failed: %w", err)
	}

	publisher := &AMQPPublisher{conn: conn, exchange: exchange, logger: logger}
	if err := publisher.openChannel(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("broker connected", slog.String("exchange", exchange))
	return publisher, nil
}

func (publisher *AMQPPublisher) openChannel() error {
	channel, err := publisher.conn.Channel()
	if err != nil {
		return fmt.Errorf("broker: channel open failed: %w", err)
	}

	if err := channel.ExchangeDeclare(
		publisher.exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = channel.Close()
		return fmt.Errorf("broker: exchange declare failed: %w", err)
	}

	publisher.channel = channel
	return nil
}

// Publish implements [Publisher].
func (publisher *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	envelope := Envelope{
		ID:         uuid.NewString(),
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("broker: marshal event failed: %w", err)
	}

	message := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    envelope.ID,
		Timestamp:    envelope.OccurredAt,
		Type:         routingKey,
		Body:         body,
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	err = publisher.channel.PublishWithContext(ctx, publisher.exchange, routingKey, false, false, message)
	if errors.Is(err, amqp.ErrClosed) {
		if reopenErr := publisher.openChannel(); reopenErr != nil {
			return reopenErr
		}
		err = publisher.channel.PublishWithContext(ctx, publisher.exchange, routingKey, false, false, message)
	}
	if err != nil {
		return fmt.Errorf("broker: publish %s failed: %w", routingKey, err)
	}

	return nil
}

// Close releases the channel and the connection.
func (publisher *AMQPPublisher) Close() error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if publisher.channel != nil {
		_ = publisher.channel.Close()
	}
	return publisher.conn.Close()
}

// # Fallback

// Nop drops events after logging them at debug level.
type Nop struct {
	Logger *slog.Logger
}

// Publish implements [Publisher].
func (nop Nop) Publish(ctx context.Context, routingKey string, payload any) error {
	if nop.Logger != nil {
		nop.Logger.DebugContext(ctx, "event_dropped", slog.String("routing_key", routingKey), slog.Any("payload", payload))
	}
	return nil
}
