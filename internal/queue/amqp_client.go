package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/streadway/amqp"

	"wevolve-backend/internal/shared/telemetry"
)

const exchangeKind = "topic"

// AMQPClient publishes messages to a RabbitMQ topic exchange.
type AMQPClient struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPClient dials url and declares exchange as a durable topic exchange.
func NewAMQPClient(url, exchange string) (*AMQPClient, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required")
	}
	if strings.TrimSpace(exchange) == "" {
		return nil, fmt.Errorf("exchange is required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		exchangeKind,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPClient{conn: conn, exchange: exchange, ch: ch}, nil
}

// Send publishes msg with its routing key. The channel is shared, so
// publishes are serialized.
func (c *AMQPClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.ch.Publish(
		c.exchange,
		msg.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.RequestID,
			Type:         msg.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", msg.RoutingKey(), err)
	}
	return nil
}

// Subscribe binds an exclusive queue to bindingKey and calls handle for each
// message until ctx is done. Undecodable payloads are logged and skipped.
func (c *AMQPClient) Subscribe(ctx context.Context, bindingKey string, handle func(Message) error) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, bindingKey, c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			msg, err := DecodeMessage(d.Body)
			if err != nil {
				telemetry.Error("queue.decode_failed", map[string]any{"routing_key": d.RoutingKey, "err": err})
				continue
			}
			if err := handle(msg); err != nil {
				return err
			}
		}
	}
}

// Close closes the channel and the connection.
func (c *AMQPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch != nil {
		_ = c.ch.Close()
	}
	return c.conn.Close()
}

var _ Client = (*AMQPClient)(nil)
