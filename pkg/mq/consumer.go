package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

// InteractionHandler processes one decoded event. An error requeues the message.
type InteractionHandler interface {
	HandleInteraction(ctx context.Context, event *InteractionEvent) error
}

type HandlerFunc func(ctx context.Context, event *InteractionEvent) error

func (f HandlerFunc) HandleInteraction(ctx context.Context, event *InteractionEvent) error {
	return f(ctx, event)
}

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL, exchange string, prefetch int) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	if err = ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}
	if err = declareTopology(ch, exchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}
	return &Consumer{conn: conn, channel: ch}, nil
}

// Consume blocks until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Consume(ctx context.Context, handler InteractionHandler) error {
	msgs, err := c.channel.ConsumeWithContext(ctx,
		InteractionEventQueue,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			hlog.Info("Interaction event consumer context cancelled")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("interaction event channel closed")
			}
			dispatch(ctx, d.Body, &d, handler)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// dispatch decodes and handles one delivery. Undecodable messages are
// dropped; handler failures go back to the queue.
func dispatch(ctx context.Context, body []byte, ack acknowledger, handler InteractionHandler) {
	var event InteractionEvent
	if err := json.Unmarshal(body, &event); err != nil || event.EventID == "" {
		hlog.CtxErrorf(ctx, "Failed to unmarshal interaction event: %v", err)
		_ = ack.Nack(false, false)
		return
	}
	if err := handler.HandleInteraction(ctx, &event); err != nil {
		hlog.CtxErrorf(ctx, "Failed to handle interaction event %s: %v", event.EventID, err)
		_ = ack.Nack(false, true)
		return
	}
	_ = ack.Ack(false)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
