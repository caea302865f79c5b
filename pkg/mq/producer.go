package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// URL builds the amqp url from its parts.
func URL(username, password, addr string) string {
	return fmt.Sprintf("amqp://%s:%s@%s/", username, password, addr)
}

func NewProducer(rabbitmqURL, exchange string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
	}

	// 声明exchange和queue
	if err := declareTopology(ch, exchange); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return producer, nil
}

// declareTopology is shared by both ends so either may start first.
func declareTopology(ch *amqp091.Channel, exchange string) error {
	err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare interaction exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		InteractionEventQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare interaction queue: %w", err)
	}

	// 绑定队列到交换机，接收全部事件
	if err = ch.QueueBind(InteractionEventQueue, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind interaction queue: %w", err)
	}
	return nil
}

func (p *Producer) PublishInteraction(ctx context.Context, event *InteractionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.RoutingKey(),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish interaction event: %w", err)
	}

	hlog.CtxInfof(ctx, "Published interaction event: %+v", event)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
