package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mytube.com/config"
	"mytube.com/pkg/mq"
)

const prefetch = 10

// auditLog writes one line per interaction so likes and subscriptions can be
// traced outside the database.
func auditLog(ctx context.Context, e *mq.InteractionEvent) error {
	hlog.CtxInfof(ctx, "[interaction] %s actor=%s target=%s at=%s event=%s",
		e.RoutingKey(), e.ActorID, e.TargetID,
		time.UnixMilli(e.Timestamp).UTC().Format(time.RFC3339), e.EventID)
	return nil
}

func main() {
	config.Init()
	info := config.ConfigInfo.RabbitMq

	consumer, err := mq.NewConsumer(mq.URL(info.Username, info.Password, info.Addr), info.Exchange, prefetch)
	if err != nil {
		hlog.Fatalf("Failed to create interaction consumer: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hlog.Info("Event consumer started successfully, waiting for messages...")
	if err := consumer.Consume(ctx, mq.HandlerFunc(auditLog)); err != nil {
		hlog.Errorf("Event consumer stopped: %v", err)
		return
	}
	hlog.Info("Event consumer stopped")
}
