package mq

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishInteraction(ctx context.Context, event *InteractionEvent) error
}

// 确保Producer实现MessageProducer接口
var _ MessageProducer = (*Producer)(nil)

// Publish sends the event when a producer is configured. Delivery is best
// effort: the state change is already committed, so a failure is only logged.
func Publish(ctx context.Context, p MessageProducer, event *InteractionEvent) {
	if p == nil {
		return
	}
	if err := p.PublishInteraction(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish interaction event %s failed: %v", event.EventID, err)
	}
}
