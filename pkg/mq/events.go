package mq

import (
	"time"

	"github.com/google/uuid"
)

// InteractionEvent 点赞/订阅状态变化事件，在数据库提交之后发布
type InteractionEvent struct {
	EventID   string `json:"event_id"`
	ActorID   string `json:"actor_id"`
	Kind      string `json:"kind"` // video, comment, tweet, channel
	TargetID  string `json:"target_id"`
	Active    bool   `json:"active"`
	Timestamp int64  `json:"timestamp"`
}

func NewInteractionEvent(actorID, kind, targetID string, active bool) *InteractionEvent {
	return &InteractionEvent{
		EventID:   uuid.NewString(),
		ActorID:   actorID,
		Kind:      kind,
		TargetID:  targetID,
		Active:    active,
		Timestamp: time.Now().UnixMilli(),
	}
}

// RoutingKey is "<kind>.<action>", e.g. video.like or channel.unsubscribe.
func (e *InteractionEvent) RoutingKey() string {
	if e.Kind == "channel" {
		if e.Active {
			return "channel.subscribe"
		}
		return "channel.unsubscribe"
	}
	if e.Active {
		return e.Kind + ".like"
	}
	return e.Kind + ".unlike"
}

// 队列名称
const InteractionEventQueue = "interaction_event_queue"
