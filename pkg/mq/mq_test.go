package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestRoutingKey(t *testing.T) {
	tests := []struct {
		kind   string
		active bool
		want   string
	}{
		{"video", true, "video.like"},
		{"comment", false, "comment.unlike"},
		{"tweet", true, "tweet.like"},
		{"channel", true, "channel.subscribe"},
		{"channel", false, "channel.unsubscribe"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewInteractionEvent("a", tt.kind, "b", tt.active).RoutingKey(); got != tt.want {
				t.Errorf("RoutingKey = %s", got)
			}
		})
	}
}

type failingProducer struct{ calls int }

func (f *failingProducer) PublishInteraction(context.Context, *InteractionEvent) error {
	f.calls++
	return errors.New("broker down")
}

func TestPublishIsBestEffort(t *testing.T) {
	Publish(context.Background(), nil, NewInteractionEvent("a", "video", "b", true))

	f := &failingProducer{}
	Publish(context.Background(), f, NewInteractionEvent("a", "video", "b", true))
	if f.calls != 1 {
		t.Errorf("calls = %d", f.calls)
	}
}

type recordingAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (r *recordingAck) Ack(bool) error { r.acked = true; return nil }

func (r *recordingAck) Nack(_, requeue bool) error {
	r.nacked, r.requeue = true, requeue
	return nil
}

func TestDispatch(t *testing.T) {
	valid, err := json.Marshal(NewInteractionEvent("a", "video", "b", true))
	if err != nil {
		t.Fatal(err)
	}
	ok := HandlerFunc(func(context.Context, *InteractionEvent) error { return nil })
	failing := HandlerFunc(func(context.Context, *InteractionEvent) error { return errors.New("db down") })

	tests := []struct {
		name    string
		body    []byte
		handler InteractionHandler
		want    recordingAck
	}{
		{"handled", valid, ok, recordingAck{acked: true}},
		{"handler failure requeues", valid, failing, recordingAck{nacked: true, requeue: true}},
		{"garbage is dropped", []byte("{"), ok, recordingAck{nacked: true}},
		{"missing event id is dropped", []byte(`{"kind":"video"}`), ok, recordingAck{nacked: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got recordingAck
			dispatch(context.Background(), tt.body, &got, tt.handler)
			if got != tt.want {
				t.Errorf("ack = %+v, want %+v", got, tt.want)
			}
		})
	}
}
