package handlers

import (
	"mytube.com/pkg/mq"
)

var producer mq.MessageProducer

// Init sets the producer like toggles publish to; nil disables events.
func Init(p mq.MessageProducer) {
	producer = p
}

type ContentParam struct {
	Content string `json:"content" form:"content"`
}
