package service

import (
	"context"

	"github.com/pkg/errors"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/mq"
	"mytube.com/pkg/toggle"
	"mytube.com/pkg/utils"
)

type RelationService struct {
	ctx      context.Context
	producer mq.MessageProducer
}

func NewRelationService(ctx context.Context, producer mq.MessageProducer) *RelationService {
	return &RelationService{ctx: ctx, producer: producer}
}

// ToggleSubscription subscribes the principal to the channel or cancels the
// subscription. Subscribing to oneself is rejected before any lookup.
func (service *RelationService) ToggleSubscription(principalID, channelID string) (toggle.Result, error) {
	if err := utils.CheckID(channelID, "channel"); err != nil {
		return toggle.Result{}, err
	}
	key := toggle.Key{ActorID: principalID, Kind: toggle.KindChannel, TargetID: channelID}
	if err := toggle.CheckKey(key); err != nil {
		return toggle.Result{}, err
	}

	ok, err := db.Exists[model.User](service.ctx, "id = ?", channelID)
	if err != nil {
		return toggle.Result{}, errors.WithMessage(err, "dao.ChannelExists failed")
	}
	if !ok {
		return toggle.Result{}, errno.NotFoundErr.WithMessage("Channel not found")
	}

	res, err := toggle.Toggle(service.ctx, db.SubscriptionStore{}, key)
	if err != nil {
		return res, err
	}
	mq.Publish(service.ctx, service.producer, mq.NewInteractionEvent(principalID, string(toggle.KindChannel), channelID, res.Active))
	return res, nil
}
