package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"mytube.com/dal/dbtest"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/paginate"
)

var firstPage = paginate.Params{Page: 1, Limit: 10}

func TestToggleSubscription(t *testing.T) {
	dbtest.Setup(t)
	ctx := context.Background()
	alice, bob := dbtest.User(t, "alice"), dbtest.User(t, "bob")
	svc := NewRelationService(ctx, nil)

	tests := []struct {
		name      string
		principal string
		channel   string
		want      error
		msg       string
	}{
		{"malformed channel", bob.ID, "abc", errno.ValidationErr, "Invalid channel id"},
		{"self", bob.ID, bob.ID, errno.ValidationErr, "You cannot subscribe to yourself"},
		{"unknown channel", bob.ID, uuid.NewString(), errno.NotFoundErr, "Channel not found"},
		{"anonymous", "", alice.ID, errno.AuthenticationErr, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ToggleSubscription(tt.principal, tt.channel)
			if !errors.Is(err, tt.want) || tt.msg != "" && errno.ConvertErr(err).ErrMsg != tt.msg {
				t.Errorf("err = %v", err)
			}
		})
	}

	for i, want := range []bool{true, false, true} {
		res, err := svc.ToggleSubscription(bob.ID, alice.ID)
		if err != nil || res.Active != want {
			t.Fatalf("toggle %d = %+v, %v", i, res, err)
		}
	}

	page, err := NewSubscriptionListService(ctx).Subscribers(alice.ID, firstPage)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 1 || page.Items[0].Subscriber.Username != "bob" {
		t.Errorf("subscribers = %+v", page)
	}
}

func TestSubscribedChannelsCarryLatestVideo(t *testing.T) {
	dbtest.Setup(t)
	ctx := context.Background()
	alice, bob, carol := dbtest.User(t, "alice"), dbtest.User(t, "bob"), dbtest.User(t, "carol")
	newest := dbtest.Video(t, alice, "newest", true)
	dbtest.Video(t, alice, "older", true)
	// bob only has a draft, which must not surface
	dbtest.Video(t, bob, "draft", false)

	svc := NewRelationService(ctx, nil)
	for _, ch := range []string{alice.ID, bob.ID} {
		if _, err := svc.ToggleSubscription(carol.ID, ch); err != nil {
			t.Fatal(err)
		}
	}

	page, err := NewSubscriptionListService(ctx).SubscribedChannels(carol.ID, firstPage)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 2 {
		t.Fatalf("channels = %+v", page)
	}
	for _, row := range page.Items {
		switch row.Channel.Username {
		case "alice":
			if row.Channel.LatestVideo == nil || row.Channel.LatestVideo.ID != newest.ID {
				t.Errorf("alice latest = %+v", row.Channel.LatestVideo)
			}
		case "bob":
			if row.Channel.LatestVideo != nil {
				t.Errorf("bob latest = %+v, want none", row.Channel.LatestVideo)
			}
		default:
			t.Errorf("unexpected channel %+v", row.Channel)
		}
	}

	empty, err := NewSubscriptionListService(ctx).SubscribedChannels(alice.ID, firstPage)
	if err != nil || len(empty.Items) != 0 {
		t.Errorf("no subscriptions = %+v, %v", empty, err)
	}
}
