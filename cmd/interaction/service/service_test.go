package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"mytube.com/cmd/model"
	"mytube.com/dal/db"
	"mytube.com/dal/dbtest"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/mq"
	"mytube.com/pkg/paginate"
	"mytube.com/pkg/toggle"
)

type recordingProducer struct {
	mu     sync.Mutex
	events []*mq.InteractionEvent
}

func (r *recordingProducer) PublishInteraction(_ context.Context, e *mq.InteractionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

var firstPage = paginate.Params{Page: 1, Limit: 10}

func TestLikeAction(t *testing.T) {
	dbtest.Setup(t)
	ctx := context.Background()
	alice, bob := dbtest.User(t, "alice"), dbtest.User(t, "bob")
	v := dbtest.Video(t, alice, "clip", true)
	rec := &recordingProducer{}
	svc := NewLikeActionService(ctx, rec)

	for i, want := range []bool{true, false, true} {
		res, err := svc.LikeAction(bob.ID, toggle.KindVideo, v.ID)
		if err != nil {
			t.Fatal(err)
		}
		if res.Active != want {
			t.Fatalf("toggle %d: active = %v", i, res.Active)
		}
	}
	if len(rec.events) != 3 || rec.events[1].Active || rec.events[2].RoutingKey() != "video.like" {
		t.Errorf("events = %+v", rec.events)
	}

	page, err := svc.LikedVideos(bob.ID, firstPage)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 1 || !page.Items[0].IsLiked || page.Items[0].LikesCount != 1 {
		t.Errorf("liked videos = %+v", page)
	}

	t.Run("rejections", func(t *testing.T) {
		draft := dbtest.Video(t, alice, "draft", false)
		tests := []struct {
			name   string
			actor  string
			kind   toggle.Kind
			target string
			want   error
		}{
			{"malformed id", bob.ID, toggle.KindVideo, "x", errno.ValidationErr},
			{"anonymous", "", toggle.KindVideo, v.ID, errno.AuthenticationErr},
			{"missing comment", bob.ID, toggle.KindComment, uuid.NewString(), errno.NotFoundErr},
			{"missing tweet", bob.ID, toggle.KindTweet, uuid.NewString(), errno.NotFoundErr},
			{"unpublished video", bob.ID, toggle.KindVideo, draft.ID, errno.NotFoundErr},
			{"channel is not a like", bob.ID, toggle.KindChannel, alice.ID, errno.ValidationErr},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := svc.LikeAction(tt.actor, tt.kind, tt.target); !errors.Is(err, tt.want) {
					t.Errorf("err = %v, want %v", err, tt.want)
				}
			})
		}
		if _, err := svc.LikeAction(alice.ID, toggle.KindVideo, draft.ID); err != nil {
			t.Errorf("owner liking own draft: %v", err)
		}
	})
}

func TestComments(t *testing.T) {
	dbtest.Setup(t)
	ctx := context.Background()
	alice, bob, eve := dbtest.User(t, "alice"), dbtest.User(t, "bob"), dbtest.User(t, "eve")
	v := dbtest.Video(t, alice, "clip", true)
	svc := NewCommentService(ctx)

	if _, err := svc.AddComment(v.ID, bob.ID, "   "); errno.ConvertErr(err).ErrMsg != "Content is required" {
		t.Errorf("blank comment = %v", err)
	}
	if _, err := svc.AddComment(uuid.NewString(), bob.ID, "hi"); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("comment on missing video = %v", err)
	}

	c1, err := svc.AddComment(v.ID, bob.ID, "first")
	if err != nil {
		t.Fatal(err)
	}
	c2, err := svc.AddComment(v.ID, eve.ID, "second")
	if err != nil {
		t.Fatal(err)
	}

	page, err := svc.CommentList(v.ID, bob.ID, firstPage)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 2 || page.Items[0].Owner.Username == "" {
		t.Errorf("page = %+v", page)
	}
	if _, err := svc.CommentList(uuid.NewString(), "", firstPage); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("comments of missing video = %v", err)
	}

	if _, err := svc.UpdateComment(c1.ID, eve.ID, "hijack"); !errors.Is(err, errno.ForbiddenErr) {
		t.Errorf("update by stranger = %v", err)
	}
	if got, err := svc.UpdateComment(c1.ID, bob.ID, "edited"); err != nil || got.Content != "edited" {
		t.Errorf("update = %+v, %v", got, err)
	}

	if err := svc.DeleteComment(c1.ID, eve.ID); errno.ConvertErr(err).ErrMsg != "You are not authorized to delete this comment" {
		t.Errorf("delete by stranger = %v", err)
	}
	// the video owner may moderate comments on it
	if err := svc.DeleteComment(c1.ID, alice.ID); err != nil {
		t.Errorf("delete by video owner = %v", err)
	}
	if err := svc.DeleteComment(c2.ID, eve.ID); err != nil {
		t.Errorf("delete by author = %v", err)
	}
	if err := svc.DeleteComment(c2.ID, eve.ID); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("second delete = %v", err)
	}
}

func TestDeleteCommentDropsItsLikes(t *testing.T) {
	dbtest.Setup(t)
	ctx := context.Background()
	alice, bob := dbtest.User(t, "alice"), dbtest.User(t, "bob")
	v := dbtest.Video(t, alice, "clip", true)
	c, err := NewCommentService(ctx).AddComment(v.ID, bob.ID, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewLikeActionService(ctx, nil).LikeAction(alice.ID, toggle.KindComment, c.ID); err != nil {
		t.Fatal(err)
	}
	if err := NewCommentService(ctx).DeleteComment(c.ID, bob.ID); err != nil {
		t.Fatal(err)
	}
	var n int64
	db.DB.Model(&model.Like{}).Where("target_id = ?", c.ID).Count(&n)
	if n != 0 {
		t.Errorf("%d likes left on deleted comment", n)
	}
}

func TestTweets(t *testing.T) {
	dbtest.Setup(t)
	ctx := context.Background()
	alice, bob := dbtest.User(t, "alice"), dbtest.User(t, "bob")
	svc := NewTweetService(ctx)

	if _, err := svc.CreateTweet(alice.ID, ""); !errors.Is(err, errno.ValidationErr) {
		t.Errorf("empty tweet = %v", err)
	}
	tw, err := svc.CreateTweet(alice.ID, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewLikeActionService(ctx, nil).LikeAction(bob.ID, toggle.KindTweet, tw.ID); err != nil {
		t.Fatal(err)
	}

	page, err := svc.UserTweets(alice.ID, bob.ID, firstPage)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || !page.Items[0].IsLiked || page.Items[0].LikesCount != 1 {
		t.Errorf("tweets = %+v", page.Items)
	}
	empty, err := svc.UserTweets(uuid.NewString(), "", firstPage)
	if err != nil || empty.TotalItems != 0 || empty.Items == nil {
		t.Errorf("unknown user = %+v, %v", empty, err)
	}

	if _, err := svc.UpdateTweet(tw.ID, bob.ID, "x"); errno.ConvertErr(err).ErrMsg != "You are not authorized to update this tweet" {
		t.Errorf("update by stranger = %v", err)
	}
	if err := svc.DeleteTweet(tw.ID, bob.ID); !errors.Is(err, errno.ForbiddenErr) {
		t.Errorf("delete by stranger = %v", err)
	}
	if err := svc.DeleteTweet(tw.ID, alice.ID); err != nil {
		t.Fatal(err)
	}
	var n int64
	db.DB.Model(&model.Like{}).Where("target_id = ?", tw.ID).Count(&n)
	if n != 0 {
		t.Errorf("%d likes left on deleted tweet", n)
	}
}
