package guard

import (
	"context"
	"errors"
	"testing"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
)

func TestAssertOwner(t *testing.T) {
	video := &model.Video{ID: "v1", OwnerID: "alice"}
	tests := []struct {
		name      string
		principal string
		want      error
	}{
		{"owner", "alice", nil},
		{"third party", "mallory", errno.ForbiddenErr},
		{"anonymous", "", errno.AuthenticationErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertOwner(video, tt.principal)
			if tt.want == nil && err != nil || tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("AssertOwner() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAssertCommentRemovable(t *testing.T) {
	comment := &model.Comment{ID: "c1", VideoID: "v1", OwnerID: "bob"}
	videoOwners := map[string]string{"v1": "alice"}
	var lookups int
	lookup := func(_ context.Context, videoID string) (string, error) {
		lookups++
		owner, ok := videoOwners[videoID]
		if !ok {
			return "", errno.NotFoundErr
		}
		return owner, nil
	}

	tests := []struct {
		name        string
		comment     *model.Comment
		principal   string
		want        error
		wantLookups int
	}{
		{"comment owner", comment, "bob", nil, 0},
		{"video owner", comment, "alice", nil, 1},
		{"third party", comment, "mallory", errno.ForbiddenErr, 1},
		{"parent video gone", &model.Comment{ID: "c2", VideoID: "gone", OwnerID: "bob"}, "alice", errno.ForbiddenErr, 1},
		{"anonymous", comment, "", errno.AuthenticationErr, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookups = 0
			err := AssertCommentRemovable(context.Background(), tt.comment, tt.principal, lookup)
			if tt.want == nil && err != nil || tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("AssertCommentRemovable() = %v, want %v", err, tt.want)
			}
			if lookups != tt.wantLookups {
				t.Errorf("video owner looked up %d times, want %d", lookups, tt.wantLookups)
			}
		})
	}
}

func TestAssertCommentRemovablePropagatesLookupFailure(t *testing.T) {
	boom := errors.New("db down")
	err := AssertCommentRemovable(context.Background(), &model.Comment{VideoID: "v", OwnerID: "bob"}, "alice",
		func(context.Context, string) (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestExplain(t *testing.T) {
	err := Explain(AssertOwner(&model.Video{OwnerID: "alice"}, "bob"), "You are not authorized to update this video")
	if !errors.Is(err, errno.ForbiddenErr) || errno.ConvertErr(err).ErrMsg != "You are not authorized to update this video" {
		t.Errorf("Explain(forbidden) = %v", err)
	}
	if err := Explain(errno.AuthenticationErr, "x"); errno.ConvertErr(err).ErrMsg == "x" {
		t.Errorf("Explain rewrote a non-forbidden error")
	}
	if Explain(nil, "x") != nil {
		t.Error("Explain(nil) != nil")
	}
}
