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

func TestPlaylistLifecycle(t *testing.T) {
	dbtest.Setup(t)
	ctx := context.Background()
	alice, bob := dbtest.User(t, "alice"), dbtest.User(t, "bob")
	v1 := dbtest.Video(t, alice, "one", true)
	v2 := dbtest.Video(t, bob, "two", true)
	draft := dbtest.Video(t, alice, "draft", false)
	svc := NewPlaylistService(ctx)

	if _, err := svc.CreatePlaylist(alice.ID, "mix", ""); errno.ConvertErr(err).ErrMsg != "Name and description are required" {
		t.Errorf("missing description = %v", err)
	}
	pl, err := svc.CreatePlaylist(alice.ID, "mix", "my mix")
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{v2.ID, v1.ID, draft.ID} {
		if _, err := svc.AddVideo(pl.ID, id, alice.ID); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	t.Run("owner sees insertion order including own draft", func(t *testing.T) {
		row, err := svc.GetPlaylist(pl.ID, alice.ID)
		if err != nil {
			t.Fatal(err)
		}
		if row.VideosCount != 3 || len(row.Videos) != 3 || row.Videos[0].ID != v2.ID || row.Videos[2].ID != draft.ID {
			t.Errorf("playlist = %+v", row)
		}
		if row.Videos[0].Owner.Username != "bob" || row.Owner.Username != "alice" {
			t.Errorf("owners = %+v / %+v", row.Videos[0].Owner, row.Owner)
		}
	})

	t.Run("others never see the draft", func(t *testing.T) {
		row, err := svc.GetPlaylist(pl.ID, bob.ID)
		if err != nil {
			t.Fatal(err)
		}
		if row.VideosCount != 2 || len(row.Videos) != 2 {
			t.Errorf("playlist for bob = %d/%d videos", row.VideosCount, len(row.Videos))
		}
		page, err := svc.UserPlaylists(alice.ID, "", paginate.Params{Page: 1, Limit: 10})
		if err != nil {
			t.Fatal(err)
		}
		if page.TotalItems != 1 || len(page.Items[0].Videos) != 2 {
			t.Errorf("anonymous list = %+v", page)
		}
	})

	t.Run("entry errors", func(t *testing.T) {
		tests := []struct {
			name      string
			add       bool
			playlist  string
			video     string
			principal string
			want      error
			msg       string
		}{
			{"bad ids", true, "x", v1.ID, alice.ID, errno.ValidationErr, "Invalid playlist or video id"},
			{"duplicate", true, pl.ID, v1.ID, alice.ID, errno.ValidationErr, "Video already in playlist"},
			{"not owner", true, pl.ID, v1.ID, bob.ID, errno.ForbiddenErr, "You are not authorized to modify this playlist"},
			{"missing video", true, pl.ID, uuid.NewString(), alice.ID, errno.NotFoundErr, "Video not found"},
			{"missing playlist", false, uuid.NewString(), v1.ID, alice.ID, errno.NotFoundErr, "Playlist not found"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var err error
				if tt.add {
					_, err = svc.AddVideo(tt.playlist, tt.video, tt.principal)
				} else {
					_, err = svc.RemoveVideo(tt.playlist, tt.video, tt.principal)
				}
				if !errors.Is(err, tt.want) || errno.ConvertErr(err).ErrMsg != tt.msg {
					t.Errorf("err = %v", err)
				}
			})
		}
	})

	row, err := svc.RemoveVideo(pl.ID, v2.ID, alice.ID)
	if err != nil || len(row.Videos) != 2 || row.Videos[0].ID != v1.ID {
		t.Fatalf("after remove = %+v, %v", row, err)
	}
	if _, err := svc.RemoveVideo(pl.ID, v2.ID, alice.ID); errno.ConvertErr(err).ErrMsg != "Video not in playlist" {
		t.Errorf("remove twice = %v", err)
	}

	if _, err := svc.UpdatePlaylist(pl.ID, alice.ID, "", ""); !errors.Is(err, errno.ValidationErr) {
		t.Errorf("empty update = %v", err)
	}
	if upd, err := svc.UpdatePlaylist(pl.ID, alice.ID, "renamed", ""); err != nil || upd.Name != "renamed" || upd.Description != "my mix" {
		t.Errorf("update = %+v, %v", upd, err)
	}
	if err := svc.DeletePlaylist(pl.ID, bob.ID); !errors.Is(err, errno.ForbiddenErr) {
		t.Errorf("delete by stranger = %v", err)
	}
	if err := svc.DeletePlaylist(pl.ID, alice.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetPlaylist(pl.ID, alice.ID); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("get deleted = %v", err)
	}
}
