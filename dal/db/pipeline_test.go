package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mytube.com/cmd/model"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/paginate"
)

func TestVideoLikesDerivedPerViewer(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	owner, u, w := seedUser(t, "owner"), seedUser(t, "ulrich"), seedUser(t, "wanda")
	v := seedVideo(t, owner, "v", true, 0)
	seedLike(t, u, model.LikeKindVideo, v.ID)
	seedLike(t, seedUser(t, "x"), model.LikeKindVideo, v.ID)
	seedLike(t, seedUser(t, "y"), model.LikeKindVideo, v.ID)
	// same id under another kind must not count
	seedLike(t, w, model.LikeKindComment, v.ID)

	tests := []struct {
		name      string
		viewer    string
		wantLiked bool
	}{
		{"liker", u.ID, true},
		{"other viewer", w.ID, false},
		{"anonymous", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := aggregate.VideoByID(v.ID, tt.viewer)
			if err != nil {
				t.Fatal(err)
			}
			row, err := RunOne[model.VideoRow](ctx, p, "Video not found")
			if err != nil {
				t.Fatal(err)
			}
			if row.LikesCount != 3 || row.IsLiked != tt.wantLiked {
				t.Errorf("likesCount=%d isLiked=%v, want 3 %v", row.LikesCount, row.IsLiked, tt.wantLiked)
			}
			want := model.OwnerProjection{ID: owner.ID, Username: "owner", FullName: "Owner", AvatarURL: owner.AvatarURL}
			if row.Owner != want {
				t.Errorf("owner = %+v, want %+v", row.Owner, want)
			}
			if row.Title != "v" || !row.CreatedAt.Equal(base) {
				t.Errorf("base fields not projected: %+v", row)
			}
		})
	}
}

func TestPaginateTwelveVideos(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, "owner")
	for i := 0; i < 12; i++ {
		seedVideo(t, owner, fmt.Sprintf("video-%02d", i), true, time.Duration(i)*time.Minute)
	}
	seedVideo(t, owner, "draft", false, time.Hour)

	p, err := aggregate.Videos(aggregate.VideoQuery{})
	if err != nil {
		t.Fatal(err)
	}
	page, err := paginate.Paginate[model.VideoRow](ctx, PipelineRunner{}, p, paginate.ParseParams("2", "5"))
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 5 || page.TotalItems != 12 || page.TotalPages != 3 || !page.HasNextPage || !page.HasPrevPage {
		t.Fatalf("page = %+v", page)
	}
	// newest first: page 2 holds video-05 .. video-09
	if page.Items[0].Title != "video-05" || page.Items[4].Title != "video-09" {
		t.Errorf("items %s .. %s", page.Items[0].Title, page.Items[4].Title)
	}

	again, err := paginate.Paginate[model.VideoRow](ctx, PipelineRunner{}, p, paginate.ParseParams("2", "5"))
	if err != nil {
		t.Fatal(err)
	}
	for i := range page.Items {
		if page.Items[i].ID != again.Items[i].ID {
			t.Fatalf("order changed between runs at %d", i)
		}
	}
}

func TestSortTieBreaksOnID(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner")
	for i := 0; i < 6; i++ {
		seedVideo(t, owner, fmt.Sprintf("same-%d", i), true, 0)
	}
	p, err := aggregate.Videos(aggregate.VideoQuery{})
	if err != nil {
		t.Fatal(err)
	}
	var rows []model.VideoRow
	if err := RunPipeline(context.Background(), p, Window{}, &rows); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].ID > rows[i].ID {
			t.Fatalf("equal timestamps not ordered by id: %s > %s", rows[i-1].ID, rows[i].ID)
		}
	}
}

func TestUnpublishedVisibleToOwnerOnly(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	owner, other := seedUser(t, "owner"), seedUser(t, "other")
	seedVideo(t, owner, "public", true, 0)
	draft := seedVideo(t, owner, "draft", false, time.Minute)

	titles := func(p aggregate.Pipeline) map[string]bool {
		t.Helper()
		var rows []model.VideoRow
		if err := RunPipeline(ctx, p, Window{}, &rows); err != nil {
			t.Fatal(err)
		}
		out := map[string]bool{}
		for _, r := range rows {
			out[r.Title] = true
		}
		return out
	}

	for _, viewer := range []string{"", other.ID} {
		p, _ := aggregate.Videos(aggregate.VideoQuery{ViewerID: viewer})
		if got := titles(p); got["draft"] || !got["public"] {
			t.Errorf("viewer %q sees %v", viewer, got)
		}
		p, _ = aggregate.VideoByID(draft.ID, viewer)
		if _, err := RunOne[model.VideoRow](ctx, p, "Video not found"); !errors.Is(err, errno.NotFoundErr) {
			t.Errorf("viewer %q fetched the draft: %v", viewer, err)
		}
	}

	var dash []model.DashboardVideoRow
	p, _ := aggregate.ChannelVideos(owner.ID)
	if err := RunPipeline(ctx, p, Window{}, &dash); err != nil {
		t.Fatal(err)
	}
	if len(dash) != 2 || dash[1].Title != "draft" || dash[1].IsPublished {
		t.Errorf("dashboard rows = %+v", dash)
	}
}

func TestSearchIsCaseInsensitiveAndLiteral(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner")
	seedVideo(t, owner, "Learning GO", true, 0)
	seedVideo(t, owner, "100% rust", true, time.Minute)
	seedVideo(t, owner, "100 rust", true, 2*time.Minute)

	count := func(q string) int64 {
		t.Helper()
		p, err := aggregate.Videos(aggregate.VideoQuery{Search: q})
		if err != nil {
			t.Fatal(err)
		}
		n, err := CountPipeline(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	if n := count("go"); n != 1 {
		t.Errorf("search go = %d", n)
	}
	if n := count("100%"); n != 1 {
		t.Errorf("search 100%% = %d, percent must be literal", n)
	}
	if n := count("ABOUT"); n != 3 {
		t.Errorf("description search = %d", n)
	}
}

func TestLikedVideosAndHistory(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	owner, u := seedUser(t, "owner"), seedUser(t, "u")
	a := seedVideo(t, owner, "a", true, 0)
	b := seedVideo(t, owner, "b", true, time.Minute)
	hidden := seedVideo(t, owner, "hidden", false, 2*time.Minute)
	seedLike(t, u, model.LikeKindVideo, a.ID)
	seedLike(t, u, model.LikeKindVideo, hidden.ID)

	p, _ := aggregate.LikedVideos(u.ID)
	var liked []model.VideoRow
	if err := RunPipeline(ctx, p, Window{}, &liked); err != nil {
		t.Fatal(err)
	}
	if len(liked) != 1 || liked[0].ID != a.ID || !liked[0].IsLiked {
		t.Fatalf("liked = %+v", liked)
	}

	if err := RecordWatch(ctx, u.ID, a.ID, base); err != nil {
		t.Fatal(err)
	}
	if err := RecordWatch(ctx, u.ID, b.ID, base.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	// rewatching moves a to the front without a second row
	if err := RecordWatch(ctx, u.ID, a.ID, base.Add(2*time.Minute)); err != nil {
		t.Fatal(err)
	}
	p, _ = aggregate.WatchHistory(u.ID)
	var history []model.VideoRow
	if err := RunPipeline(ctx, p, Window{}, &history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].ID != a.ID || history[1].ID != b.ID || history[0].WatchedAt == nil {
		t.Fatalf("history = %+v", history)
	}
}

func TestSubscriptionReads(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	alice, bob, carol := seedUser(t, "alice"), seedUser(t, "bob"), seedUser(t, "carol")
	mustCreate(t, &model.Subscription{SubscriberID: alice.ID, ChannelID: bob.ID, CreatedAt: base})
	mustCreate(t, &model.Subscription{SubscriberID: alice.ID, ChannelID: carol.ID, CreatedAt: base.Add(time.Minute)})
	mustCreate(t, &model.Subscription{SubscriberID: carol.ID, ChannelID: bob.ID, CreatedAt: base})
	seedVideo(t, bob, "bob-old", true, time.Hour)
	seedVideo(t, bob, "bob-new", true, time.Minute)
	seedVideo(t, bob, "bob-draft", false, 0)

	p, _ := aggregate.SubscribedChannels(alice.ID)
	var channels []model.ChannelRow
	if err := RunPipeline(ctx, p, Window{}, &channels); err != nil {
		t.Fatal(err)
	}
	if len(channels) != 2 || channels[0].Channel.Username != "carol" || channels[1].Channel.ID != bob.ID {
		t.Fatalf("channels = %+v", channels)
	}

	var latest []model.VideoRow
	if err := RunPipeline(ctx, aggregate.LatestVideos([]string{bob.ID, carol.ID}), Window{}, &latest); err != nil {
		t.Fatal(err)
	}
	if len(latest) != 1 || latest[0].Title != "bob-new" || latest[0].Owner.Username != "bob" {
		t.Fatalf("latest = %+v", latest)
	}

	p, _ = aggregate.Subscribers(bob.ID)
	var subs []model.SubscriberRow
	if err := RunPipeline(ctx, p, Window{}, &subs); err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 || subs[0].Subscriber.FullName == "" || subs[0].SubscribedAt.IsZero() {
		t.Fatalf("subscribers = %+v", subs)
	}

	p, _ = aggregate.ChannelProfile("BOB", alice.ID)
	profile, err := RunOne[model.ChannelProfile](ctx, p, "Channel does not exist")
	if err != nil {
		t.Fatal(err)
	}
	if profile.SubscribersCount != 2 || profile.ChannelsSubscribedToCount != 0 || !profile.IsSubscribed {
		t.Errorf("profile = %+v", profile)
	}
}

func TestPlaylistReads(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, "owner")
	first := seedVideo(t, owner, "first", true, 0)
	second := seedVideo(t, owner, "second", true, time.Hour)
	draft := seedVideo(t, owner, "draft", false, 0)
	pl := mustCreate(t, &model.Playlist{OwnerID: owner.ID, Name: "mix"})
	for _, v := range []*model.Video{second, first, draft} {
		if err := AddPlaylistVideo(ctx, pl.ID, v.ID); err != nil {
			t.Fatal(err)
		}
	}

	p, _ := aggregate.PlaylistByID(pl.ID, "")
	row, err := RunOne[model.PlaylistRow](ctx, p, "Playlist not found")
	if err != nil {
		t.Fatal(err)
	}
	if row.VideosCount != 2 || row.Owner.Username != "owner" {
		t.Errorf("playlist = %+v", row)
	}

	var videos []model.VideoRow
	if err := RunPipeline(ctx, aggregate.PlaylistVideos([]string{pl.ID}, owner.ID), Window{}, &videos); err != nil {
		t.Fatal(err)
	}
	if len(videos) != 3 || videos[0].ID != second.ID || videos[1].ID != first.ID || videos[2].PlaylistID != pl.ID {
		t.Fatalf("owner's playlist videos = %+v", videos)
	}
}
