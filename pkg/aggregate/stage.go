package aggregate

import (
	"fmt"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
)

type Collection string

const (
	UserCollection         Collection = "users"
	VideoCollection        Collection = "videos"
	CommentCollection      Collection = "comments"
	TweetCollection        Collection = "tweets"
	SubscriptionCollection Collection = "subscriptions"
	PlaylistCollection     Collection = "playlists"
)

// baseColumns lists what a stage may filter, sort or project on per collection.
// Credentials are absent on purpose: a pipeline that names them does not validate.
var baseColumns = map[Collection]map[string]bool{
	UserCollection:         set("id", "username", "email", "full_name", "avatar_url", "cover_image_url", "created_at", "updated_at"),
	VideoCollection:        set("id", "owner_id", "title", "description", "video_url", "thumbnail_url", "duration_seconds", "views", "is_published", "created_at", "updated_at"),
	CommentCollection:      set("id", "video_id", "owner_id", "content", "created_at", "updated_at"),
	TweetCollection:        set("id", "owner_id", "content", "created_at", "updated_at"),
	SubscriptionCollection: set("id", "subscriber_id", "channel_id", "created_at"),
	PlaylistCollection:     set("id", "owner_id", "name", "description", "created_at", "updated_at"),
}

func set(cols ...string) map[string]bool {
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}

// Phase orders stages. A valid pipeline never goes back to an earlier phase.
type Phase int

const (
	PhaseFilter Phase = iota
	PhaseVisibility
	PhaseJoin
	PhaseSort
	PhaseProject
)

func (p Phase) String() string {
	switch p {
	case PhaseFilter:
		return "filter"
	case PhaseVisibility:
		return "visibility"
	case PhaseJoin:
		return "join"
	case PhaseSort:
		return "sort"
	case PhaseProject:
		return "project"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type Stage interface {
	Phase() Phase
}

// Match keeps rows whose column equals Value.
type Match struct {
	Field string
	Value any
}

type MatchIn struct {
	Field  string
	Values []string
}

// Search is a case-insensitive substring match over any of Fields.
type Search struct {
	Text   string
	Fields []string
}

// Visibility hides unpublished videos from everybody but their owner.
// An empty ViewerID is an anonymous viewer.
type Visibility struct {
	ViewerID string
}

// LikedBy keeps targets of Kind liked by UserID.
type LikedBy struct {
	UserID string
	Kind   model.LikeKind
}

// InPlaylist keeps videos that are entries of one of the playlists and
// exposes playlist_id and position.
type InPlaylist struct {
	PlaylistIDs []string
}

// WatchedBy keeps videos in the user's history and exposes watched_at.
type WatchedBy struct {
	UserID string
}

// LatestPerOwner keeps only the newest published video of each owner
// (created_at desc, id asc).
type LatestPerOwner struct{}

// JoinOwner left-joins the user referenced by LocalField and projects the
// owner projection under the As prefix.
type JoinOwner struct {
	LocalField string
	As         string
}

// JoinLikes derives likes_count and is_liked. is_liked is false for an anonymous viewer.
type JoinLikes struct {
	Kind     model.LikeKind
	ViewerID string
}

// JoinSubscribers derives subscribers_count, channels_subscribed_to_count
// and is_subscribed for the user referenced by ChannelField.
type JoinSubscribers struct {
	ChannelField string
	ViewerID     string
}

// JoinPlaylistVideos derives videos_count over entries the viewer may see.
type JoinPlaylistVideos struct {
	ViewerID string
}

type SortKey struct {
	Field string
	Desc  bool
}

// Sort orders by Keys; builders always end with id ascending.
type Sort struct {
	Keys []SortKey
}

type Column struct {
	Name string
	As   string
}

// Project selects base columns. Joined columns are selected by their join stage.
type Project struct {
	Columns []Column
}

func (Match) Phase() Phase              { return PhaseFilter }
func (MatchIn) Phase() Phase            { return PhaseFilter }
func (Search) Phase() Phase             { return PhaseFilter }
func (LikedBy) Phase() Phase            { return PhaseFilter }
func (InPlaylist) Phase() Phase         { return PhaseFilter }
func (WatchedBy) Phase() Phase          { return PhaseFilter }
func (LatestPerOwner) Phase() Phase     { return PhaseFilter }
func (Visibility) Phase() Phase         { return PhaseVisibility }
func (JoinOwner) Phase() Phase          { return PhaseJoin }
func (JoinLikes) Phase() Phase          { return PhaseJoin }
func (JoinSubscribers) Phase() Phase    { return PhaseJoin }
func (JoinPlaylistVideos) Phase() Phase { return PhaseJoin }
func (Sort) Phase() Phase               { return PhaseSort }
func (Project) Phase() Phase            { return PhaseProject }

// Pipeline is plain data; dal/db compiles it into SQL.
type Pipeline struct {
	Collection Collection
	Stages     []Stage
}

// CountStages is the part of the pipeline a total is computed over:
// filters and visibility, never joins, sort or projection.
func (p Pipeline) CountStages() []Stage {
	out := make([]Stage, 0, len(p.Stages))
	for _, s := range p.Stages {
		if s.Phase() <= PhaseVisibility {
			out = append(out, s)
		}
	}
	return out
}

// ForCount returns the pipeline reduced to its CountStages.
func (p Pipeline) ForCount() Pipeline {
	return Pipeline{Collection: p.Collection, Stages: p.CountStages()}
}

// Validate checks stage order and that every named column exists on the collection.
func (p Pipeline) Validate() error {
	cols, ok := baseColumns[p.Collection]
	if !ok {
		return errno.ServiceErr.WithMessage(fmt.Sprintf("unknown collection %q", p.Collection))
	}
	check := func(name string) error {
		if !cols[name] {
			return errno.ValidationErr.WithMessage(fmt.Sprintf("Unknown field %q", name))
		}
		return nil
	}
	last := PhaseFilter
	for i, s := range p.Stages {
		if s.Phase() < last {
			return errno.ServiceErr.WithMessage(fmt.Sprintf("stage %d (%T) in %s phase after %s phase", i, s, s.Phase(), last))
		}
		last = s.Phase()

		var err error
		switch st := s.(type) {
		case Match:
			err = check(st.Field)
		case MatchIn:
			err = check(st.Field)
		case Search:
			for _, f := range st.Fields {
				if err = check(f); err != nil {
					break
				}
			}
		case JoinOwner:
			err = check(st.LocalField)
		case JoinSubscribers:
			err = check(st.ChannelField)
		case Project:
			for _, c := range st.Columns {
				if err = check(c.Name); err != nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Cols projects columns under their own names.
func Cols(names ...string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = Column{Name: n}
	}
	return out
}
