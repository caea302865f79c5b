package aggregate

import (
	"strings"

	"mytube.com/cmd/model"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/utils"
)

// videoSortFields maps the public sortBy values onto video columns.
var videoSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"views":     "views",
	"duration":  "duration_seconds",
	"title":     "title",
}

const DefaultSortBy = "createdAt"

var (
	videoColumns   = Cols("id", "title", "description", "video_url", "thumbnail_url", "duration_seconds", "views", "is_published", "created_at", "updated_at")
	commentColumns = Cols("id", "video_id", "content", "created_at", "updated_at")
	tweetColumns   = Cols("id", "content", "created_at", "updated_at")
)

// ownerJoin is the one owner lookup every entity read goes through.
func ownerJoin(localField, as string) JoinOwner {
	return JoinOwner{LocalField: localField, As: as}
}

func newestFirst() Sort {
	return Sort{Keys: []SortKey{{Field: "created_at", Desc: true}, {Field: "id"}}}
}

// ParseSort resolves sortBy/sortType query values. Empty values fall back
// to createdAt descending; anything outside the whitelist is rejected.
func ParseSort(sortBy, sortType string) (SortKey, error) {
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	col, ok := videoSortFields[sortBy]
	if !ok {
		return SortKey{}, errno.ValidationErr.WithMessage("Invalid sort field: " + sortBy)
	}
	switch strings.ToLower(sortType) {
	case "", "desc":
		return SortKey{Field: col, Desc: true}, nil
	case "asc":
		return SortKey{Field: col}, nil
	}
	return SortKey{}, errno.ValidationErr.WithMessage("Invalid sort type: " + sortType)
}

// VideoQuery is the filter set of the public video list.
type VideoQuery struct {
	Search   string
	OwnerID  string
	SortBy   string
	SortType string
	ViewerID string
}

func Videos(q VideoQuery) (Pipeline, error) {
	if err := utils.CheckOptionalID(q.OwnerID, "user"); err != nil {
		return Pipeline{}, err
	}
	if err := utils.CheckOptionalID(q.ViewerID, "viewer"); err != nil {
		return Pipeline{}, err
	}
	key, err := ParseSort(q.SortBy, q.SortType)
	if err != nil {
		return Pipeline{}, err
	}

	var stages []Stage
	if text := strings.TrimSpace(q.Search); text != "" {
		stages = append(stages, Search{Text: text, Fields: []string{"title", "description"}})
	}
	if q.OwnerID != "" {
		stages = append(stages, Match{Field: "owner_id", Value: q.OwnerID})
	}
	stages = append(stages,
		Visibility{ViewerID: q.ViewerID},
		ownerJoin("owner_id", "owner"),
		JoinLikes{Kind: model.LikeKindVideo, ViewerID: q.ViewerID},
		Sort{Keys: []SortKey{key, {Field: "id"}}},
		Project{Columns: videoColumns},
	)
	return Pipeline{Collection: VideoCollection, Stages: stages}, nil
}

func VideoByID(videoID, viewerID string) (Pipeline, error) {
	if err := utils.CheckID(videoID, "video"); err != nil {
		return Pipeline{}, err
	}
	if err := utils.CheckOptionalID(viewerID, "viewer"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: VideoCollection, Stages: []Stage{
		Match{Field: "id", Value: videoID},
		Visibility{ViewerID: viewerID},
		ownerJoin("owner_id", "owner"),
		JoinLikes{Kind: model.LikeKindVideo, ViewerID: viewerID},
		Project{Columns: videoColumns},
	}}, nil
}

// ChannelVideos is the owner's dashboard listing: no visibility stage, so
// unpublished videos are included. Callers must pass the authenticated owner.
func ChannelVideos(ownerID string) (Pipeline, error) {
	if err := utils.CheckID(ownerID, "channel"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: VideoCollection, Stages: []Stage{
		Match{Field: "owner_id", Value: ownerID},
		JoinLikes{Kind: model.LikeKindVideo},
		newestFirst(),
		Project{Columns: Cols("id", "title", "description", "thumbnail_url", "duration_seconds", "views", "is_published", "created_at")},
	}}, nil
}

// LikedVideos lists the published videos userID has liked.
func LikedVideos(userID string) (Pipeline, error) {
	if err := utils.CheckID(userID, "user"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: VideoCollection, Stages: []Stage{
		LikedBy{UserID: userID, Kind: model.LikeKindVideo},
		// the liker is not the owner here: published only
		Visibility{},
		ownerJoin("owner_id", "owner"),
		JoinLikes{Kind: model.LikeKindVideo, ViewerID: userID},
		newestFirst(),
		Project{Columns: videoColumns},
	}}, nil
}

// WatchHistory lists the user's watched videos, most recent view first.
func WatchHistory(userID string) (Pipeline, error) {
	if err := utils.CheckID(userID, "user"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: VideoCollection, Stages: []Stage{
		WatchedBy{UserID: userID},
		Visibility{ViewerID: userID},
		ownerJoin("owner_id", "owner"),
		JoinLikes{Kind: model.LikeKindVideo, ViewerID: userID},
		Sort{Keys: []SortKey{{Field: "watched_at", Desc: true}, {Field: "id"}}},
		Project{Columns: videoColumns},
	}}, nil
}

// PlaylistVideos is the nested video lookup of playlist reads, in playlist order.
// Ids are trusted: they come from stored rows.
func PlaylistVideos(playlistIDs []string, viewerID string) Pipeline {
	return Pipeline{Collection: VideoCollection, Stages: []Stage{
		InPlaylist{PlaylistIDs: playlistIDs},
		Visibility{ViewerID: viewerID},
		ownerJoin("owner_id", "owner"),
		JoinLikes{Kind: model.LikeKindVideo, ViewerID: viewerID},
		Sort{Keys: []SortKey{{Field: "position"}, {Field: "id"}}},
		Project{Columns: videoColumns},
	}}
}

// LatestVideos is the nested lookup of subscribed channels: at most one
// published video per channel.
func LatestVideos(channelIDs []string) Pipeline {
	return Pipeline{Collection: VideoCollection, Stages: []Stage{
		MatchIn{Field: "owner_id", Values: channelIDs},
		LatestPerOwner{},
		Visibility{},
		ownerJoin("owner_id", "owner"),
		newestFirst(),
		Project{Columns: videoColumns},
	}}
}

func Comments(videoID, viewerID string) (Pipeline, error) {
	if err := utils.CheckID(videoID, "video"); err != nil {
		return Pipeline{}, err
	}
	if err := utils.CheckOptionalID(viewerID, "viewer"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: CommentCollection, Stages: []Stage{
		Match{Field: "video_id", Value: videoID},
		ownerJoin("owner_id", "owner"),
		JoinLikes{Kind: model.LikeKindComment, ViewerID: viewerID},
		newestFirst(),
		Project{Columns: commentColumns},
	}}, nil
}

func Tweets(ownerID, viewerID string) (Pipeline, error) {
	if err := utils.CheckID(ownerID, "user"); err != nil {
		return Pipeline{}, err
	}
	if err := utils.CheckOptionalID(viewerID, "viewer"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: TweetCollection, Stages: []Stage{
		Match{Field: "owner_id", Value: ownerID},
		ownerJoin("owner_id", "owner"),
		JoinLikes{Kind: model.LikeKindTweet, ViewerID: viewerID},
		newestFirst(),
		Project{Columns: tweetColumns},
	}}, nil
}

func Subscribers(channelID string) (Pipeline, error) {
	if err := utils.CheckID(channelID, "channel"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: SubscriptionCollection, Stages: []Stage{
		Match{Field: "channel_id", Value: channelID},
		ownerJoin("subscriber_id", "subscriber"),
		newestFirst(),
		Project{Columns: []Column{{Name: "created_at", As: "subscribed_at"}}},
	}}, nil
}

// SubscribedChannels lists the channels subscriberID follows. Each
// channel's latest video is stitched in from LatestVideos.
func SubscribedChannels(subscriberID string) (Pipeline, error) {
	if err := utils.CheckID(subscriberID, "subscriber"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: SubscriptionCollection, Stages: []Stage{
		Match{Field: "subscriber_id", Value: subscriberID},
		ownerJoin("channel_id", "channel"),
		newestFirst(),
		Project{Columns: []Column{{Name: "created_at", As: "subscribed_at"}}},
	}}, nil
}

func Playlists(ownerID, viewerID string) (Pipeline, error) {
	if err := utils.CheckID(ownerID, "user"); err != nil {
		return Pipeline{}, err
	}
	if err := utils.CheckOptionalID(viewerID, "viewer"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: PlaylistCollection, Stages: []Stage{
		Match{Field: "owner_id", Value: ownerID},
		ownerJoin("owner_id", "owner"),
		JoinPlaylistVideos{ViewerID: viewerID},
		newestFirst(),
		Project{Columns: Cols("id", "name", "description", "created_at", "updated_at")},
	}}, nil
}

func PlaylistByID(playlistID, viewerID string) (Pipeline, error) {
	if err := utils.CheckID(playlistID, "playlist"); err != nil {
		return Pipeline{}, err
	}
	if err := utils.CheckOptionalID(viewerID, "viewer"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: PlaylistCollection, Stages: []Stage{
		Match{Field: "id", Value: playlistID},
		ownerJoin("owner_id", "owner"),
		JoinPlaylistVideos{ViewerID: viewerID},
		Project{Columns: Cols("id", "name", "description", "created_at", "updated_at")},
	}}, nil
}

// ChannelProfile looks a user up by username with live subscription figures.
func ChannelProfile(username, viewerID string) (Pipeline, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return Pipeline{}, errno.ValidationErr.WithMessage("Username is missing")
	}
	if err := utils.CheckOptionalID(viewerID, "viewer"); err != nil {
		return Pipeline{}, err
	}
	return Pipeline{Collection: UserCollection, Stages: []Stage{
		Match{Field: "username", Value: username},
		JoinSubscribers{ChannelField: "id", ViewerID: viewerID},
		Project{Columns: Cols("id", "username", "email", "full_name", "avatar_url", "cover_image_url", "created_at")},
	}}, nil
}
