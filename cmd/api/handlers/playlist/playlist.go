package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/playlist/service"
	"mytube.com/pkg/errno"
)

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	p, err := service.NewPlaylistService(ctx).CreatePlaylist(pack.Principal(c), req.Name, req.Description)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.CreatedCode, p, "Playlist created successfully")
}

func UserPlaylists(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewPlaylistService(ctx).UserPlaylists(c.Param("userId"), pack.Principal(c), pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "User playlists fetched successfully")
}

func GetPlaylist(ctx context.Context, c *app.RequestContext) {
	p, err := service.NewPlaylistService(ctx).GetPlaylist(c.Param("playlistId"), pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, p, "Playlist fetched successfully")
}

func UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := c.Bind(&req); err != nil {
		pack.SendError(ctx, c, errno.ValidationErr.WithMessage(err.Error()))
		return
	}
	p, err := service.NewPlaylistService(ctx).UpdatePlaylist(c.Param("playlistId"), pack.Principal(c), req.Name, req.Description)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, p, "Playlist updated successfully")
}

func DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	if err := service.NewPlaylistService(ctx).DeletePlaylist(c.Param("playlistId"), pack.Principal(c)); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{}, "Playlist deleted successfully")
}

func AddVideoToPlaylist(ctx context.Context, c *app.RequestContext) {
	p, err := service.NewPlaylistService(ctx).AddVideo(c.Param("playlistId"), c.Param("videoId"), pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, p, "Video added to playlist successfully")
}

func RemoveVideoFromPlaylist(ctx context.Context, c *app.RequestContext) {
	p, err := service.NewPlaylistService(ctx).RemoveVideo(c.Param("playlistId"), c.Param("videoId"), pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, p, "Video removed from playlist successfully")
}
