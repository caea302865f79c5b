package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/video/service"
	"mytube.com/pkg/aggregate"
	"mytube.com/pkg/errno"
)

// GetAllVideos query: query, userId, sortBy, sortType, page, limit
func GetAllVideos(ctx context.Context, c *app.RequestContext) {
	page, err := service.NewVideoListService(ctx).VideoList(aggregate.VideoQuery{
		Search:   c.Query("query"),
		OwnerID:  c.Query("userId"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		ViewerID: pack.Principal(c),
	}, pack.PageParams(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, page, "Videos fetched successfully")
}

func PublishVideo(ctx context.Context, c *app.RequestContext) {
	video, err := pack.SaveFormFile(c, "videoFile")
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	thumb, err := pack.SaveFormFile(c, "thumbnail")
	defer pack.RemoveTemp(ctx, video, thumb)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	v, err := service.NewVideoUploadService(ctx).Publish(pack.Principal(c), &service.PublishRequest{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		VideoPath:     video,
		ThumbnailPath: thumb,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.CreatedCode, v, "Video published successfully")
}

func GetVideoByID(ctx context.Context, c *app.RequestContext) {
	v, err := service.NewVideoListService(ctx).VideoInfo(c.Param("videoId"), pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, v, "Video fetched successfully")
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
	thumb, err := pack.SaveFormFile(c, "thumbnail")
	defer pack.RemoveTemp(ctx, thumb)
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	v, err := service.NewVideoUpdateService(ctx).Update(c.Param("videoId"), pack.Principal(c), &service.UpdateRequest{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		ThumbnailPath: thumb,
	})
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, v, "Video updated successfully")
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
	if err := service.NewVideoUpdateService(ctx).Delete(c.Param("videoId"), pack.Principal(c)); err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{}, "Video deleted successfully")
}

func TogglePublishStatus(ctx context.Context, c *app.RequestContext) {
	v, err := service.NewVideoUpdateService(ctx).TogglePublish(c.Param("videoId"), pack.Principal(c))
	if err != nil {
		pack.SendError(ctx, c, err)
		return
	}
	pack.SendResponse(c, errno.SuccessCode, map[string]interface{}{"isPublished": v.IsPublished}, "Video publish status toggled successfully")
}
