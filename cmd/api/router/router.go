package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	health "mytube.com/cmd/api/handlers/health"
	interaction "mytube.com/cmd/api/handlers/interaction"
	playlist "mytube.com/cmd/api/handlers/playlist"
	relation "mytube.com/cmd/api/handlers/relation"
	user "mytube.com/cmd/api/handlers/user"
	video "mytube.com/cmd/api/handlers/video"
	"mytube.com/cmd/api/router/authfunc"
	"mytube.com/pkg/security"
)

// Register mounts every /api/v1 route. limiter may be nil.
func Register(h *server.Hertz, limiter *security.RateLimiter) {
	auth, opt := authfunc.Auth(), authfunc.OptionalAuth()
	with := func(mw []app.HandlerFunc, hf app.HandlerFunc) []app.HandlerFunc {
		return append(append(make([]app.HandlerFunc, 0, len(mw)+1), mw...), hf)
	}

	v1 := h.Group("/api/v1", rateLimitFunc(limiter))
	v1.GET("/healthcheck", health.HealthCheck)

	users := v1.Group("/users")
	{
		users.POST("/register", user.Register)
		users.POST("/login", user.Login)
		users.POST("/refresh-token", user.RefreshToken)
		users.POST("/logout", with(auth, user.Logout)...)
		users.POST("/change-password", with(auth, user.ChangePassword)...)
		users.GET("/current-user", with(auth, user.CurrentUser)...)
		users.PATCH("/update-account", with(auth, user.UpdateAccount)...)
		users.PATCH("/avatar", with(auth, user.UpdateAvatar)...)
		users.PATCH("/cover-image", with(auth, user.UpdateCoverImage)...)
		users.GET("/c/:username", with(opt, user.ChannelProfile)...)
		users.GET("/history", with(auth, user.WatchHistory)...)
	}

	videos := v1.Group("/videos")
	{
		videos.GET("", with(opt, video.GetAllVideos)...)
		videos.POST("", with(auth, video.PublishVideo)...)
		videos.GET("/:videoId", with(opt, video.GetVideoByID)...)
		videos.PATCH("/:videoId", with(auth, video.UpdateVideo)...)
		videos.DELETE("/:videoId", with(auth, video.DeleteVideo)...)
		videos.PATCH("/toggle/publish/:videoId", with(auth, video.TogglePublishStatus)...)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", with(opt, interaction.CommentList)...)
		comments.POST("/:videoId", with(auth, interaction.AddComment)...)
		comments.PATCH("/c/:commentId", with(auth, interaction.UpdateComment)...)
		comments.DELETE("/c/:commentId", with(auth, interaction.DeleteComment)...)
	}

	likes := v1.Group("/likes", auth...)
	{
		likes.POST("/toggle/v/:videoId", interaction.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", interaction.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", interaction.ToggleTweetLike)
		likes.GET("/videos", interaction.LikedVideos)
	}

	tweets := v1.Group("/tweets")
	{
		tweets.POST("", with(auth, interaction.CreateTweet)...)
		tweets.GET("/user/:userId", with(opt, interaction.UserTweets)...)
		tweets.PATCH("/:tweetId", with(auth, interaction.UpdateTweet)...)
		tweets.DELETE("/:tweetId", with(auth, interaction.DeleteTweet)...)
	}

	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.POST("/c/:channelId", with(auth, relation.ToggleSubscription)...)
		subscriptions.GET("/c/:channelId", with(opt, relation.ChannelSubscribers)...)
		subscriptions.GET("/u/:subscriberId", with(opt, relation.SubscribedChannels)...)
	}

	playlists := v1.Group("/playlist")
	{
		playlists.POST("", with(auth, playlist.CreatePlaylist)...)
		playlists.GET("/user/:userId", with(opt, playlist.UserPlaylists)...)
		playlists.GET("/:playlistId", with(opt, playlist.GetPlaylist)...)
		playlists.PATCH("/:playlistId", with(auth, playlist.UpdatePlaylist)...)
		playlists.DELETE("/:playlistId", with(auth, playlist.DeletePlaylist)...)
		playlists.PATCH("/add/:videoId/:playlistId", with(auth, playlist.AddVideoToPlaylist)...)
		playlists.PATCH("/remove/:videoId/:playlistId", with(auth, playlist.RemoveVideoFromPlaylist)...)
	}

	dashboard := v1.Group("/dashboard", auth...)
	{
		dashboard.GET("/stats", video.ChannelStats)
		dashboard.GET("/videos", video.ChannelVideos)
	}
}
