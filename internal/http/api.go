package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidtube/internal/ratelimit"
	"vidtube/internal/service"
)

// Services groups the domain services the routes dispatch to.
type Services struct {
	Users          service.UserService
	Tokens         service.TokenService
	Videos         service.VideoService
	Comments       service.CommentService
	Likes          service.LikeService
	Subscriptions  service.SubscriptionService
	Playlists      service.PlaylistService
	CommunityPosts service.CommunityPostService
	Dashboard      service.DashboardService
	Graph          service.SocialGraph
}

// Options configures transport concerns that are not domain logic.
type Options struct {
	AllowedOrigins []string
	Cookies        CookieConfig
	UploadDir      string
	MaxUploadBytes int64
	// MediaDir is served under /media when media lives on local disk.
	MediaDir string
	Limiter  ratelimit.Limiter
	Logger   logrus.FieldLogger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	tokens         service.TokenService
	videos         service.VideoService
	comments       service.CommentService
	likes          service.LikeService
	subscriptions  service.SubscriptionService
	playlists      service.PlaylistService
	posts          service.CommunityPostService
	dashboard      service.DashboardService
	graph          service.SocialGraph
	origins        []string
	cookies        CookieConfig
	uploadDir      string
	maxUploadBytes int64
	mediaDir       string
	limiter        ratelimit.Limiter
	logger         logrus.FieldLogger
}

func NewHandler(svc Services, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		users:          svc.Users,
		tokens:         svc.Tokens,
		videos:         svc.Videos,
		comments:       svc.Comments,
		likes:          svc.Likes,
		subscriptions:  svc.Subscriptions,
		playlists:      svc.Playlists,
		posts:          svc.CommunityPosts,
		dashboard:      svc.Dashboard,
		graph:          svc.Graph,
		origins:        opts.AllowedOrigins,
		cookies:        opts.Cookies,
		uploadDir:      opts.UploadDir,
		maxUploadBytes: opts.MaxUploadBytes,
		mediaDir:       opts.MediaDir,
		limiter:        opts.Limiter,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(logRequests(h.logger), h.recoverJSON(), h.corsMiddleware())
	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found", nil)
	})
	router.NoMethod(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found", nil)
	})

	if h.mediaDir != "" {
		router.Static("/media", h.mediaDir)
	}

	api := router.Group("/api/v1")
	api.GET("/healthcheck", h.healthcheck)

	auth := h.requireAuth()
	upload := h.limitBody()

	users := api.Group("/users")
	{
		users.POST("/register", h.rateLimit("register"), upload, h.handle(h.register))
		users.POST("/login", h.rateLimit("login"), h.handle(h.login))
		users.POST("/refresh-token", h.rateLimit("refresh"), h.handle(h.refreshToken))

		users.POST("/logout", auth, h.handle(h.logout))
		users.POST("/change-password", auth, h.handle(h.changePassword))
		users.GET("/current-user", auth, h.handle(h.getCurrentUser))
		users.PATCH("/update-account", auth, h.handle(h.updateAccount))
		users.PATCH("/avatar", auth, upload, h.handle(h.updateAvatar))
		users.PATCH("/cover-image", auth, upload, h.handle(h.updateCoverImage))
		users.GET("/c/:username", auth, h.handle(h.channelProfile))
		users.GET("/history", auth, h.handle(h.watchHistory))
	}

	videos := api.Group("/videos", auth)
	{
		videos.GET("", h.handle(h.listVideos))
		videos.POST("", upload, h.handle(h.publishVideo))
		videos.GET("/:videoId", h.handle(h.getVideo))
		videos.PATCH("/:videoId", upload, h.handle(h.updateVideo))
		videos.DELETE("/:videoId", h.handle(h.deleteVideo))
		videos.PATCH("/toggle/publish/:videoId", h.handle(h.togglePublish))
	}

	comments := api.Group("/comments", auth)
	{
		comments.GET("/:videoId", h.handle(h.listComments))
		comments.POST("/:videoId", h.handle(h.addComment))
		comments.PATCH("/c/:commentId", h.handle(h.updateComment))
		comments.DELETE("/c/:commentId", h.handle(h.deleteComment))
	}

	likes := api.Group("/likes", auth)
	{
		likes.POST("/toggle/v/:videoId", h.handle(h.toggleVideoLike))
		likes.POST("/toggle/c/:commentId", h.handle(h.toggleCommentLike))
		likes.POST("/toggle/p/:communityPostId", h.handle(h.toggleCommunityPostLike))
		likes.GET("/videos", h.handle(h.likedVideos))
	}

	subs := api.Group("/subscriptions", auth)
	{
		subs.POST("/c/:channelId", h.handle(h.toggleSubscription))
		subs.GET("/c/:channelId", h.handle(h.channelSubscribers))
		subs.GET("/u", h.handle(h.subscribedChannels))
	}

	playlists := api.Group("/playlists", auth)
	{
		playlists.POST("", h.handle(h.createPlaylist))
		playlists.GET("/user/:userId", h.handle(h.userPlaylists))
		playlists.GET("/:playlistId", h.handle(h.getPlaylist))
		playlists.PATCH("/:playlistId", h.handle(h.updatePlaylist))
		playlists.DELETE("/:playlistId", h.handle(h.deletePlaylist))
		playlists.PATCH("/add/:videoId/:playlistId", h.handle(h.addVideoToPlaylist))
		playlists.PATCH("/remove/:videoId/:playlistId", h.handle(h.removeVideoFromPlaylist))
	}

	posts := api.Group("/community-posts", auth)
	{
		posts.GET("", h.handle(h.listCommunityPosts))
		posts.POST("", h.handle(h.createCommunityPost))
		posts.GET("/user/:userId", h.handle(h.userCommunityPosts))
		posts.PATCH("/:communityPostId", h.handle(h.updateCommunityPost))
		posts.DELETE("/:communityPostId", h.handle(h.deleteCommunityPost))
	}

	dashboard := api.Group("/dashboard", auth)
	{
		dashboard.GET("/stats", h.handle(h.channelStats))
		dashboard.GET("/videos", h.handle(h.channelVideos))
	}
}

// corsMiddleware allows credentialed requests from the configured origins only,
// since session cookies ride along with every call.
func (h *Handler) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(h.origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	} else {
		cfg.AllowOrigins = h.origins
	}
	return cors.New(cfg)
}

func (h *Handler) healthcheck(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"status": "ok"}, "service is healthy")
}
