package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"vidtube/internal/config"
	apphttp "vidtube/internal/http"
	"vidtube/internal/logging"
	"vidtube/internal/media"
	"vidtube/internal/ratelimit"
	"vidtube/internal/repository/sqlite"
	"vidtube/internal/service"
	"vidtube/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := sqlite.Migrate(db, logger); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	users := sqlite.NewUserRepository(db)
	videos := sqlite.NewVideoRepository(db)
	comments := sqlite.NewCommentRepository(db)
	likes := sqlite.NewLikeRepository(db)
	subs := sqlite.NewSubscriptionRepository(db)
	playlists := sqlite.NewPlaylistRepository(db)
	posts := sqlite.NewCommunityPostRepository(db)
	history := sqlite.NewWatchHistoryRepository(db)
	channels := sqlite.NewChannelRepository(db)

	manager, err := token.NewManager(token.Config{
		AccessSecret:  cfg.Auth.AccessTokenSecret,
		RefreshSecret: cfg.Auth.RefreshTokenSecret,
		AccessTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTTL:    cfg.Auth.RefreshTokenTTL,
		Issuer:        "vidtube",
	})
	if err != nil {
		logger.Fatalf("token manager: %v", err)
	}
	policy, err := service.ParseRefreshPolicy(cfg.Auth.RefreshPolicy)
	if err != nil {
		logger.Fatalf("refresh policy: %v", err)
	}

	host, mediaDir, err := buildMediaHost(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup media host: %v", err)
	}

	videoHost := media.WithDuration(host, media.NewFFmpegDuration(cfg.Media.DurationCommand, cfg.Media.DurationTimeout), logger)

	limiter, closeLimiter := buildLimiter(ctx, cfg, logger)
	defer closeLimiter()

	tokens := service.NewTokenService(users, manager, policy, logger)
	handler := apphttp.NewHandler(apphttp.Services{
		Users:          service.NewUserService(users, tokens, host, logger),
		Tokens:         tokens,
		Videos:         service.NewVideoService(videos, history, videoHost, cfg.Media.DefaultThumbnail, logger),
		Comments:       service.NewCommentService(comments, videos),
		Likes:          service.NewLikeService(likes, videos, comments, posts),
		Subscriptions:  service.NewSubscriptionService(subs, users),
		Playlists:      service.NewPlaylistService(playlists, videos, users),
		CommunityPosts: service.NewCommunityPostService(posts, users),
		Dashboard:      service.NewDashboardService(channels, videos),
		Graph:          service.NewSocialGraph(channels, history, likes),
	}, apphttp.Options{
		AllowedOrigins: cfg.Origins(),
		Cookies: apphttp.CookieConfig{
			Secure:     cfg.Auth.CookieSecure,
			Domain:     cfg.Auth.CookieDomain,
			SameSite:   apphttp.ParseSameSite(cfg.Auth.CookieSameSite),
			AccessTTL:  cfg.Auth.AccessTokenTTL,
			RefreshTTL: cfg.Auth.RefreshTokenTTL,
		},
		UploadDir:      cfg.Media.TempDir,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		MediaDir:       mediaDir,
		Limiter:        limiter,
		Logger:         logger,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildMediaHost uses S3 when a bucket is configured and the local disk otherwise.
// The returned directory is non-empty only for the disk host and is served under /media.
func buildMediaHost(ctx context.Context, cfg config.Config, logger *logrus.Logger) (media.Host, string, error) {
	if cfg.Storage.Bucket == "" {
		host, err := media.NewDiskHost(cfg.Media.LocalDir, cfg.Media.LocalBaseURL)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("storing media on disk at %s", cfg.Media.LocalDir)
		return host, cfg.Media.LocalDir, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, "", fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	host, err := media.NewS3Host(client, media.S3Options{
		Bucket:        cfg.Storage.Bucket,
		KeyPrefix:     cfg.Storage.KeyPrefix,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, "", err
	}
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return host, "", nil
}

// buildLimiter shares limits through Redis when configured, otherwise keeps them in memory.
func buildLimiter(ctx context.Context, cfg config.Config, logger *logrus.Logger) (ratelimit.Limiter, func()) {
	rl := cfg.RateLimit
	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemory(rl.Requests, rl.Window, rl.Burst, 10*time.Minute), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("redis ping failed, requests pass while it is down: %v", err)
	} else {
		logger.Infof("rate limiting through redis at %s", cfg.Redis.Addr)
	}
	return ratelimit.NewRedis(client, rl.Requests+rl.Burst, rl.Window), func() { _ = client.Close() }
}
