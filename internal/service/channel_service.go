package service

import (
	"context"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

// SocialGraph serves read-only views across users, videos, likes and subscriptions.
type SocialGraph interface {
	ChannelProfile(ctx context.Context, username string, viewerID int64) (*domain.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID int64) ([]domain.VideoWithOwner, error)
	LikedVideos(ctx context.Context, userID int64) ([]domain.LikedVideo, error)
}

type socialGraph struct {
	channels repository.ChannelRepository
	history  repository.WatchHistoryRepository
	likes    repository.LikeRepository
}

func NewSocialGraph(channels repository.ChannelRepository, history repository.WatchHistoryRepository, likes repository.LikeRepository) SocialGraph {
	return &socialGraph{channels: channels, history: history, likes: likes}
}

func (g *socialGraph) ChannelProfile(ctx context.Context, username string, viewerID int64) (*domain.ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validation("username is missing")
	}
	profile, err := g.channels.Profile(ctx, username, viewerID)
	if err != nil {
		return nil, repoError(err, "channel does not exist", "failed to fetch channel")
	}
	return profile, nil
}

func (g *socialGraph) WatchHistory(ctx context.Context, userID int64) ([]domain.VideoWithOwner, error) {
	videos, err := g.history.List(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch watch history", err)
	}
	return videos, nil
}

func (g *socialGraph) LikedVideos(ctx context.Context, userID int64) ([]domain.LikedVideo, error) {
	videos, err := g.likes.ListLikedVideos(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch liked videos", err)
	}
	return videos, nil
}
