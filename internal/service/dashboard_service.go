package service

import (
	"context"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type DashboardService interface {
	Stats(ctx context.Context, ownerID int64) (*domain.ChannelStats, error)
	// Videos lists every video of the owner, unpublished ones included.
	Videos(ctx context.Context, ownerID int64, page domain.Page) (*VideoPage, error)
}

type dashboardService struct {
	channels repository.ChannelRepository
	videos   repository.VideoRepository
}

func NewDashboardService(channels repository.ChannelRepository, videos repository.VideoRepository) DashboardService {
	return &dashboardService{channels: channels, videos: videos}
}

func (s *dashboardService) Stats(ctx context.Context, ownerID int64) (*domain.ChannelStats, error) {
	stats, err := s.channels.Stats(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch channel stats", err)
	}
	return stats, nil
}

func (s *dashboardService) Videos(ctx context.Context, ownerID int64, page domain.Page) (*VideoPage, error) {
	videos, total, err := s.videos.List(ctx, domain.VideoFilter{
		Page:     page,
		OwnerID:  ownerID,
		ViewerID: ownerID,
		SortBy:   domain.SortByCreatedAt,
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch channel videos", err)
	}
	return &VideoPage{Videos: videos, Total: total, Page: page}, nil
}
