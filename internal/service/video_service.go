package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/media"
	"vidtube/internal/repository"
)

// PublishInput carries a new video. Paths point at temp files.
type PublishInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput replaces title and description; ThumbnailPath is optional.
type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// VideoQuery is a listing request as received from a client.
type VideoQuery struct {
	Page     domain.Page
	Query    string
	SortBy   string
	SortType string
	OwnerID  int64
	ViewerID int64
}

type VideoPage struct {
	Videos []domain.VideoWithOwner
	Total  int64
	Page   domain.Page
}

type VideoService interface {
	List(ctx context.Context, q VideoQuery) (*VideoPage, error)
	Publish(ctx context.Context, ownerID int64, in PublishInput) (*domain.Video, error)
	// Get counts a view and records watch history when viewerID is set.
	Get(ctx context.Context, viewerID, videoID int64) (*domain.VideoWithOwner, error)
	Update(ctx context.Context, actorID, videoID int64, in UpdateVideoInput) (*domain.Video, error)
	Delete(ctx context.Context, actorID, videoID int64) error
	TogglePublish(ctx context.Context, actorID, videoID int64) (*domain.Video, error)
}

type videoService struct {
	videos           repository.VideoRepository
	history          repository.WatchHistoryRepository
	media            media.Host
	defaultThumbnail string
	logger           logrus.FieldLogger
}

func NewVideoService(
	videos repository.VideoRepository,
	history repository.WatchHistoryRepository,
	host media.Host,
	defaultThumbnail string,
	logger logrus.FieldLogger,
) VideoService {
	return &videoService{
		videos:           videos,
		history:          history,
		media:            host,
		defaultThumbnail: defaultThumbnail,
		logger:           logger,
	}
}

func (s *videoService) List(ctx context.Context, q VideoQuery) (*VideoPage, error) {
	filter := domain.VideoFilter{
		Page:     q.Page,
		Query:    strings.TrimSpace(q.Query),
		OwnerID:  q.OwnerID,
		SortBy:   domain.SortByCreatedAt,
		ViewerID: q.ViewerID,
	}
	if q.SortBy != "" {
		filter.SortBy = domain.VideoSort(q.SortBy)
		if !filter.SortBy.Valid() {
			return nil, apperr.Validation("sortBy must be one of createdAt, views, duration, title")
		}
	}
	switch strings.ToLower(q.SortType) {
	case "", "desc":
	case "asc":
		filter.Ascending = true
	default:
		return nil, apperr.Validation("sortType must be asc or desc")
	}

	videos, total, err := s.videos.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to fetch videos", err)
	}
	return &VideoPage{Videos: videos, Total: total, Page: q.Page}, nil
}

func (s *videoService) Publish(ctx context.Context, ownerID int64, in PublishInput) (*domain.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, apperr.Validation("title and description are required")
	}
	if in.VideoPath == "" {
		return nil, apperr.Validation("video file is required")
	}

	file, err := media.Upload(ctx, s.media, in.VideoPath)
	if err != nil {
		return nil, apperr.Internal("failed to upload video", err)
	}
	thumbnail := s.defaultThumbnail
	if in.ThumbnailPath != "" {
		asset, err := media.Upload(ctx, s.media, in.ThumbnailPath)
		if err != nil {
			discardUploads(ctx, s.media, s.logger, file.URL)
			return nil, apperr.Internal("failed to upload thumbnail", err)
		}
		thumbnail = asset.URL
	}

	video := &domain.Video{
		OwnerID:     ownerID,
		VideoFile:   file.URL,
		Thumbnail:   thumbnail,
		Title:       in.Title,
		Description: in.Description,
		Duration:    file.Duration,
		IsPublished: true,
	}
	if _, err := s.videos.Create(ctx, video); err != nil {
		uploaded := []string{file.URL}
		if thumbnail != s.defaultThumbnail {
			uploaded = append(uploaded, thumbnail)
		}
		discardUploads(ctx, s.media, s.logger, uploaded...)
		return nil, apperr.Internal("failed to publish video", err)
	}
	return video, nil
}

func (s *videoService) Get(ctx context.Context, viewerID, videoID int64) (*domain.VideoWithOwner, error) {
	video, err := s.videos.GetWithOwner(ctx, videoID)
	if err != nil {
		return nil, repoError(err, "video not found", "failed to fetch video")
	}
	if !video.VisibleTo(viewerID) {
		return nil, apperr.NotFound("video not found")
	}
	if viewerID <= 0 {
		return video, nil
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		return nil, repoError(err, "video not found", "failed to fetch video")
	}
	video.Views++
	if err := s.history.Record(ctx, viewerID, videoID); err != nil {
		s.logger.WithError(err).WithField("video_id", videoID).Warn("record watch history")
	}
	return video, nil
}

func (s *videoService) Update(ctx context.Context, actorID, videoID int64, in UpdateVideoInput) (*domain.Video, error) {
	video, err := s.owned(ctx, actorID, videoID, "update this video")
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, apperr.Validation("title and description are required")
	}

	previousThumbnail := video.Thumbnail
	if in.ThumbnailPath != "" {
		asset, err := media.Upload(ctx, s.media, in.ThumbnailPath)
		if err != nil {
			return nil, apperr.Internal("failed to upload thumbnail", err)
		}
		video.Thumbnail = asset.URL
	}
	video.Title = in.Title
	video.Description = in.Description

	if err := s.videos.Update(ctx, video); err != nil {
		if video.Thumbnail != previousThumbnail {
			discardUploads(ctx, s.media, s.logger, video.Thumbnail)
		}
		return nil, repoError(err, "video not found", "failed to update video")
	}
	if video.Thumbnail != previousThumbnail && previousThumbnail != s.defaultThumbnail {
		s.deleteAsset(ctx, previousThumbnail)
	}
	return video, nil
}

func (s *videoService) Delete(ctx context.Context, actorID, videoID int64) error {
	video, err := s.owned(ctx, actorID, videoID, "delete this video")
	if err != nil {
		return err
	}
	if err := s.videos.Delete(ctx, videoID); err != nil {
		return repoError(err, "video not found", "failed to delete video")
	}

	s.deleteAsset(ctx, video.VideoFile)
	if video.Thumbnail != s.defaultThumbnail {
		s.deleteAsset(ctx, video.Thumbnail)
	}
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, actorID, videoID int64) (*domain.Video, error) {
	video, err := s.owned(ctx, actorID, videoID, "change this video")
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	if err := s.videos.Update(ctx, video); err != nil {
		return nil, repoError(err, "video not found", "failed to toggle publish status")
	}
	return video, nil
}

func (s *videoService) owned(ctx context.Context, actorID, videoID int64, action string) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, repoError(err, "video not found", "failed to fetch video")
	}
	if err := authorize(actorID, video, action); err != nil {
		return nil, err
	}
	return video, nil
}

// deleteAsset is best effort; the database row is already gone.
func (s *videoService) deleteAsset(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.media.Delete(ctx, url); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.WithError(err).WithField("url", url).Warn("delete hosted media")
	}
}
