package service

import (
	"context"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

// visibleVideo loads a video the viewer may see. Someone else's draft reads as missing.
func visibleVideo(ctx context.Context, videos repository.VideoRepository, videoID, viewerID int64, internalMsg string) (*domain.Video, error) {
	video, err := videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, repoError(err, "video not found", internalMsg)
	}
	if !video.VisibleTo(viewerID) {
		return nil, apperr.NotFound("video not found")
	}
	return video, nil
}
