package repository

import (
	"context"

	"vidtube/internal/domain"
)

type LikeRepository interface {
	// Toggle removes the like if present, otherwise inserts it, atomically. It reports the resulting state.
	Toggle(ctx context.Context, userID int64, target domain.LikeTarget) (bool, error)
	Count(ctx context.Context, target domain.LikeTarget) (int64, error)
	ListLikedVideos(ctx context.Context, userID int64) ([]domain.LikedVideo, error)
}
