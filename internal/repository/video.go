package repository

import (
	"context"

	"vidtube/internal/domain"
)

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
	GetWithOwner(ctx context.Context, id int64) (*domain.VideoWithOwner, error)
	List(ctx context.Context, filter domain.VideoFilter) ([]domain.VideoWithOwner, int64, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
}
