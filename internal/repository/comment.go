package repository

import (
	"context"

	"vidtube/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID int64, page domain.Page) ([]domain.CommentWithOwner, int64, error)
	UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}
