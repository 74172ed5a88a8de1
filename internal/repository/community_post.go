package repository

import (
	"context"

	"vidtube/internal/domain"
)

type CommunityPostRepository interface {
	Create(ctx context.Context, post *domain.CommunityPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.CommunityPost, error)
	// List returns posts newest first; ownerID 0 lists every channel.
	List(ctx context.Context, ownerID int64, page domain.Page) ([]domain.CommunityPostWithOwner, int64, error)
	UpdateContent(ctx context.Context, id int64, content string) (*domain.CommunityPost, error)
	Delete(ctx context.Context, id int64) error
}
