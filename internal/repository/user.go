package repository

import (
	"context"

	"vidtube/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByLogin matches username or email case-insensitively. Empty values are ignored.
	FindByLogin(ctx context.Context, username, email string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateAccount(ctx context.Context, id int64, fullName, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, id int64, url string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id int64, url string) (*domain.User, error)
	// SetRefreshTokenHash overwrites the stored refresh token hash; empty clears it.
	SetRefreshTokenHash(ctx context.Context, id int64, hash string) error
}

// WatchHistoryRepository records and lists what users watched.
type WatchHistoryRepository interface {
	Record(ctx context.Context, userID, videoID int64) error
	List(ctx context.Context, userID int64) ([]domain.VideoWithOwner, error)
}

// ChannelRepository serves read-only channel aggregates.
type ChannelRepository interface {
	Profile(ctx context.Context, username string, viewerID int64) (*domain.ChannelProfile, error)
	Stats(ctx context.Context, ownerID int64) (*domain.ChannelStats, error)
}
