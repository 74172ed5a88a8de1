package repository

import (
	"context"

	"vidtube/internal/domain"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Playlist, error)
	// GetDetails includes only videos that are published or owned by viewerID.
	GetDetails(ctx context.Context, id, viewerID int64) (*domain.PlaylistDetails, error)
	ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]domain.Playlist, int64, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id int64) error
	// AddVideo returns ErrConflict when the video is already in the playlist.
	AddVideo(ctx context.Context, playlistID, videoID int64) error
	RemoveVideo(ctx context.Context, playlistID, videoID int64) error
}
