package service

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type PlaylistPage struct {
	Playlists []domain.Playlist
	Total     int64
	Page      domain.Page
}

type PlaylistService interface {
	Create(ctx context.Context, ownerID int64, name, description string) (*domain.Playlist, error)
	ListByUser(ctx context.Context, userID int64, page domain.Page) (*PlaylistPage, error)
	// Get lists only the playlist videos the viewer can see.
	Get(ctx context.Context, viewerID, playlistID int64) (*domain.PlaylistDetails, error)
	Update(ctx context.Context, actorID, playlistID int64, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, actorID, playlistID int64) error
	AddVideo(ctx context.Context, actorID, playlistID, videoID int64) (*domain.PlaylistDetails, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID int64) (*domain.PlaylistDetails, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
}

func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository, users repository.UserRepository) PlaylistService {
	return &playlistService{playlists: playlists, videos: videos, users: users}
}

func (s *playlistService) Create(ctx context.Context, ownerID int64, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	playlist := &domain.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if _, err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, apperr.Internal("failed to create playlist", err)
	}
	return playlist, nil
}

func (s *playlistService) ListByUser(ctx context.Context, userID int64, page domain.Page) (*PlaylistPage, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, repoError(err, "user not found", "failed to fetch playlists")
	}
	playlists, total, err := s.playlists.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, apperr.Internal("failed to fetch playlists", err)
	}
	return &PlaylistPage{Playlists: playlists, Total: total, Page: page}, nil
}

func (s *playlistService) Get(ctx context.Context, viewerID, playlistID int64) (*domain.PlaylistDetails, error) {
	details, err := s.playlists.GetDetails(ctx, playlistID, viewerID)
	if err != nil {
		return nil, repoError(err, "playlist not found", "failed to fetch playlist")
	}
	return details, nil
}

func (s *playlistService) Update(ctx context.Context, actorID, playlistID int64, name, description string) (*domain.Playlist, error) {
	playlist, err := s.owned(ctx, actorID, playlistID, "update this playlist")
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	playlist.Name = name
	playlist.Description = strings.TrimSpace(description)
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, repoError(err, "playlist not found", "failed to update playlist")
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, actorID, playlistID int64) error {
	if _, err := s.owned(ctx, actorID, playlistID, "delete this playlist"); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return repoError(err, "playlist not found", "failed to delete playlist")
	}
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, actorID, playlistID, videoID int64) (*domain.PlaylistDetails, error) {
	if _, err := s.owned(ctx, actorID, playlistID, "modify this playlist"); err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videos, videoID, actorID, "failed to add video to playlist"); err != nil {
		return nil, err
	}
	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Validation("video already exists in the playlist")
		}
		return nil, repoError(err, "video not found", "failed to add video to playlist")
	}
	return s.Get(ctx, actorID, playlistID)
}

func (s *playlistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID int64) (*domain.PlaylistDetails, error) {
	if _, err := s.owned(ctx, actorID, playlistID, "modify this playlist"); err != nil {
		return nil, err
	}
	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, apperr.Internal("failed to remove video from playlist", err)
	}
	return s.Get(ctx, actorID, playlistID)
}

func (s *playlistService) owned(ctx context.Context, actorID, playlistID int64, action string) (*domain.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, repoError(err, "playlist not found", "failed to fetch playlist")
	}
	if err := authorize(actorID, playlist, action); err != nil {
		return nil, err
	}
	return playlist, nil
}
