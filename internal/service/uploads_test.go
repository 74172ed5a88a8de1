package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/media"
	"vidtube/internal/repository"
)

// racingUsers loses the unique-name race after the existence check passed.
type racingUsers struct {
	repository.UserRepository
}

func (racingUsers) Create(context.Context, *domain.User) (int64, error) {
	return 0, repository.ErrConflict
}

type failingVideos struct {
	repository.VideoRepository
}

func (failingVideos) Create(context.Context, *domain.Video) (int64, error) {
	return 0, errors.New("disk full")
}

func (failingVideos) Update(context.Context, *domain.Video) error {
	return errors.New("disk full")
}

func TestUserService_RegisterDiscardsUploadsOnFailure(t *testing.T) {
	t.Run("cover upload fails", func(t *testing.T) {
		f := newFixture(t)
		svc := f.userService()
		avatar := writeTemp(t, "avatar.png")
		cover := writeTemp(t, "cover.png")

		f.host.On("Upload", mock.Anything, avatar).Return(&media.Asset{URL: "https://cdn.example.com/avatar.png"}, nil).Once()
		f.host.On("Upload", mock.Anything, cover).Return(nil, errors.New("host down")).Once()
		f.host.On("Delete", mock.Anything, "https://cdn.example.com/avatar.png").Return(nil).Once()

		_, err := svc.Register(context.Background(), RegisterInput{
			FullName: "Bob", Username: "bob", Email: "bob@example.com", Password: "password1",
			AvatarPath: avatar, CoverImagePath: cover,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		f.host.AssertExpectations(t)
	})

	t.Run("insert loses the race", func(t *testing.T) {
		f := newFixture(t)
		svc := NewUserService(racingUsers{f.users}, f.tokenService(RefreshReuse), f.host, f.logger)
		avatar := writeTemp(t, "avatar.png")
		cover := writeTemp(t, "cover.png")

		f.host.On("Upload", mock.Anything, avatar).Return(&media.Asset{URL: "https://cdn.example.com/avatar.png"}, nil).Once()
		f.host.On("Upload", mock.Anything, cover).Return(&media.Asset{URL: "https://cdn.example.com/cover.png"}, nil).Once()
		f.host.On("Delete", mock.Anything, "https://cdn.example.com/avatar.png").Return(nil).Once()
		// a failed delete is logged, not returned
		f.host.On("Delete", mock.Anything, "https://cdn.example.com/cover.png").Return(errors.New("host down")).Once()

		_, err := svc.Register(context.Background(), RegisterInput{
			FullName: "Bob", Username: "bob", Email: "bob@example.com", Password: "password1",
			AvatarPath: avatar, CoverImagePath: cover,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		f.host.AssertExpectations(t)
	})
}

func TestVideoService_PublishDiscardsUploadsOnFailure(t *testing.T) {
	t.Run("thumbnail upload fails", func(t *testing.T) {
		f := newFixture(t)
		svc := NewVideoService(f.videos, f.history, f.host, "https://cdn.example.com/default.png", f.logger)
		alice := f.createUser(t, "alice", "password1")
		file := writeTemp(t, "clip.mp4")
		thumb := writeTemp(t, "thumb.png")

		f.host.On("Upload", mock.Anything, file).Return(&media.Asset{URL: "https://cdn.example.com/clip.mp4"}, nil).Once()
		f.host.On("Upload", mock.Anything, thumb).Return(nil, errors.New("host down")).Once()
		f.host.On("Delete", mock.Anything, "https://cdn.example.com/clip.mp4").Return(nil).Once()

		_, err := svc.Publish(context.Background(), alice.ID, PublishInput{
			Title: "clip", Description: "d", VideoPath: file, ThumbnailPath: thumb,
		})
		require.Error(t, err)
		f.host.AssertExpectations(t)
	})

	t.Run("insert fails", func(t *testing.T) {
		f := newFixture(t)
		svc := NewVideoService(failingVideos{f.videos}, f.history, f.host, "https://cdn.example.com/default.png", f.logger)
		alice := f.createUser(t, "alice", "password1")
		file := writeTemp(t, "clip.mp4")
		thumb := writeTemp(t, "thumb.png")

		f.host.On("Upload", mock.Anything, file).Return(&media.Asset{URL: "https://cdn.example.com/clip.mp4"}, nil).Once()
		f.host.On("Upload", mock.Anything, thumb).Return(&media.Asset{URL: "https://cdn.example.com/thumb.png"}, nil).Once()
		f.host.On("Delete", mock.Anything, "https://cdn.example.com/clip.mp4").Return(nil).Once()
		f.host.On("Delete", mock.Anything, "https://cdn.example.com/thumb.png").Return(nil).Once()

		_, err := svc.Publish(context.Background(), alice.ID, PublishInput{
			Title: "clip", Description: "d", VideoPath: file, ThumbnailPath: thumb,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
		f.host.AssertExpectations(t)
	})

	t.Run("default thumbnail is kept", func(t *testing.T) {
		f := newFixture(t)
		svc := NewVideoService(failingVideos{f.videos}, f.history, f.host, "https://cdn.example.com/default.png", f.logger)
		alice := f.createUser(t, "alice", "password1")
		file := writeTemp(t, "clip.mp4")

		f.host.On("Upload", mock.Anything, file).Return(&media.Asset{URL: "https://cdn.example.com/clip.mp4"}, nil).Once()
		f.host.On("Delete", mock.Anything, "https://cdn.example.com/clip.mp4").Return(nil).Once()

		_, err := svc.Publish(context.Background(), alice.ID, PublishInput{Title: "clip", Description: "d", VideoPath: file})
		require.Error(t, err)
		f.host.AssertExpectations(t)
		f.host.AssertNotCalled(t, "Delete", mock.Anything, "https://cdn.example.com/default.png")
	})
}

func TestVideoService_UpdateDiscardsNewThumbnailOnFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(failingVideos{f.videos}, f.history, f.host, "", f.logger)
	alice := f.createUser(t, "alice", "password1")
	video := f.createVideo(t, alice.ID, "clip", 0)
	thumb := writeTemp(t, "thumb.png")

	f.host.On("Upload", mock.Anything, thumb).Return(&media.Asset{URL: "https://cdn.example.com/new-thumb.png"}, nil).Once()
	f.host.On("Delete", mock.Anything, "https://cdn.example.com/new-thumb.png").Return(nil).Once()

	_, err := svc.Update(context.Background(), alice.ID, video.ID, UpdateVideoInput{
		Title: "clip", Description: "d", ThumbnailPath: thumb,
	})
	require.Error(t, err)
	f.host.AssertExpectations(t)
	f.host.AssertNotCalled(t, "Delete", mock.Anything, video.Thumbnail)

	stored, err := f.videos.GetByID(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.Thumbnail, stored.Thumbnail)
}
