package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/media"
)

var firstPage = domain.Page{Number: 1, Limit: 10}

func TestCommentService_EmptyVideo(t *testing.T) {
	f := newFixture(t)
	svc := NewCommentService(f.comments, f.videos)
	alice := f.createUser(t, "alice", "password1")
	video := f.createVideo(t, alice.ID, "quiet", 0)

	page, err := svc.List(context.Background(), alice.ID, video.ID, firstPage)
	require.NoError(t, err)
	assert.NotNil(t, page.Comments)
	assert.Empty(t, page.Comments)
	assert.Zero(t, page.Total)

	_, err = svc.List(context.Background(), alice.ID, 999, firstPage)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestNonOwnerMutationsAreForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner", "password1")
	other := f.createUser(t, "other", "password1")

	video := f.createVideo(t, owner.ID, "clip", 0)
	comments := NewCommentService(f.comments, f.videos)
	playlists := NewPlaylistService(f.playlists, f.videos, f.users)
	posts := NewCommunityPostService(f.posts, f.users)
	videos := NewVideoService(f.videos, f.history, f.host, "", f.logger)

	comment, err := comments.Add(ctx, owner.ID, video.ID, "first!")
	require.NoError(t, err)
	playlist, err := playlists.Create(ctx, owner.ID, "mix", "")
	require.NoError(t, err)
	post, err := posts.Create(ctx, owner.ID, "hello")
	require.NoError(t, err)

	// empty payloads would fail validation; ownership is checked first
	attempts := map[string]func() error{
		"update comment": func() error { _, err := comments.Update(ctx, other.ID, comment.ID, ""); return err },
		"delete comment": func() error { return comments.Delete(ctx, other.ID, comment.ID) },
		"update playlist": func() error {
			_, err := playlists.Update(ctx, other.ID, playlist.ID, "", "")
			return err
		},
		"delete playlist": func() error { return playlists.Delete(ctx, other.ID, playlist.ID) },
		"add to playlist": func() error {
			_, err := playlists.AddVideo(ctx, other.ID, playlist.ID, video.ID)
			return err
		},
		"remove from playlist": func() error {
			_, err := playlists.RemoveVideo(ctx, other.ID, playlist.ID, video.ID)
			return err
		},
		"update video": func() error {
			_, err := videos.Update(ctx, other.ID, video.ID, UpdateVideoInput{})
			return err
		},
		"delete video": func() error { return videos.Delete(ctx, other.ID, video.ID) },
		"toggle publish": func() error {
			_, err := videos.TogglePublish(ctx, other.ID, video.ID)
			return err
		},
		"update post": func() error { _, err := posts.Update(ctx, other.ID, post.ID, ""); return err },
		"delete post": func() error { return posts.Delete(ctx, other.ID, post.ID) },
	}
	for name, attempt := range attempts {
		t.Run(name, func(t *testing.T) {
			err := attempt()
			require.Error(t, err)
			assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
		})
	}

	// nothing changed
	_, err = f.videos.GetByID(ctx, video.ID)
	assert.NoError(t, err)
	_, err = f.comments.GetByID(ctx, comment.ID)
	assert.NoError(t, err)
}

func TestCommentService_OwnerFlow(t *testing.T) {
	f := newFixture(t)
	svc := NewCommentService(f.comments, f.videos)
	ctx := context.Background()
	alice := f.createUser(t, "alice", "password1")
	video := f.createVideo(t, alice.ID, "clip", 0)

	_, err := svc.Add(ctx, alice.ID, video.ID, "   ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = svc.Add(ctx, alice.ID, 999, "hi")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	c, err := svc.Add(ctx, alice.ID, video.ID, "hi")
	require.NoError(t, err)
	updated, err := svc.Update(ctx, alice.ID, c.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Content)

	require.NoError(t, svc.Delete(ctx, alice.ID, c.ID))
	err = svc.Delete(ctx, alice.ID, c.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestPlaylistService_AddDuplicate(t *testing.T) {
	f := newFixture(t)
	svc := NewPlaylistService(f.playlists, f.videos, f.users)
	ctx := context.Background()
	alice := f.createUser(t, "alice", "password1")
	video := f.createVideo(t, alice.ID, "clip", 0)

	_, err := svc.Create(ctx, alice.ID, " ", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	pl, err := svc.Create(ctx, alice.ID, "mix", "songs")
	require.NoError(t, err)

	details, err := svc.AddVideo(ctx, alice.ID, pl.ID, video.ID)
	require.NoError(t, err)
	require.Len(t, details.Videos, 1)

	_, err = svc.AddVideo(ctx, alice.ID, pl.ID, video.ID)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.AddVideo(ctx, alice.ID, pl.ID, 999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	details, err = svc.RemoveVideo(ctx, alice.ID, pl.ID, video.ID)
	require.NoError(t, err)
	assert.Empty(t, details.Videos)

	list, err := svc.ListByUser(ctx, alice.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)

	_, err = svc.ListByUser(ctx, 999, firstPage)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestVideoService_PublishAndDelete(t *testing.T) {
	f := newFixture(t)
	svc := NewVideoService(f.videos, f.history, f.host, "https://cdn.example.com/default.png", f.logger)
	ctx := context.Background()
	alice := f.createUser(t, "alice", "password1")
	bob := f.createUser(t, "bob", "password1")
	file := writeTemp(t, "clip.mp4")

	_, err := svc.Publish(ctx, alice.ID, PublishInput{Title: "clip", Description: "d"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	f.host.On("Upload", mock.Anything, file).Return(&media.Asset{URL: "https://cdn.example.com/clip.mp4", Duration: 12.5}, nil).Once()
	video, err := svc.Publish(ctx, alice.ID, PublishInput{Title: "clip", Description: "d", VideoPath: file})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/default.png", video.Thumbnail)
	assert.Equal(t, 12.5, video.Duration)
	assert.True(t, video.IsPublished)

	toggled, err := svc.TogglePublish(ctx, alice.ID, video.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPublished)

	_, err = svc.Get(ctx, bob.ID, video.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "drafts are hidden from others")
	_, err = svc.Get(ctx, alice.ID, video.ID)
	assert.NoError(t, err)

	page, err := svc.List(ctx, VideoQuery{Page: firstPage, ViewerID: bob.ID})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	_, err = svc.List(ctx, VideoQuery{Page: firstPage, SortBy: "likes"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = svc.List(ctx, VideoQuery{Page: firstPage, SortType: "sideways"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	f.host.On("Delete", mock.Anything, "https://cdn.example.com/clip.mp4").Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, alice.ID, video.ID))
	f.host.AssertExpectations(t)

	_, err = svc.Get(ctx, alice.ID, video.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCommunityPostService(t *testing.T) {
	f := newFixture(t)
	svc := NewCommunityPostService(f.posts, f.users)
	ctx := context.Background()
	alice := f.createUser(t, "alice", "password1")

	_, err := svc.Create(ctx, alice.ID, "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	post, err := svc.Create(ctx, alice.ID, "hello world")
	require.NoError(t, err)

	page, err := svc.ListByUser(ctx, alice.ID, firstPage)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "alice", page.Posts[0].Owner.Username)

	updated, err := svc.Update(ctx, alice.ID, post.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.Delete(ctx, alice.ID, post.ID))
	all, err := svc.List(ctx, firstPage)
	require.NoError(t, err)
	assert.Empty(t, all.Posts)
}
