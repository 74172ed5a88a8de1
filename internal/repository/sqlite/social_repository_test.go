package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

func TestLikeRepository_Toggle(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	video := seedVideo(t, db, alice.ID, "intro", 0)
	target := domain.LikeTarget{Kind: domain.LikeVideo, ID: video.ID}

	want := []bool{true, false, true}
	for i, expected := range want {
		liked, err := likes.Toggle(ctx, alice.ID, target)
		require.NoError(t, err)
		assert.Equal(t, expected, liked, "toggle #%d", i+1)
	}

	n, err := likes.Count(ctx, target)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// the same id under another kind is a different target
	liked, err := likes.Toggle(ctx, alice.ID, domain.LikeTarget{Kind: domain.LikeComment, ID: video.ID})
	require.NoError(t, err)
	assert.True(t, liked)
	n, err = likes.Count(ctx, target)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLikeRepository_LikedVideosAndCleanup(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeRepository(db)
	videos := NewVideoRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	first := seedVideo(t, db, bob.ID, "first", 0)
	second := seedVideo(t, db, bob.ID, "second", 0)

	_, err := likes.Toggle(ctx, alice.ID, domain.LikeTarget{Kind: domain.LikeVideo, ID: first.ID})
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, alice.ID, domain.LikeTarget{Kind: domain.LikeVideo, ID: second.ID})
	require.NoError(t, err)

	liked, err := likes.ListLikedVideos(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	assert.Equal(t, second.ID, liked[0].ID)
	assert.Equal(t, first.ID, liked[1].ID)
	assert.Equal(t, "bob", liked[0].Owner.Username)

	require.NoError(t, videos.Delete(ctx, first.ID))
	n, err := likes.Count(ctx, domain.LikeTarget{Kind: domain.LikeVideo, ID: first.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLikeRepository_ToggleRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM likes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO likes").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err = NewLikeRepository(db).Toggle(context.Background(), 1, domain.LikeTarget{Kind: domain.LikeVideo, ID: 2})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Toggle(t *testing.T) {
	db := newTestDB(t)
	subs := NewSubscriptionRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	subscribed, err := subs.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	list, err := subs.ListSubscribers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, alice.ID, list[0].ID)

	channels, err := subs.ListSubscribedChannels(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, bob.ID, channels[0].ID)

	subscribed, err = subs.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	list, err = subs.ListSubscribers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = subs.Toggle(ctx, alice.ID, alice.ID)
	assert.Error(t, err, "self edges are rejected by the schema")
}

func TestChannelRepository_ProfileAndStats(t *testing.T) {
	db := newTestDB(t)
	channels := NewChannelRepository(db)
	subs := NewSubscriptionRepository(db)
	likes := NewLikeRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := subs.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = subs.Toggle(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = subs.Toggle(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	profile, err := channels.Profile(ctx, "ALICE", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.ID)
	assert.EqualValues(t, 2, profile.SubscribersCount)
	assert.EqualValues(t, 1, profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	profile, err = channels.Profile(ctx, "alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = channels.Profile(ctx, "nobody", bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	v1 := seedVideo(t, db, alice.ID, "a", 10)
	seedVideo(t, db, alice.ID, "b", 0)
	v3 := seedVideo(t, db, alice.ID, "c", 5)
	seedVideo(t, db, bob.ID, "other", 100)
	_, err = likes.Toggle(ctx, bob.ID, domain.LikeTarget{Kind: domain.LikeVideo, ID: v1.ID})
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, carol.ID, domain.LikeTarget{Kind: domain.LikeVideo, ID: v3.ID})
	require.NoError(t, err)

	stats, err := channels.Stats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelStats{TotalVideos: 3, TotalViews: 15, TotalLikes: 2, TotalSubscribers: 2}, *stats)

	empty, err := channels.Stats(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelStats{TotalSubscribers: 1}, *empty)
}

func TestWatchHistoryRepository_MostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	history := NewWatchHistoryRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	v1 := seedVideo(t, db, bob.ID, "one", 0)
	v2 := seedVideo(t, db, alice.ID, "two", 0)

	require.NoError(t, history.Record(ctx, alice.ID, v1.ID))
	require.NoError(t, history.Record(ctx, alice.ID, v2.ID))
	require.NoError(t, history.Record(ctx, alice.ID, v1.ID))

	list, err := history.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, v1.ID, list[0].ID)
	assert.Equal(t, "bob", list[0].Owner.Username)
	assert.Equal(t, v2.ID, list[1].ID)
	assert.Equal(t, "alice", list[1].Owner.Username)

	assert.ErrorIs(t, history.Record(ctx, alice.ID, 999), repository.ErrNotFound)
}

func TestWatchHistoryRepository_DropsUnpublished(t *testing.T) {
	db := newTestDB(t)
	history := NewWatchHistoryRepository(db)
	videos := NewVideoRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	theirs := seedVideo(t, db, bob.ID, "theirs", 0)
	mine := seedVideo(t, db, alice.ID, "mine", 0)

	require.NoError(t, history.Record(ctx, alice.ID, theirs.ID))
	require.NoError(t, history.Record(ctx, alice.ID, mine.ID))

	for _, v := range []*domain.Video{theirs, mine} {
		v.IsPublished = false
		require.NoError(t, videos.Update(ctx, v))
	}

	list, err := history.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)
}
