package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/domain"
	"vidtube/internal/media"
	"vidtube/internal/repository"
	"vidtube/internal/repository/sqlite"
	"vidtube/internal/token"
)

type mockHost struct {
	mock.Mock
}

func (m *mockHost) Upload(ctx context.Context, localPath string) (*media.Asset, error) {
	args := m.Called(ctx, localPath)
	asset, _ := args.Get(0).(*media.Asset)
	return asset, args.Error(1)
}

func (m *mockHost) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type fixture struct {
	db        *sql.DB
	users     repository.UserRepository
	videos    repository.VideoRepository
	comments  repository.CommentRepository
	likes     repository.LikeRepository
	subs      repository.SubscriptionRepository
	playlists repository.PlaylistRepository
	posts     repository.CommunityPostRepository
	history   repository.WatchHistoryRepository
	channels  repository.ChannelRepository
	manager   *token.Manager
	host      *mockHost
	logger    logrus.FieldLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db, nil))

	manager, err := token.NewManager(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	return &fixture{
		db:        db,
		users:     sqlite.NewUserRepository(db),
		videos:    sqlite.NewVideoRepository(db),
		comments:  sqlite.NewCommentRepository(db),
		likes:     sqlite.NewLikeRepository(db),
		subs:      sqlite.NewSubscriptionRepository(db),
		playlists: sqlite.NewPlaylistRepository(db),
		posts:     sqlite.NewCommunityPostRepository(db),
		history:   sqlite.NewWatchHistoryRepository(db),
		channels:  sqlite.NewChannelRepository(db),
		manager:   manager,
		host:      &mockHost{},
		logger:    logger,
	}
}

func (f *fixture) tokenService(policy RefreshPolicy) TokenService {
	return NewTokenService(f.users, f.manager, policy, f.logger)
}

func (f *fixture) createUser(t *testing.T, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		Avatar:       "https://cdn.example.com/" + username + ".png",
		PasswordHash: string(hash),
	}
	_, err = f.users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func (f *fixture) createVideo(t *testing.T, ownerID int64, title string, views int64) *domain.Video {
	t.Helper()
	video := &domain.Video{
		OwnerID:     ownerID,
		VideoFile:   fmt.Sprintf("https://cdn.example.com/%s.mp4", title),
		Thumbnail:   "https://cdn.example.com/thumb.png",
		Title:       title,
		Description: "about " + title,
		Views:       views,
		IsPublished: true,
	}
	_, err := f.videos.Create(context.Background(), video)
	require.NoError(t, err)
	return video
}

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))
	return p
}
