package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"vidtube/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db, nil))
	return db
}

func seedUser(t *testing.T, db *sql.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		Avatar:       "https://cdn.example.com/" + username + ".png",
		PasswordHash: "hash",
	}
	_, err := NewUserRepository(db).Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func seedVideo(t *testing.T, db *sql.DB, ownerID int64, title string, views int64) *domain.Video {
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
	_, err := NewVideoRepository(db).Create(context.Background(), video)
	require.NoError(t, err)
	return video
}
